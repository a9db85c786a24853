package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var issued = time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *entity.Date {
	v := entity.NewDate(y, m, d)
	return &v
}

func hotelReservation() *entity.Reservation {
	return &entity.Reservation{
		ID:       42,
		Kind:     enum.ReservationKindHotel,
		Guest:    entity.Guest{Name: "Amira Ben Salah", Email: "amira@example.com"},
		CheckIn:  datePtr(2025, 7, 1),
		CheckOut: datePtr(2025, 7, 4),
		MealPlan: enum.MealPlanBB,
		Rooms: entity.RoomLedger{
			Names:    entity.SplitLedgerColumn("Double"),
			Prices:   entity.SplitLedgerColumn("100"),
			Adults:   entity.SplitLedgerColumn("2"),
			Children: entity.SplitLedgerColumn("1"),
			Babies:   entity.SplitLedgerColumn("0"),
		},
		Hotel: &entity.HotelStay{HotelID: 7, Name: "Dar Djerba", Location: "Djerba, Tunisia"},
	}
}

func TestDeriveHotelInvoice(t *testing.T) {
	doc, err := Derive(hotelReservation(), nil, issued)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if doc.DocumentID != "FAC-42" {
		t.Errorf("DocumentID = %q, want FAC-42", doc.DocumentID)
	}
	if doc.IssueDate != "2025-07-10" {
		t.Errorf("IssueDate = %q", doc.IssueDate)
	}
	if doc.Header.LocationLabel != "Djerba, Tunisia" || doc.Header.AccommodationLabel != "Dar Djerba" {
		t.Errorf("Header = %+v", doc.Header)
	}
	if doc.StayWindow.Nights != 3 || doc.StayWindow.CheckIn != "2025-07-01" {
		t.Errorf("StayWindow = %+v", doc.StayWindow)
	}

	wantKinds := []RowKind{RowAccommodation, RowMealPlan, RowTotal}
	if len(doc.Rows) != len(wantKinds) {
		t.Fatalf("len(Rows) = %d, want %d", len(doc.Rows), len(wantKinds))
	}
	for i, k := range wantKinds {
		if doc.Rows[i].Kind != k {
			t.Errorf("Rows[%d].Kind = %s, want %s", i, doc.Rows[i].Kind, k)
		}
	}
	if doc.Rows[0].Formula != "100.00 × 3 × 3" {
		t.Errorf("room formula = %q", doc.Rows[0].Formula)
	}
	if doc.Rows[1].Formula != "25.00 × 3 × 3" || doc.Rows[1].Display != "225.00 TND" {
		t.Errorf("meal row = %+v", doc.Rows[1])
	}
	if doc.Total().Display != "1125.00 TND" {
		t.Errorf("total = %q, want 1125.00 TND", doc.Total().Display)
	}
}

func TestDeriveDetailOverridesRecord(t *testing.T) {
	total := decimal.NewNullDecimal(decimal.NewFromInt(800))
	detail := &entity.InvoiceDetail{
		UserName:    "Amira B.",
		TotalAmount: total,
	}

	doc, err := Derive(hotelReservation(), detail, issued)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if doc.Header.PartyName != "Amira B." {
		t.Errorf("PartyName = %q", doc.Header.PartyName)
	}
	got := doc.Total()
	if got.Display != "800.00 TND" {
		t.Errorf("total = %q, want 800.00 TND", got.Display)
	}
	if got.Detail != "booked total, computed 1125.00 TND" {
		t.Errorf("total detail = %q", got.Detail)
	}
	if !doc.Breakdown.BaseAccommodationTotal.Equal(decimal.NewFromInt(900)) {
		t.Errorf("base = %s, want 900", doc.Breakdown.BaseAccommodationTotal)
	}
}

func TestDerivePackInvoice(t *testing.T) {
	res := &entity.Reservation{
		ID:       9,
		Kind:     enum.ReservationKindPack,
		CheckIn:  datePtr(2025, 8, 10),
		CheckOut: datePtr(2025, 8, 14),
		Adults:   2,
		Children: 1,
		MealPlan: enum.MealPlanAI,
		Pack: &entity.PackStay{
			Name:            "Sahara Escape",
			Location:        "Tozeur",
			HotelName:       "Anantara",
			DestinationName: "Tozeur",
			PricePerPerson:  decimal.NewNullDecimal(decimal.NewFromInt(120)),
		},
	}

	doc, err := Derive(res, nil, issued)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if doc.DocumentID != "PACK-9" {
		t.Errorf("DocumentID = %q", doc.DocumentID)
	}
	if doc.Header.HotelName != "Anantara" {
		t.Errorf("HotelName = %q", doc.Header.HotelName)
	}
	// adults, children, meal plan, total
	if len(doc.Rows) != 4 {
		t.Fatalf("len(Rows) = %d, want 4", len(doc.Rows))
	}
	if doc.Rows[0].Formula != "120.00 × 2 × 4" {
		t.Errorf("adults formula = %q", doc.Rows[0].Formula)
	}
	// 120*3*4 + 130*3*4
	if doc.Total().Display != "3000.00 TND" {
		t.Errorf("total = %q, want 3000.00 TND", doc.Total().Display)
	}
}

func TestDeriveDestinationInvoice(t *testing.T) {
	res := &entity.Reservation{
		ID:          3,
		Kind:        enum.ReservationKindDestination,
		CheckIn:     datePtr(2025, 9, 1),
		CheckOut:    datePtr(2025, 9, 5),
		Adults:      2,
		Children:    2,
		TotalAmount: decimal.NewNullDecimal(decimal.NewFromInt(1600)),
		Destination: &entity.DestinationStay{Name: "Sidi Bou Said", Country: "Tunisia", Location: "Tunis"},
	}

	doc, err := Derive(res, nil, issued)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if doc.DocumentID != "DEST-3" {
		t.Errorf("DocumentID = %q", doc.DocumentID)
	}
	if doc.Header.LocationLabel != "Tunisia • Tunis" {
		t.Errorf("LocationLabel = %q", doc.Header.LocationLabel)
	}
	if doc.Rows[0].Display != "800.00 TND" || doc.Rows[1].Display != "800.00 TND" {
		t.Errorf("category rows = %q, %q", doc.Rows[0].Display, doc.Rows[1].Display)
	}
	if doc.Rows[2].Detail != "included in total" {
		t.Errorf("meal row detail = %q", doc.Rows[2].Detail)
	}
	if !doc.Breakdown.PricePerPersonPerNight.Equal(decimal.NewFromInt(100)) {
		t.Errorf("price per person per night = %s, want 100", doc.Breakdown.PricePerPersonPerNight)
	}
}

func TestAssembleMissingIdentifier(t *testing.T) {
	res := hotelReservation()
	res.ID = 0

	doc, err := Derive(res, nil, issued)
	if !errors.Is(err, ErrMissingIdentifier) {
		t.Fatalf("err = %v, want ErrMissingIdentifier", err)
	}
	if doc != nil {
		t.Error("expected no document")
	}
	if _, err := Derive(nil, nil, issued); !errors.Is(err, ErrMissingIdentifier) {
		t.Errorf("nil reservation err = %v", err)
	}
}

func TestAssembleNoPrice(t *testing.T) {
	res := &entity.Reservation{
		ID:          5,
		Kind:        enum.ReservationKindDestination,
		Destination: &entity.DestinationStay{},
	}

	doc, err := Derive(res, nil, issued)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if doc.Total().Display != "0.00 TND" {
		t.Errorf("total = %q", doc.Total().Display)
	}
	if doc.Header.AccommodationLabel != "—" || doc.StayWindow.CheckIn != "—" {
		t.Errorf("placeholders missing: %+v %+v", doc.Header, doc.StayWindow)
	}
	if doc.Notes[len(doc.Notes)-1] != noPriceNote {
		t.Errorf("notes = %v", doc.Notes)
	}
}
