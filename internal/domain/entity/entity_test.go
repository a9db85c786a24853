package entity

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func TestLedgerColumnUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want LedgerColumn
	}{
		{`"Double, Single,"`, LedgerColumn{"Double", " Single", ""}},
		{`["100", 80.5, null]`, LedgerColumn{"100", "80.5", ""}},
		{`2`, LedgerColumn{"2"}},
		{`null`, nil},
		{`""`, nil},
		{`{"x":1}`, nil},
	}
	for _, tt := range tests {
		var got LedgerColumn
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2025-07-01", "2025-07-01", true},
		{"2025-07-01T14:00:00", "2025-07-01", true},
		{"2025-07-01T23:30:00+01:00", "2025-07-01", true},
		{"2025-03-01T00:30:00+01:00", "2025-03-01", true},
		{"2025-03-01T23:30:00-05:00", "2025-03-01", true},
		{"2025-07-01 08:00:00", "2025-07-01", true},
		{"01/07/2025", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.wantOK || got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %q, %v; want %q, %v", tt.in, got.String(), ok, tt.want, tt.wantOK)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err != nil || !d.IsZero() {
		t.Errorf("malformed date = %v, %v; want zero, nil", d, err)
	}
}

func TestRecordToReservation(t *testing.T) {
	raw := `{
		"id": 9, "userName": "Youssef", "packName": "Sahara Escape",
		"location": "Tozeur", "hotelName": "Dar Tozeur", "pricePerPerson": 200,
		"checkIn": "2025-03-01", "checkOut": "2025-03-05", "adults": 2, "children": 1,
		"mealPlan": "fb", "roomNames": ["Suite"], "roomPrices": "150"
	}`
	var rec ReservationRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	res := rec.ToReservation(enum.ReservationKindPack)
	if err := res.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if res.Pack.Location != "Tozeur" || res.Pack.HotelName != "Dar Tozeur" {
		t.Errorf("pack = %+v", res.Pack)
	}
	if !res.UnitPrice().Valid || !res.UnitPrice().Decimal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("UnitPrice() = %v", res.UnitPrice())
	}
	if res.MealPlan != enum.MealPlanFB {
		t.Errorf("MealPlan = %q", res.MealPlan)
	}
	if res.AccommodationName() != "Sahara Escape" {
		t.Errorf("AccommodationName() = %q", res.AccommodationName())
	}
	if res.LocationLabel() != "Tozeur" {
		t.Errorf("LocationLabel() = %q", res.LocationLabel())
	}
	if got := res.Summary(); got.ID != 9 || got.Name != "Sahara Escape" {
		t.Errorf("Summary() = %+v", got)
	}
}

func TestDestinationLocationLabel(t *testing.T) {
	rec := ReservationRecord{ID: 3, DestinationName: "Djerba", DestinationCountry: "Tunisia", DestinationLocation: "Houmt Souk"}
	res := rec.ToReservation(enum.ReservationKindDestination)
	if got := res.LocationLabel(); got != "Tunisia • Houmt Souk" {
		t.Errorf("LocationLabel() = %q", got)
	}

	empty := (&ReservationRecord{ID: 4}).ToReservation(enum.ReservationKindHotel)
	if empty.LocationLabel() != PlaceholderLabel || empty.AccommodationName() != PlaceholderLabel {
		t.Errorf("empty labels = %q, %q", empty.LocationLabel(), empty.AccommodationName())
	}
}

func TestValidateKindMismatch(t *testing.T) {
	res := &Reservation{ID: 1, Kind: enum.ReservationKindHotel, Pack: &PackStay{}}
	if err := res.Validate(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Validate() = %v, want ErrKindMismatch", err)
	}
	res.Hotel = &HotelStay{}
	if err := res.Validate(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("two payloads: Validate() = %v, want ErrKindMismatch", err)
	}
}

func TestInvoiceDetailApplyTo(t *testing.T) {
	in := NewDate(2025, time.March, 2)
	base := &Reservation{
		ID:       9,
		Kind:     enum.ReservationKindPack,
		Guest:    Guest{Name: "Youssef", Email: "y@example.com"},
		Adults:   2,
		Children: 1,
		MealPlan: enum.MealPlanBB,
		Rooms:    RoomLedger{Names: SplitLedgerColumn("Suite"), Prices: SplitLedgerColumn("150")},
		Pack:     &PackStay{Name: "Sahara Escape", PricePerPerson: decimal.NewNullDecimal(decimal.NewFromInt(200))},
	}
	zero := 0
	detail := &InvoiceDetail{
		UserName:       "Youssef B.",
		PackName:       "Sahara Escape Deluxe",
		CheckIn:        &in,
		Children:       &zero,
		MealPlan:       enum.MealPlanHB,
		PricePerPerson: decimal.NewNullDecimal(decimal.NewFromInt(250)),
		RoomLedger:     RoomLedger{Prices: SplitLedgerColumn("175")},
	}

	got := detail.ApplyTo(base)
	if got.Guest.Name != "Youssef B." || got.Guest.Email != "y@example.com" {
		t.Errorf("guest = %+v", got.Guest)
	}
	if got.Children != 0 || got.Adults != 2 {
		t.Errorf("counts = %d/%d", got.Adults, got.Children)
	}
	if got.MealPlan != enum.MealPlanHB || got.CheckIn == nil || got.CheckIn.String() != "2025-03-02" {
		t.Errorf("meal plan %q, check-in %v", got.MealPlan, got.CheckIn)
	}
	if got.Pack.Name != "Sahara Escape Deluxe" || !got.Pack.PricePerPerson.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Errorf("pack = %+v", got.Pack)
	}
	if got.Rooms.Names != nil || got.Rooms.Prices.CSV() != "175" {
		t.Errorf("rooms = %+v, want the detail's ledger only", got.Rooms)
	}

	if base.Pack.Name != "Sahara Escape" || base.Children != 1 || base.Rooms.Prices.CSV() != "150" {
		t.Error("ApplyTo modified its input")
	}

	var nilDetail *InvoiceDetail
	if same := nilDetail.ApplyTo(base); same.Pack.Name != "Sahara Escape" {
		t.Errorf("nil detail changed reservation: %+v", same.Pack)
	}
}

func TestRoomLedgerMerge(t *testing.T) {
	record := RoomLedger{
		Names:  SplitLedgerColumn("Double,Single"),
		Prices: SplitLedgerColumn("100,80"),
		Adults: SplitLedgerColumn("2,1"),
	}

	t.Run("detail ledger replaces every column", func(t *testing.T) {
		detail := RoomLedger{Prices: SplitLedgerColumn("120")}
		got := record.Merge(detail)
		if !reflect.DeepEqual(got, detail) {
			t.Errorf("Merge() = %+v, want %+v", got, detail)
		}
	})

	t.Run("empty detail keeps the record", func(t *testing.T) {
		got := record.Merge(RoomLedger{})
		if !reflect.DeepEqual(got, record) {
			t.Errorf("Merge() = %+v, want %+v", got, record)
		}
	})
}

func TestDateScanKeepsCalendarDay(t *testing.T) {
	tz := time.FixedZone("UTC+1", 3600)
	var d Date
	if err := d.Scan(time.Date(2025, time.March, 1, 0, 30, 0, 0, tz)); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2025-03-01" || d.Hour() != 0 || d.Location() != time.UTC {
		t.Errorf("Scan() = %v", d.Time)
	}
}

func TestJoinLocation(t *testing.T) {
	tests := []struct {
		city, country, fallback, want string
	}{
		{"Sousse", "Tunisia", "", "Sousse, Tunisia"},
		{" ", "Tunisia", "x", "Tunisia"},
		{"", "", " Coast ", "Coast"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		if got := JoinLocation(tt.city, tt.country, tt.fallback); got != tt.want {
			t.Errorf("JoinLocation(%q, %q, %q) = %q, want %q", tt.city, tt.country, tt.fallback, got, tt.want)
		}
	}
}
