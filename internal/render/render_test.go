package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/sangkips/reservation-invoicing/internal/invoice"
	"github.com/xuri/excelize/v2"
)

func sampleDocument(t *testing.T) *invoice.Document {
	t.Helper()
	in := entity.NewDate(2025, time.July, 1)
	out := entity.NewDate(2025, time.July, 4)
	res := &entity.Reservation{
		ID:       42,
		Kind:     enum.ReservationKindHotel,
		Guest:    entity.Guest{Name: "Amira Ben Salah", Email: "amira@example.com"},
		CheckIn:  &in,
		CheckOut: &out,
		MealPlan: enum.MealPlanBB,
		Rooms: entity.RoomLedger{
			Names:    entity.SplitLedgerColumn("Double Vue Mer,Single"),
			Prices:   entity.SplitLedgerColumn("100,80"),
			Adults:   entity.SplitLedgerColumn("2,1"),
			Children: entity.SplitLedgerColumn("1,0"),
		},
		Hotel: &entity.HotelStay{Name: "Hôtel Médina", Location: "Hammamet, Tunisia"},
	}
	doc, err := invoice.Derive(res, nil, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	return doc
}

func TestThermalRenderer(t *testing.T) {
	doc := sampleDocument(t)

	art, err := NewThermalRenderer(32, "Travel Admin").Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if art.Format != FormatESCPOS || art.FileName != "FAC-42.bin" {
		t.Errorf("artifact = %+v", art)
	}
	if !bytes.HasPrefix(art.Data, []byte{0x1B, '@'}) {
		t.Error("ticket does not start with ESC @")
	}
	if !bytes.HasSuffix(art.Data, []byte{0x1D, 'V', 0x01}) {
		t.Error("ticket does not end with a partial cut")
	}

	text := string(art.Data)
	for _, want := range []string{"FAC-42", "Hotel Medina", "1440.00 TND", "100.00 x 3 x 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("ticket missing %q", want)
		}
	}
	for _, b := range art.Data {
		if b > 0x7F {
			t.Fatalf("ticket contains non-ASCII byte %#x", b)
		}
	}
}

func TestXLSXRenderer(t *testing.T) {
	doc := sampleDocument(t)

	art, err := NewXLSXRenderer(30, "Travel Admin").Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if art.FileName != "FAC-42.xlsx" {
		t.Errorf("FileName = %q", art.FileName)
	}

	f, err := excelize.OpenReader(bytes.NewReader(art.Data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(SheetName, "A1")
	if err != nil || title != "Hotel Invoice" {
		t.Errorf("A1 = %q (%v)", title, err)
	}

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	var labels []string
	var total string
	inTable := false
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		if r[0] == "Description" {
			inTable = true
			continue
		}
		if !inTable || len(r) < 4 {
			continue
		}
		labels = append(labels, r[0])
		if r[0] == "TOTAL" {
			total = r[3]
		}
	}

	want := []string{"Double Vue Mer", "Single", "Meal plan: Bed & breakfast", "TOTAL"}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Errorf("table rows = %q, want %q", labels, want)
	}
	if total != "1440" {
		t.Errorf("total cell = %q, want 1440", total)
	}
}

func TestXLSXRendererPaginates(t *testing.T) {
	doc := sampleDocument(t)

	art, err := NewXLSXRenderer(2, "").Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(art.Data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, _ := f.GetRows(SheetName)
	headers := 0
	for _, r := range rows {
		if len(r) > 0 && r[0] == "Description" {
			headers++
		}
	}
	// four rows at two per page
	if headers != 2 {
		t.Errorf("table headers = %d, want 2", headers)
	}
}

func TestSetRender(t *testing.T) {
	set := NewSet(NewThermalRenderer(48, ""), NewXLSXRenderer(0, ""))
	doc := sampleDocument(t)

	if _, err := set.Render(FormatXLSX, doc); err != nil {
		t.Errorf("xlsx: %v", err)
	}
	if _, err := set.Render("pdf", doc); err == nil {
		t.Error("expected error for unknown format")
	}
}
