package pricing

import (
	"testing"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func TestParseRoomLedger(t *testing.T) {
	t.Run("ragged columns use the longest", func(t *testing.T) {
		ledger := entity.RoomLedger{
			Names:  entity.SplitLedgerColumn("Sea view, Garden, Suite"),
			Prices: entity.SplitLedgerColumn("100,80"),
			Adults: entity.SplitLedgerColumn("2,1,2,1"),
		}

		items := ParseRoomLedger(ledger)
		if len(items) != 4 {
			t.Fatalf("len(items) = %d, want 4", len(items))
		}

		want := []RoomLineItem{
			{Name: "Sea view", PricePerPersonPerNight: decimal.NewFromInt(100), Adults: 2, PayingCount: 2},
			{Name: "Garden", PricePerPersonPerNight: decimal.NewFromInt(80), Adults: 1, PayingCount: 1},
			{Name: "Suite", PricePerPersonPerNight: decimal.Zero, Adults: 2, PayingCount: 2},
			{Name: "Room 4", PricePerPersonPerNight: decimal.Zero, Adults: 1, PayingCount: 1},
		}
		for i, w := range want {
			got := items[i]
			if got.Name != w.Name {
				t.Errorf("items[%d].Name = %q, want %q", i, got.Name, w.Name)
			}
			if !got.PricePerPersonPerNight.Equal(w.PricePerPersonPerNight) {
				t.Errorf("items[%d].Price = %s, want %s", i, got.PricePerPersonPerNight, w.PricePerPersonPerNight)
			}
			if got.Adults != w.Adults || got.Children != 0 || got.Babies != 0 {
				t.Errorf("items[%d] counts = %d/%d/%d", i, got.Adults, got.Children, got.Babies)
			}
			if got.PayingCount != w.PayingCount {
				t.Errorf("items[%d].PayingCount = %d, want %d", i, got.PayingCount, w.PayingCount)
			}
		}
	})

	t.Run("bad tokens become zero", func(t *testing.T) {
		ledger := entity.RoomLedger{
			Prices:   entity.SplitLedgerColumn("abc,-20,99.5"),
			Adults:   entity.SplitLedgerColumn("two,-1,2.7"),
			Children: entity.SplitLedgerColumn("1"),
			Babies:   entity.SplitLedgerColumn("1,,1"),
		}

		items := ParseRoomLedger(ledger)
		if len(items) != 3 {
			t.Fatalf("len(items) = %d, want 3", len(items))
		}
		if !items[0].PricePerPersonPerNight.IsZero() || !items[1].PricePerPersonPerNight.IsZero() {
			t.Errorf("invalid prices should parse as 0, got %s and %s",
				items[0].PricePerPersonPerNight, items[1].PricePerPersonPerNight)
		}
		if !items[2].PricePerPersonPerNight.Equal(decimal.RequireFromString("99.5")) {
			t.Errorf("items[2].Price = %s, want 99.5", items[2].PricePerPersonPerNight)
		}
		if items[0].Adults != 0 || items[1].Adults != 0 || items[2].Adults != 2 {
			t.Errorf("adults = %d,%d,%d, want 0,0,2", items[0].Adults, items[1].Adults, items[2].Adults)
		}
		if items[0].PayingCount != 1 {
			t.Errorf("items[0].PayingCount = %d, want 1", items[0].PayingCount)
		}
		// empty token is dropped, so both babies land on the first two rooms
		if items[0].Babies != 1 || items[1].Babies != 1 || items[2].Babies != 0 {
			t.Errorf("babies = %d,%d,%d, want 1,1,0", items[0].Babies, items[1].Babies, items[2].Babies)
		}
		if items[2].Name != "Room 3" {
			t.Errorf("items[2].Name = %q, want Room 3", items[2].Name)
		}
	})

	t.Run("out of range counts become zero", func(t *testing.T) {
		ledger := entity.RoomLedger{
			Prices:   entity.SplitLedgerColumn("100,100,100"),
			Adults:   entity.SplitLedgerColumn("1e30,9223372036854775807,99999999999999999999"),
			Children: entity.SplitLedgerColumn("0,1,10001"),
		}

		items := ParseRoomLedger(ledger)
		if len(items) != 3 {
			t.Fatalf("len(items) = %d, want 3", len(items))
		}
		wantPaying := []int{0, 1, 0}
		for i, item := range items {
			if item.Adults != 0 {
				t.Errorf("items[%d].Adults = %d, want 0", i, item.Adults)
			}
			if item.PayingCount != wantPaying[i] {
				t.Errorf("items[%d].PayingCount = %d, want %d", i, item.PayingCount, wantPaying[i])
			}
		}

		in := oneRoomInput()
		in.Rooms = items
		b := Reconcile(in)
		if b.PayingPeople != 1 {
			t.Errorf("PayingPeople = %d, want 1", b.PayingPeople)
		}
		for i, line := range b.Lines {
			if line.Amount.IsNegative() {
				t.Errorf("Lines[%d].Amount = %s, want non-negative", i, line.Amount)
			}
		}
		assertMoney(t, "BaseAccommodationTotal", b.BaseAccommodationTotal, "300")
	})

	t.Run("counts at the cap are kept", func(t *testing.T) {
		items := ParseRoomLedger(entity.RoomLedger{Adults: entity.SplitLedgerColumn("10000")})
		if items[0].Adults != MaxGuestCount {
			t.Errorf("Adults = %d, want %d", items[0].Adults, MaxGuestCount)
		}
	})

	t.Run("all columns empty", func(t *testing.T) {
		if items := ParseRoomLedger(entity.RoomLedger{Names: entity.LedgerColumn{" ", ""}}); len(items) != 0 {
			t.Errorf("len(items) = %d, want 0", len(items))
		}
	})
}
