package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaxGuestCount bounds a single count token. Larger values are treated as
// malformed and count as 0.
const MaxGuestCount = 10000

// RoomLineItem is one parsed room of a multi-room reservation
type RoomLineItem struct {
	Name                   string          `json:"name"`
	PricePerPersonPerNight decimal.Decimal `json:"pricePerPersonPerNight"`
	Adults                 int             `json:"adults"`
	Children               int             `json:"children"`
	Babies                 int             `json:"babies"`
	PayingCount            int             `json:"payingCount"`
}

// ParseRoomLedger rebuilds room line items from the five parallel columns.
// Columns may be ragged: the result always has as many items as the
// longest column, with 0 for missing numbers and "Room N" for missing
// names. Tokens that do not parse count as 0. It never fails.
func ParseRoomLedger(l entity.RoomLedger) []RoomLineItem {
	names := tokens(l.Names)
	prices := tokens(l.Prices)
	adults := tokens(l.Adults)
	children := tokens(l.Children)
	babies := tokens(l.Babies)

	n := max(len(names), len(prices), len(adults), len(children), len(babies))
	if n == 0 {
		return nil
	}

	items := make([]RoomLineItem, n)
	for i := 0; i < n; i++ {
		item := RoomLineItem{
			Name:                   fmt.Sprintf("Room %d", i+1),
			PricePerPersonPerNight: parsePrice(at(prices, i)),
			Adults:                 parseCount(at(adults, i)),
			Children:               parseCount(at(children, i)),
			Babies:                 parseCount(at(babies, i)),
		}
		if i < len(names) {
			item.Name = names[i]
		}
		item.PayingCount = addCounts(item.Adults, item.Children)
		items[i] = item
	}
	return items
}

// tokens trims every token of a column and drops the empty ones
func tokens(col entity.LedgerColumn) []string {
	out := make([]string, 0, len(col))
	for _, raw := range col {
		// a single array element may itself hold a CSV fragment
		for _, tok := range strings.Split(raw, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func at(toks []string, i int) string {
	if i < len(toks) {
		return toks[i]
	}
	return ""
}

func parsePrice(tok string) decimal.Decimal {
	if tok == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(tok)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseCount(tok string) int {
	if tok == "" {
		return 0
	}
	if n, err := strconv.Atoi(tok); err == nil {
		if n < 0 || n > MaxGuestCount {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > MaxGuestCount {
		return 0
	}
	return int(f)
}
