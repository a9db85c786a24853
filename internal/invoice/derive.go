package invoice

import (
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/pricing"
)

// Derive prices a reservation and assembles its invoice. A nil detail
// means the richer invoice record was unavailable; the reservation alone
// is then used.
func Derive(res *entity.Reservation, detail *entity.InvoiceDetail, issued time.Time) (*Document, error) {
	if res == nil || res.ID <= 0 {
		return nil, ErrMissingIdentifier
	}

	merged := detail.ApplyTo(res)
	b := pricing.Reconcile(PricingInput(merged))
	return Assemble(merged, b, issued)
}

// PricingInput extracts the reconciler input from a reservation
func PricingInput(res *entity.Reservation) pricing.Input {
	in := pricing.Input{
		Adults:             res.Adults,
		Children:           res.Children,
		MealPlan:           res.MealPlan,
		Rooms:              pricing.ParseRoomLedger(res.Rooms),
		UnitPrice:          res.UnitPrice(),
		AuthoritativeTotal: res.TotalAmount,
	}
	if res.CheckIn != nil {
		in.CheckIn = res.CheckIn.Time
	}
	if res.CheckOut != nil {
		in.CheckOut = res.CheckOut.Time
	}
	return in
}
