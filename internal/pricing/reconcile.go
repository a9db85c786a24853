package pricing

import (
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Path names the computation that produced a breakdown
type Path string

const (
	// PathPerRoom prices every room line item separately
	PathPerRoom Path = "per_room"
	// PathPackFormula multiplies a per-person unit price by guests and nights
	PathPackFormula Path = "pack_formula"
	// PathAggregate splits the authoritative total across guest categories
	PathAggregate Path = "aggregate"
)

// Line categories
const (
	CategoryRoom     = "room"
	CategoryAdults   = "adults"
	CategoryChildren = "children"
)

// CostLine is one accommodation row of a breakdown
type CostLine struct {
	Category  string          `json:"category"`
	Label     string          `json:"label"`
	Quantity  int             `json:"quantity"`
	Babies    int             `json:"babies"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Nights    int             `json:"nights"`
	Amount    decimal.Decimal `json:"amount"`
}

// Input is everything the reconciler needs from a reservation
type Input struct {
	CheckIn            time.Time
	CheckOut           time.Time
	Adults             int
	Children           int
	MealPlan           enum.MealPlan
	Rooms              []RoomLineItem
	UnitPrice          decimal.NullDecimal
	AuthoritativeTotal decimal.NullDecimal
}

// CostBreakdown is the reconciled price of one reservation
type CostBreakdown struct {
	Path                   Path            `json:"path"`
	Nights                 int             `json:"nights"`
	PayingPeople           int             `json:"payingPeople"`
	MealPlanCode           enum.MealPlan   `json:"mealPlanCode"`
	MealPlanLabel          string          `json:"mealPlanLabel"`
	MealPlanSurcharge      decimal.Decimal `json:"mealPlanSurchargePerPersonPerNight"`
	PricePerPersonPerNight decimal.Decimal `json:"pricePerPersonPerNight"`
	BaseAccommodationTotal decimal.Decimal `json:"baseAccommodationTotal"`
	MealPlanTotal          decimal.Decimal `json:"mealPlanTotal"`
	ComputedTotal          decimal.Decimal `json:"computedTotal"`
	PerNightTotal          decimal.Decimal `json:"perNightTotal"`
	GrandTotal             decimal.Decimal `json:"grandTotal"`
	AuthoritativeTotalUsed bool            `json:"authoritativeTotalUsed"`
	Lines                  []CostLine      `json:"lines"`
}

// HasPrice reports whether any path found a non-zero price
func (b CostBreakdown) HasPrice() bool {
	return b.GrandTotal.IsPositive() || b.ComputedTotal.IsPositive()
}

// SelectPath picks the computation for in: rooms first, then a unit
// price, then the aggregate split.
func SelectPath(in Input) Path {
	switch {
	case len(in.Rooms) > 0:
		return PathPerRoom
	case in.UnitPrice.Valid:
		return PathPackFormula
	default:
		return PathAggregate
	}
}

// Reconcile derives the cost breakdown of a reservation. Every amount it
// reports is non-negative, including when nights or paying people are 0.
func Reconcile(in Input) CostBreakdown {
	b := CostBreakdown{
		Path:              SelectPath(in),
		Nights:            Nights(in.CheckIn, in.CheckOut),
		PayingPeople:      PayingPeople(in.Adults, in.Children, in.Rooms),
		MealPlanCode:      in.MealPlan,
		MealPlanLabel:     MealPlanLabel(in.MealPlan),
		MealPlanSurcharge: MealPlanSurcharge(in.MealPlan),
	}

	switch b.Path {
	case PathPerRoom:
		reconcilePerRoom(&b, in)
	case PathPackFormula:
		reconcilePackFormula(&b, in)
	default:
		reconcileAggregate(&b, in)
	}

	b.BaseAccommodationTotal = clampZero(b.BaseAccommodationTotal)
	b.MealPlanTotal = clampZero(b.MealPlanTotal)
	b.ComputedTotal = b.BaseAccommodationTotal.Add(b.MealPlanTotal)
	b.PerNightTotal = clampZero(b.PerNightTotal)
	b.PricePerPersonPerNight = clampZero(b.PricePerPersonPerNight)

	if in.AuthoritativeTotal.Valid {
		b.GrandTotal = clampZero(in.AuthoritativeTotal.Decimal)
		b.AuthoritativeTotalUsed = true
	} else {
		b.GrandTotal = b.ComputedTotal
	}
	return b
}

func reconcilePerRoom(b *CostBreakdown, in Input) {
	nights := decimal.NewFromInt(int64(b.Nights))
	roomPerNight := decimal.Zero
	mealPerNight := decimal.Zero

	b.Lines = make([]CostLine, 0, len(in.Rooms))
	for _, r := range in.Rooms {
		paying := decimal.NewFromInt(int64(r.PayingCount))
		price := clampZero(r.PricePerPersonPerNight)
		cost := paying.Mul(price)

		roomPerNight = roomPerNight.Add(cost)
		mealPerNight = mealPerNight.Add(paying.Mul(b.MealPlanSurcharge))

		b.Lines = append(b.Lines, CostLine{
			Category:  CategoryRoom,
			Label:     r.Name,
			Quantity:  r.PayingCount,
			Babies:    r.Babies,
			UnitPrice: price,
			Nights:    b.Nights,
			Amount:    clampZero(cost.Mul(nights)),
		})
	}

	b.BaseAccommodationTotal = roomPerNight.Mul(nights)
	b.MealPlanTotal = mealPerNight.Mul(nights)
	b.PerNightTotal = roomPerNight.Add(mealPerNight)
	b.PricePerPersonPerNight = safeDiv(roomPerNight, decimal.NewFromInt(int64(b.PayingPeople)))
}

func reconcilePackFormula(b *CostBreakdown, in Input) {
	nights := decimal.NewFromInt(int64(b.Nights))
	paying := decimal.NewFromInt(int64(b.PayingPeople))
	unit := clampZero(in.UnitPrice.Decimal)

	b.PricePerPersonPerNight = unit
	b.BaseAccommodationTotal = unit.Mul(paying).Mul(nights)
	b.MealPlanTotal = b.MealPlanSurcharge.Mul(paying).Mul(nights)
	b.PerNightTotal = unit.Add(b.MealPlanSurcharge).Mul(paying)

	adults := nonNegative(in.Adults)
	children := nonNegative(in.Children)
	b.Lines = []CostLine{
		categoryLine(CategoryAdults, "Adults", adults, unit, b.Nights),
		categoryLine(CategoryChildren, "Children", children, unit, b.Nights),
	}
}

func categoryLine(category, label string, qty int, unit decimal.Decimal, nights int) CostLine {
	return CostLine{
		Category:  category,
		Label:     label,
		Quantity:  qty,
		UnitPrice: unit,
		Nights:    nights,
		Amount:    clampZero(unit.Mul(decimal.NewFromInt(int64(qty))).Mul(decimal.NewFromInt(int64(nights)))),
	}
}

// reconcileAggregate splits the authoritative total across adults and
// children by headcount. No meal-plan amount is broken out: the total is
// assumed to carry no separate surcharge.
func reconcileAggregate(b *CostBreakdown, in Input) {
	total := decimal.Zero
	if in.AuthoritativeTotal.Valid {
		total = clampZero(in.AuthoritativeTotal.Decimal)
	}

	adults := nonNegative(in.Adults)
	children := nonNegative(in.Children)
	people := addCounts(adults, children)
	divisor := decimal.NewFromInt(int64(max(people, 1)))

	adultsShare := total.Mul(decimal.NewFromInt(int64(adults))).Div(divisor)
	childrenShare := decimal.Zero
	if people > 0 {
		// remainder keeps the two shares summing to the total exactly
		childrenShare = total.Sub(adultsShare)
	}

	nights := decimal.NewFromInt(int64(b.Nights))
	b.BaseAccommodationTotal = adultsShare.Add(childrenShare)
	b.MealPlanTotal = decimal.Zero
	b.PerNightTotal = safeDiv(total, nights)
	b.PricePerPersonPerNight = safeDiv(total, decimal.NewFromInt(int64(people)).Mul(nights))

	b.Lines = []CostLine{
		{
			Category:  CategoryAdults,
			Label:     "Adults",
			Quantity:  adults,
			UnitPrice: safeDiv(adultsShare, decimal.NewFromInt(int64(adults)).Mul(nights)),
			Nights:    b.Nights,
			Amount:    adultsShare,
		},
		{
			Category:  CategoryChildren,
			Label:     "Children",
			Quantity:  children,
			UnitPrice: safeDiv(childrenShare, decimal.NewFromInt(int64(children)).Mul(nights)),
			Nights:    b.Nights,
			Amount:    childrenShare,
		},
	}
}
