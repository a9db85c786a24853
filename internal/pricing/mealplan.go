package pricing

import (
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// MealPlanEntry is one row of the board-basis price list
type MealPlanEntry struct {
	Code      enum.MealPlan
	Label     string
	Surcharge decimal.Decimal // per paying person per night
}

// mealPlanTable is the only place board-basis prices are defined.
// TODO: confirm the AI surcharge against the booking backend's pricing rule;
// the pack screens labelled AI without a price while hotels charged 130.
var mealPlanTable = map[enum.MealPlan]MealPlanEntry{
	enum.MealPlanRoomOnly: {Code: enum.MealPlanRoomOnly, Label: "Room only", Surcharge: decimal.NewFromInt(0)},
	enum.MealPlanBB:       {Code: enum.MealPlanBB, Label: "Bed & breakfast", Surcharge: decimal.NewFromInt(25)},
	enum.MealPlanHB:       {Code: enum.MealPlanHB, Label: "Half board", Surcharge: decimal.NewFromInt(60)},
	enum.MealPlanFB:       {Code: enum.MealPlanFB, Label: "Full board", Surcharge: decimal.NewFromInt(90)},
	enum.MealPlanAI:       {Code: enum.MealPlanAI, Label: "All inclusive", Surcharge: decimal.NewFromInt(130)},
	enum.MealPlanUAI:      {Code: enum.MealPlanUAI, Label: "Ultra all inclusive", Surcharge: decimal.NewFromInt(170)},
}

// LookupMealPlan returns the entry for code. Absent and unknown codes
// report false.
func LookupMealPlan(code enum.MealPlan) (MealPlanEntry, bool) {
	e, ok := mealPlanTable[code]
	return e, ok
}

// MealPlanLabel is the printed name of code, Placeholder when unknown
func MealPlanLabel(code enum.MealPlan) string {
	if e, ok := LookupMealPlan(code); ok {
		return e.Label
	}
	return Placeholder
}

// MealPlanSurcharge is the per-person per-night price of code, 0 when unknown
func MealPlanSurcharge(code enum.MealPlan) decimal.Decimal {
	if e, ok := LookupMealPlan(code); ok {
		return e.Surcharge
	}
	return decimal.Zero
}
