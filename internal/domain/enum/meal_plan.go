package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// MealPlan is the board basis booked with a reservation
type MealPlan string

const (
	MealPlanNone     MealPlan = ""
	MealPlanRoomOnly MealPlan = "ROOM_ONLY"
	MealPlanBB       MealPlan = "BB"
	MealPlanHB       MealPlan = "HB"
	MealPlanFB       MealPlan = "FB"
	MealPlanAI       MealPlan = "AI"
	MealPlanUAI      MealPlan = "UAI"
)

// MealPlans lists the known codes in display order
var MealPlans = []MealPlan{
	MealPlanRoomOnly,
	MealPlanBB,
	MealPlanHB,
	MealPlanFB,
	MealPlanAI,
	MealPlanUAI,
}

func (m MealPlan) String() string {
	return string(m)
}

// IsKnown reports whether m is one of the enumerated codes
func (m MealPlan) IsKnown() bool {
	for _, p := range MealPlans {
		if p == m {
			return true
		}
	}
	return false
}

// ParseMealPlan normalizes a raw code. Unknown codes are kept verbatim so
// callers can still report them; they price as zero.
func ParseMealPlan(raw string) MealPlan {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "RO" {
		return MealPlanRoomOnly
	}
	return MealPlan(code)
}

func (m MealPlan) MarshalJSON() ([]byte, error) {
	if m == MealPlanNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

func (m *MealPlan) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MealPlanNone
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = ParseMealPlan(str)
	return nil
}

func (m MealPlan) Value() (driver.Value, error) {
	if m == MealPlanNone {
		return nil, nil
	}
	return string(m), nil
}

func (m *MealPlan) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = MealPlanNone
	case string:
		*m = ParseMealPlan(v)
	case []byte:
		*m = ParseMealPlan(string(v))
	}
	return nil
}
