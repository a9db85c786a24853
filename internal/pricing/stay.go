package pricing

import (
	"math"
	"time"
)

// Nights is the number of nights between check-in and check-out, rounded
// up to whole days. A zero date counts as absent and yields 0, as does a
// check-out before the check-in.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	days := checkOut.Sub(checkIn).Hours() / 24
	if days <= 0 {
		return 0
	}
	return int(math.Ceil(days))
}

// PayingPeople counts the guests that pay. When the reservation has room
// line items their paying counts win, even if they sum to 0.
func PayingPeople(adults, children int, rooms []RoomLineItem) int {
	if len(rooms) > 0 {
		total := 0
		for _, r := range rooms {
			total = addCounts(total, r.PayingCount)
		}
		return total
	}
	return addCounts(adults, children)
}

// addCounts sums two head counts, ignoring negatives and saturating at
// math.MaxInt instead of wrapping.
func addCounts(a, b int) int {
	a, b = nonNegative(a), nonNegative(b)
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
