package pricing

import (
	"math"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{name: "three nights", checkIn: day("2025-07-01"), checkOut: day("2025-07-04"), want: 3},
		{name: "same day", checkIn: day("2025-07-01"), checkOut: day("2025-07-01"), want: 0},
		{name: "check-out before check-in", checkIn: day("2025-07-04"), checkOut: day("2025-07-01"), want: 0},
		{name: "missing check-out", checkIn: day("2025-07-01"), want: 0},
		{name: "missing check-in", checkOut: day("2025-07-01"), want: 0},
		{name: "both missing", want: 0},
		{
			name:     "partial day rounds up",
			checkIn:  day("2025-07-01").Add(14 * time.Hour),
			checkOut: day("2025-07-03").Add(11 * time.Hour),
			want:     2,
		},
		{name: "across month end", checkIn: day("2025-01-30"), checkOut: day("2025-02-02"), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPayingPeople(t *testing.T) {
	tests := []struct {
		name     string
		adults   int
		children int
		rooms    []RoomLineItem
		want     int
	}{
		{name: "no rooms uses top-level counts", adults: 2, children: 1, want: 3},
		{name: "negative counts ignored", adults: -2, children: 1, want: 1},
		{
			name:   "rooms win over top-level counts",
			adults: 5, children: 5,
			rooms: []RoomLineItem{{PayingCount: 2}, {PayingCount: 1}},
			want:  3,
		},
		{name: "top-level counts saturate", adults: math.MaxInt, children: 2, want: math.MaxInt},
		{
			name:  "room sum saturates",
			rooms: []RoomLineItem{{PayingCount: math.MaxInt}, {PayingCount: 3}, {PayingCount: -4}},
			want:  math.MaxInt,
		},
		{
			name:   "rooms win even when they sum to zero",
			adults: 2, children: 2,
			rooms: []RoomLineItem{{Name: "Room 1", Babies: 1}},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayingPeople(tt.adults, tt.children, tt.rooms); got != tt.want {
				t.Errorf("PayingPeople() = %d, want %d", got, tt.want)
			}
		})
	}
}
