package entity

import (
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// InvoiceDetail is the optional richer invoice record served next to a
// reservation. Every field it carries overrides the reservation's own.
type InvoiceDetail struct {
	ReservationID int64  `json:"reservationId,omitempty"`
	UserName      string `json:"userName,omitempty"`
	UserEmail     string `json:"userEmail,omitempty"`

	HotelName       string `json:"hotelName,omitempty"`
	PackName        string `json:"packName,omitempty"`
	DestinationName string `json:"destinationName,omitempty"`
	Location        string `json:"location,omitempty"`

	CheckIn  *Date `json:"checkIn,omitempty"`
	CheckOut *Date `json:"checkOut,omitempty"`

	Adults   *int `json:"adults,omitempty"`
	Children *int `json:"children,omitempty"`
	Babies   *int `json:"babies,omitempty"`

	MealPlan       enum.MealPlan       `json:"mealPlan,omitempty"`
	MealPlanExtra  decimal.NullDecimal `json:"mealPlanExtra"`
	PricePerPerson decimal.NullDecimal `json:"pricePerPerson"`
	TotalAmount    decimal.NullDecimal `json:"totalAmount"`

	// Precomputed by the backend. Only compared against local values, never trusted.
	Nights        *int                `json:"nights,omitempty"`
	PayingPeople  *int                `json:"payingPeople,omitempty"`
	BasePackTotal decimal.NullDecimal `json:"basePackTotal"`
	MealPlanTotal decimal.NullDecimal `json:"mealPlanTotal"`

	RoomLedger
}

// ApplyTo returns a copy of r with the detail's fields laid over it
func (d *InvoiceDetail) ApplyTo(r *Reservation) *Reservation {
	out := r.Clone()
	if d == nil {
		return out
	}

	if d.UserName != "" {
		out.Guest.Name = d.UserName
	}
	if d.UserEmail != "" {
		out.Guest.Email = d.UserEmail
	}
	if d.CheckIn != nil && !d.CheckIn.IsZero() {
		out.CheckIn = d.CheckIn
	}
	if d.CheckOut != nil && !d.CheckOut.IsZero() {
		out.CheckOut = d.CheckOut
	}
	if d.Adults != nil {
		out.Adults = *d.Adults
	}
	if d.Children != nil {
		out.Children = *d.Children
	}
	if d.Babies != nil {
		out.Babies = *d.Babies
	}
	if d.MealPlan != enum.MealPlanNone {
		out.MealPlan = d.MealPlan
	}
	if d.TotalAmount.Valid {
		out.TotalAmount = d.TotalAmount
	}
	out.Rooms = out.Rooms.Merge(d.RoomLedger)

	switch {
	case out.Hotel != nil:
		if d.HotelName != "" {
			out.Hotel.Name = d.HotelName
		}
		if d.Location != "" {
			out.Hotel.Location = d.Location
		}
	case out.Destination != nil:
		if d.DestinationName != "" {
			out.Destination.Name = d.DestinationName
		}
		if d.Location != "" {
			out.Destination.Location = d.Location
		}
	case out.Pack != nil:
		if d.PackName != "" {
			out.Pack.Name = d.PackName
		}
		if d.Location != "" {
			out.Pack.Location = d.Location
		}
		if d.HotelName != "" {
			out.Pack.HotelName = d.HotelName
		}
		if d.DestinationName != "" {
			out.Pack.DestinationName = d.DestinationName
		}
		if d.PricePerPerson.Valid {
			out.Pack.PricePerPerson = d.PricePerPerson
		}
	}
	return out
}
