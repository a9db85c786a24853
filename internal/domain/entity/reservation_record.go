package entity

import (
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ReservationRecord is the permissive reservation shape served by the
// booking backend's admin API. ToReservation narrows it to a Reservation.
type ReservationRecord struct {
	ID        int64  `json:"id"`
	Type      string `json:"type,omitempty"`
	UserID    *int64 `json:"userId,omitempty"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`

	HotelID       *int64 `json:"hotelId,omitempty"`
	HotelName     string `json:"hotelName,omitempty"`
	HotelLocation string `json:"hotelLocation,omitempty"`

	PackID       *int64 `json:"packId,omitempty"`
	PackName     string `json:"packName,omitempty"`
	PackLocation string `json:"packLocation,omitempty"`
	Location     string `json:"location,omitempty"`

	DestinationID       *int64 `json:"destinationId,omitempty"`
	DestinationName     string `json:"destinationName,omitempty"`
	DestinationCountry  string `json:"destinationCountry,omitempty"`
	DestinationLocation string `json:"destinationLocation,omitempty"`

	CheckIn  *Date `json:"checkIn,omitempty"`
	CheckOut *Date `json:"checkOut,omitempty"`

	Adults   *int `json:"adults,omitempty"`
	Children *int `json:"children,omitempty"`
	Babies   *int `json:"babies,omitempty"`

	MealPlan       enum.MealPlan       `json:"mealPlan,omitempty"`
	TotalAmount    decimal.NullDecimal `json:"totalAmount"`
	PricePerPerson decimal.NullDecimal `json:"pricePerPerson"`
	CreatedAt      *Date               `json:"createdAt,omitempty"`

	RoomLedger
}

// ToReservation builds the reservation of the given kind from the record
func (r *ReservationRecord) ToReservation(kind enum.ReservationKind) *Reservation {
	res := &Reservation{
		ID:   r.ID,
		Kind: kind,
		Guest: Guest{
			UserID: deref64(r.UserID),
			Name:   r.UserName,
			Email:  r.UserEmail,
		},
		CheckIn:     presentDate(r.CheckIn),
		CheckOut:    presentDate(r.CheckOut),
		Adults:      derefInt(r.Adults),
		Children:    derefInt(r.Children),
		Babies:      derefInt(r.Babies),
		MealPlan:    r.MealPlan,
		TotalAmount: r.TotalAmount,
		Rooms:       r.RoomLedger,
	}
	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		t := r.CreatedAt.Time
		res.CreatedAt = &t
	}

	switch kind {
	case enum.ReservationKindHotel:
		res.Hotel = &HotelStay{
			HotelID:  deref64(r.HotelID),
			Name:     r.HotelName,
			Location: r.HotelLocation,
		}
	case enum.ReservationKindDestination:
		res.Destination = &DestinationStay{
			DestinationID: deref64(r.DestinationID),
			Name:          r.DestinationName,
			Country:       r.DestinationCountry,
			Location:      firstNonEmpty(r.DestinationLocation, r.Location),
		}
	case enum.ReservationKindPack:
		res.Pack = &PackStay{
			PackID:          deref64(r.PackID),
			Name:            r.PackName,
			Location:        firstNonEmpty(r.PackLocation, r.Location),
			HotelName:       r.HotelName,
			DestinationName: r.DestinationName,
			PricePerPerson:  r.PricePerPerson,
		}
	}
	return res
}

func presentDate(d *Date) *Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

func deref64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ReservationSummary is a list row of the admin reservation listing
type ReservationSummary struct {
	ID          int64                `json:"id"`
	Kind        enum.ReservationKind `json:"type"`
	GuestName   string               `json:"userName"`
	GuestEmail  string               `json:"userEmail"`
	Name        string               `json:"name"`
	CheckIn     *Date                `json:"checkIn"`
	CheckOut    *Date                `json:"checkOut"`
	MealPlan    enum.MealPlan        `json:"mealPlan"`
	TotalAmount decimal.NullDecimal  `json:"totalAmount"`
	CreatedAt   *time.Time           `json:"createdAt,omitempty"`
}

// Summary condenses a reservation into a list row
func (r *Reservation) Summary() ReservationSummary {
	return ReservationSummary{
		ID:          r.ID,
		Kind:        r.Kind,
		GuestName:   r.Guest.Name,
		GuestEmail:  r.Guest.Email,
		Name:        r.AccommodationName(),
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MealPlan:    r.MealPlan,
		TotalAmount: r.TotalAmount,
		CreatedAt:   r.CreatedAt,
	}
}
