package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PlaceholderLabel is printed wherever a label cannot be resolved
const PlaceholderLabel = "—"

// ErrKindMismatch is returned when a reservation's payload does not match its kind
var ErrKindMismatch = errors.New("reservation payload does not match its kind")

// Guest is the booking party
type Guest struct {
	UserID int64  `json:"userId,omitempty"`
	Name   string `json:"userName,omitempty"`
	Email  string `json:"userEmail,omitempty"`
}

// HotelStay is the hotel-specific part of a reservation
type HotelStay struct {
	HotelID  int64  `json:"hotelId,omitempty"`
	Name     string `json:"hotelName,omitempty"`
	Location string `json:"hotelLocation,omitempty"`
}

// DestinationStay is the destination-package part of a reservation
type DestinationStay struct {
	DestinationID int64  `json:"destinationId,omitempty"`
	Name          string `json:"destinationName,omitempty"`
	Country       string `json:"destinationCountry,omitempty"`
	Location      string `json:"destinationLocation,omitempty"`
}

// PackStay is the bundled pack part of a reservation
type PackStay struct {
	PackID          int64               `json:"packId,omitempty"`
	Name            string              `json:"packName,omitempty"`
	Location        string              `json:"packLocation,omitempty"`
	HotelName       string              `json:"hotelName,omitempty"`
	DestinationName string              `json:"destinationName,omitempty"`
	PricePerPerson  decimal.NullDecimal `json:"pricePerPerson"`
}

// Reservation is a booking of exactly one kind. Exactly one of Hotel,
// Destination and Pack is set, the one matching Kind.
type Reservation struct {
	ID          int64                `json:"id"`
	Kind        enum.ReservationKind `json:"type"`
	Guest       Guest                `json:"guest"`
	CheckIn     *Date                `json:"checkIn"`
	CheckOut    *Date                `json:"checkOut"`
	Adults      int                  `json:"adults"`
	Children    int                  `json:"children"`
	Babies      int                  `json:"babies"`
	MealPlan    enum.MealPlan        `json:"mealPlan"`
	TotalAmount decimal.NullDecimal  `json:"totalAmount"`
	Rooms       RoomLedger           `json:"rooms"`
	CreatedAt   *time.Time           `json:"createdAt,omitempty"`

	Hotel       *HotelStay       `json:"hotel,omitempty"`
	Destination *DestinationStay `json:"destination,omitempty"`
	Pack        *PackStay        `json:"pack,omitempty"`
}

// Validate checks the tagged-union invariant
func (r *Reservation) Validate() error {
	set := 0
	if r.Hotel != nil {
		set++
	}
	if r.Destination != nil {
		set++
	}
	if r.Pack != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: %d payloads set", ErrKindMismatch, set)
	}

	switch r.Kind {
	case enum.ReservationKindHotel:
		if r.Hotel == nil {
			return fmt.Errorf("%w: expected hotel", ErrKindMismatch)
		}
	case enum.ReservationKindDestination:
		if r.Destination == nil {
			return fmt.Errorf("%w: expected destination", ErrKindMismatch)
		}
	case enum.ReservationKindPack:
		if r.Pack == nil {
			return fmt.Errorf("%w: expected pack", ErrKindMismatch)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrKindMismatch, int(r.Kind))
	}
	return nil
}

// AccommodationName is the hotel, destination or pack name
func (r *Reservation) AccommodationName() string {
	var name string
	switch {
	case r.Hotel != nil:
		name = r.Hotel.Name
	case r.Destination != nil:
		name = r.Destination.Name
	case r.Pack != nil:
		name = r.Pack.Name
	}
	if strings.TrimSpace(name) == "" {
		return PlaceholderLabel
	}
	return name
}

// LocationLabel is the printed location line of the accommodation
func (r *Reservation) LocationLabel() string {
	var parts []string
	switch {
	case r.Hotel != nil:
		parts = []string{r.Hotel.Location}
	case r.Destination != nil:
		parts = []string{r.Destination.Country, r.Destination.Location}
	case r.Pack != nil:
		parts = []string{r.Pack.Location}
	}

	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return PlaceholderLabel
	}
	return strings.Join(kept, " • ")
}

// HotelID returns the linked hotel id, 0 when none
func (r *Reservation) HotelID() int64 {
	if r.Hotel == nil {
		return 0
	}
	return r.Hotel.HotelID
}

// UnitPrice is the pack's per-person per-night price, if any
func (r *Reservation) UnitPrice() decimal.NullDecimal {
	if r.Pack == nil {
		return decimal.NullDecimal{}
	}
	return r.Pack.PricePerPerson
}

// Clone returns a copy that can be modified without touching r
func (r *Reservation) Clone() *Reservation {
	c := *r
	if r.Hotel != nil {
		h := *r.Hotel
		c.Hotel = &h
	}
	if r.Destination != nil {
		d := *r.Destination
		c.Destination = &d
	}
	if r.Pack != nil {
		p := *r.Pack
		c.Pack = &p
	}
	return &c
}

// JoinLocation formats city and country as "city, country", falling back
// to fallback when both are blank.
func JoinLocation(city, country, fallback string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(fallback)
	}
	return strings.Join(parts, ", ")
}
