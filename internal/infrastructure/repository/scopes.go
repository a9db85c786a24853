package repository

import (
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"gorm.io/gorm"
)

// Reporting views exposed by the booking database, one per reservation kind.
// Each view flattens the reservation with its guest and accommodation names
// using the same column names as the admin API (snake_cased).
var reservationViews = map[enum.ReservationKind]string{
	enum.ReservationKindHotel:       "v_hotel_reservations",
	enum.ReservationKindDestination: "v_destination_reservations",
	enum.ReservationKindPack:        "v_pack_reservations",
}

// ReservationViewScope points a query at the view serving kind. An unknown
// kind matches nothing.
func ReservationViewScope(kind enum.ReservationKind) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		view, ok := reservationViews[kind]
		if !ok {
			return db.Table(reservationViews[enum.ReservationKindHotel]).Where("1 = 0")
		}
		return db.Table(view)
	}
}
