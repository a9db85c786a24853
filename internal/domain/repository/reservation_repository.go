package repository

import (
	"context"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"golang.org/x/oauth2"
)

// Every lookup takes the caller's credential explicitly. Implementations
// that talk to the booking backend forward it; database-backed ones ignore
// it. A nil credential means anonymous.

// ReservationSource loads reservations of one kind.
// Get returns (nil, nil) when the reservation does not exist.
type ReservationSource interface {
	Get(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*entity.Reservation, error)
	List(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind) ([]entity.Reservation, error)
}

// InvoiceDetailSource loads the secondary invoice detail record.
// It returns (nil, nil) when the backend has no detail for the reservation.
type InvoiceDetailSource interface {
	GetInvoiceDetail(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*entity.InvoiceDetail, error)
}

// AccommodationDirectory resolves the display location of a hotel
type AccommodationDirectory interface {
	LocationOf(ctx context.Context, cred oauth2.TokenSource, hotelID int64) (string, error)
}
