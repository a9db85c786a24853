package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"golang.org/x/oauth2"
)

const adminReservationsPath = "/api/admin/reservations"

// ReservationAPI serves both reservations and their invoice details
type ReservationAPI struct {
	client *Client
}

// NewReservationAPI reads from the backend's admin endpoints
func NewReservationAPI(client *Client) *ReservationAPI {
	return &ReservationAPI{client: client}
}

var (
	_ domainRepo.ReservationSource   = (*ReservationAPI)(nil)
	_ domainRepo.InvoiceDetailSource = (*ReservationAPI)(nil)
)

func (a *ReservationAPI) Get(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*entity.Reservation, error) {
	var rec entity.ReservationRecord
	err := a.client.getJSON(ctx, cred, fmt.Sprintf("%s/%s/%d", adminReservationsPath, kind.Segment(), id), &rec)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.ToReservation(kind), nil
}

func (a *ReservationAPI) List(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind) ([]entity.Reservation, error) {
	var recs []entity.ReservationRecord
	err := a.client.getJSON(ctx, cred, fmt.Sprintf("%s/%s", adminReservationsPath, kind.Segment()), &recs)
	if errors.Is(err, ErrNotFound) {
		return []entity.Reservation{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]entity.Reservation, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].ToReservation(kind))
	}
	return out, nil
}

func (a *ReservationAPI) GetInvoiceDetail(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*entity.InvoiceDetail, error) {
	var detail entity.InvoiceDetail
	err := a.client.getJSON(ctx, cred, fmt.Sprintf("%s/%s/%d/invoice", adminReservationsPath, kind.Segment(), id), &detail)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
