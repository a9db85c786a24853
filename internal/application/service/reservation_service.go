package service

import (
	"context"
	"log/slog"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"github.com/sangkips/reservation-invoicing/internal/metrics"
	"github.com/sangkips/reservation-invoicing/pkg/apperror"
	"github.com/sangkips/reservation-invoicing/pkg/pagination"
	"golang.org/x/oauth2"
)

// ReservationService reads reservations for the admin views
type ReservationService struct {
	reservations repository.ReservationSource
	hotels       repository.AccommodationDirectory
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewReservationService creates a new reservation service. hotels may be
// nil, in which case hotel locations are left as the source reports them.
func NewReservationService(
	reservations repository.ReservationSource,
	hotels repository.AccommodationDirectory,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ReservationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationService{
		reservations: reservations,
		hotels:       hotels,
		metrics:      m,
		logger:       logger,
	}
}

// List returns one page of reservation summaries of the given kind
func (s *ReservationService) List(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ReservationSummary], error) {
	all, err := s.reservations.List(ctx, cred, kind)
	if err != nil {
		return nil, loadError(err)
	}

	summaries := make([]entity.ReservationSummary, 0, len(all))
	for i := range all {
		summaries = append(summaries, all[i].Summary())
	}
	return pagination.Slice(summaries, params), nil
}

// Get loads one reservation and resolves its hotel location
func (s *ReservationService) Get(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*entity.Reservation, error) {
	res, err := s.reservations.Get(ctx, cred, kind, id)
	if err != nil {
		return nil, loadError(err)
	}
	if res == nil {
		return nil, apperror.NewNotFoundError("Reservation")
	}
	if err := res.Validate(); err != nil {
		return nil, apperror.LoadReservationError(err)
	}

	s.resolveHotelLocation(ctx, cred, res)
	return res, nil
}

// resolveHotelLocation replaces the hotel location with the directory's
// "city, country". A failed lookup keeps what the reservation carried, or
// the placeholder when it carried nothing.
func (s *ReservationService) resolveHotelLocation(ctx context.Context, cred oauth2.TokenSource, res *entity.Reservation) {
	if res.Hotel == nil || s.hotels == nil {
		return
	}

	hotelID := res.HotelID()
	if hotelID <= 0 {
		if res.Hotel.Location == "" {
			res.Hotel.Location = entity.PlaceholderLabel
		}
		return
	}

	loc, err := s.hotels.LocationOf(ctx, cred, hotelID)
	if err != nil {
		s.logger.Warn("hotel location lookup failed",
			"reservation_id", res.ID,
			"hotel_id", hotelID,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.DegradedLookup(metrics.LookupLocation)
		}
	}
	switch {
	case loc != "":
		res.Hotel.Location = loc
	case res.Hotel.Location == "":
		res.Hotel.Location = entity.PlaceholderLabel
	}
}

// loadError passes auth failures through and hides everything else
// behind the generic load failure.
func loadError(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.LoadReservationError(err)
}
