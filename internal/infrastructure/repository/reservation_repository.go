package repository

import (
	"context"
	"errors"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// reservationRow is one row of a reservation view. Columns a view lacks
// stay zero.
type reservationRow struct {
	ID        int64
	UserID    *int64
	UserName  string
	UserEmail string

	HotelID       *int64
	HotelName     string
	HotelLocation string

	PackID       *int64
	PackName     string
	PackLocation string
	Location     string

	DestinationID       *int64
	DestinationName     string
	DestinationCountry  string
	DestinationLocation string

	CheckIn  *entity.Date
	CheckOut *entity.Date
	Adults   *int
	Children *int
	Babies   *int

	MealPlan       enum.MealPlan
	TotalAmount    decimal.NullDecimal
	PricePerPerson decimal.NullDecimal
	CreatedAt      *entity.Date

	RoomNames    entity.LedgerColumn
	RoomPrices   entity.LedgerColumn
	RoomAdults   entity.LedgerColumn
	RoomChildren entity.LedgerColumn
	RoomBabies   entity.LedgerColumn
}

func (r *reservationRow) record() *entity.ReservationRecord {
	return &entity.ReservationRecord{
		ID:                  r.ID,
		UserID:              r.UserID,
		UserName:            r.UserName,
		UserEmail:           r.UserEmail,
		HotelID:             r.HotelID,
		HotelName:           r.HotelName,
		HotelLocation:       r.HotelLocation,
		PackID:              r.PackID,
		PackName:            r.PackName,
		PackLocation:        r.PackLocation,
		Location:            r.Location,
		DestinationID:       r.DestinationID,
		DestinationName:     r.DestinationName,
		DestinationCountry:  r.DestinationCountry,
		DestinationLocation: r.DestinationLocation,
		CheckIn:             r.CheckIn,
		CheckOut:            r.CheckOut,
		Adults:              r.Adults,
		Children:            r.Children,
		Babies:              r.Babies,
		MealPlan:            r.MealPlan,
		TotalAmount:         r.TotalAmount,
		PricePerPerson:      r.PricePerPerson,
		CreatedAt:           r.CreatedAt,
		RoomLedger: entity.RoomLedger{
			Names:    r.RoomNames,
			Prices:   r.RoomPrices,
			Adults:   r.RoomAdults,
			Children: r.RoomChildren,
			Babies:   r.RoomBabies,
		},
	}
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository reads reservations straight from the booking
// database. The credential is ignored; access is the database user's.
func NewReservationRepository(db *gorm.DB) domainRepo.ReservationSource {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Get(ctx context.Context, _ oauth2.TokenSource, kind enum.ReservationKind, id int64) (*entity.Reservation, error) {
	var row reservationRow
	err := r.db.WithContext(ctx).
		Scopes(ReservationViewScope(kind)).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.record().ToReservation(kind), nil
}

func (r *reservationRepository) List(ctx context.Context, _ oauth2.TokenSource, kind enum.ReservationKind) ([]entity.Reservation, error) {
	var rows []reservationRow
	err := r.db.WithContext(ctx).
		Scopes(ReservationViewScope(kind)).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Reservation, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].record().ToReservation(kind))
	}
	return out, nil
}
