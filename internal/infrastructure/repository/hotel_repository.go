package repository

import (
	"context"
	"errors"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type hotelRow struct {
	City     string
	Country  string
	Location string
}

type hotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository resolves hotel locations from the hotels table
func NewHotelRepository(db *gorm.DB) domainRepo.AccommodationDirectory {
	return &hotelRepository{db: db}
}

// LocationOf returns "" for an unknown hotel
func (r *hotelRepository) LocationOf(ctx context.Context, _ oauth2.TokenSource, hotelID int64) (string, error) {
	var row hotelRow
	err := r.db.WithContext(ctx).
		Table("hotels").
		Select("city, country, location").
		Where("id = ?", hotelID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entity.JoinLocation(row.City, row.Country, row.Location), nil
}
