package upstream

import (
	"context"
	"fmt"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"golang.org/x/oauth2"
)

type hotelPayload struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Location string `json:"location"`
}

type hotelAPI struct {
	client  *Client
	service oauth2.TokenSource
}

// NewHotelAPI resolves hotel locations through the backend's hotel
// endpoint. When service is non-nil it replaces the caller's credential, so
// results are the same for every caller.
func NewHotelAPI(client *Client, service oauth2.TokenSource) domainRepo.AccommodationDirectory {
	return &hotelAPI{client: client, service: service}
}

// LocationOf returns "city, country" with blank parts dropped. A hotel with
// neither falls back to its free-text location, which may be empty.
func (a *hotelAPI) LocationOf(ctx context.Context, cred oauth2.TokenSource, hotelID int64) (string, error) {
	if a.service != nil {
		cred = a.service
	}

	var h hotelPayload
	if err := a.client.getJSON(ctx, cred, fmt.Sprintf("/api/hotels/%d", hotelID), &h); err != nil {
		return "", err
	}
	return entity.JoinLocation(h.City, h.Country, h.Location), nil
}
