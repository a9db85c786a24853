// Package invoice shapes a reconciled cost breakdown into the invoice
// document handed to renderers.
package invoice

import (
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/sangkips/reservation-invoicing/internal/pricing"
	"github.com/shopspring/decimal"
)

// RowKind orders the rows of an invoice table
type RowKind string

const (
	RowAccommodation RowKind = "accommodation"
	RowMealPlan      RowKind = "meal_plan"
	RowTotal         RowKind = "total"
)

// Document is the renderer-facing invoice. Field names and row order are
// a stable contract: accommodation rows, then one meal-plan row, then one
// total row.
type Document struct {
	DocumentID string                `json:"documentId"`
	Kind       enum.ReservationKind  `json:"kind"`
	Title      string                `json:"title"`
	IssueDate  string                `json:"issueDate"`
	Currency   string                `json:"currency"`
	Header     Header                `json:"header"`
	StayWindow StayWindow            `json:"stayWindow"`
	MealPlan   MealPlan              `json:"mealPlan"`
	Rows       []Row                 `json:"rows"`
	Breakdown  pricing.CostBreakdown `json:"breakdown"`
	Notes      []string              `json:"notes"`
}

type Header struct {
	PartyName          string `json:"partyName"`
	PartyEmail         string `json:"partyEmail"`
	AccommodationLabel string `json:"accommodationLabel"`
	LocationLabel      string `json:"locationLabel"`
	HotelName          string `json:"hotelName,omitempty"`
	DestinationName    string `json:"destinationName,omitempty"`
}

type StayWindow struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   int    `json:"nights"`
}

type MealPlan struct {
	Code      enum.MealPlan   `json:"code"`
	Label     string          `json:"label"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// Row is one printed line of the invoice table
type Row struct {
	Kind    RowKind         `json:"kind"`
	Label   string          `json:"label"`
	Detail  string          `json:"detail,omitempty"`
	Formula string          `json:"formula,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

// Total returns the total row
func (d *Document) Total() Row {
	for _, r := range d.Rows {
		if r.Kind == RowTotal {
			return r
		}
	}
	return Row{Kind: RowTotal, Amount: decimal.Zero, Display: pricing.FormatMoney(decimal.Zero)}
}

// FileName is the artifact name for the given extension ("xlsx", "bin")
func (d *Document) FileName(ext string) string {
	return d.DocumentID + "." + ext
}
