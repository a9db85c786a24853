package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/pricing"
	"github.com/shopspring/decimal"
)

const (
	babiesNote  = "Babies (0-2 years) are not counted in capacity or price."
	noPriceNote = "No price information is available for this reservation."
	splitNote   = "Amounts are split from the booked total by headcount; meal plan is included."
)

// Assemble lays out an already reconciled breakdown as an invoice
// document. It computes nothing new.
func Assemble(res *entity.Reservation, b pricing.CostBreakdown, issued time.Time) (*Document, error) {
	if res == nil || res.ID <= 0 {
		return nil, ErrMissingIdentifier
	}

	doc := &Document{
		DocumentID: res.Kind.ShortCode() + "-" + strconv.FormatInt(res.ID, 10),
		Kind:       res.Kind,
		Title:      res.Kind.Title(),
		IssueDate:  issued.Format(entity.DateLayout),
		Currency:   pricing.Currency,
		Header: Header{
			PartyName:          orPlaceholder(res.Guest.Name),
			PartyEmail:         orPlaceholder(res.Guest.Email),
			AccommodationLabel: res.AccommodationName(),
			LocationLabel:      res.LocationLabel(),
		},
		StayWindow: StayWindow{
			CheckIn:  dateLabel(res.CheckIn),
			CheckOut: dateLabel(res.CheckOut),
			Nights:   b.Nights,
		},
		MealPlan: MealPlan{
			Code:      b.MealPlanCode,
			Label:     b.MealPlanLabel,
			Surcharge: b.MealPlanSurcharge,
		},
		Breakdown: b,
		Notes:     []string{babiesNote},
	}
	if res.Pack != nil {
		doc.Header.HotelName = res.Pack.HotelName
		doc.Header.DestinationName = res.Pack.DestinationName
	}

	doc.Rows = accommodationRows(b)
	doc.Rows = append(doc.Rows, mealPlanRow(b), totalRow(b))

	if b.Path == pricing.PathAggregate {
		doc.Notes = append(doc.Notes, splitNote)
	}
	if !b.HasPrice() {
		doc.Notes = append(doc.Notes, noPriceNote)
	}
	return doc, nil
}

func accommodationRows(b pricing.CostBreakdown) []Row {
	rows := make([]Row, 0, len(b.Lines))
	for _, l := range b.Lines {
		row := Row{
			Kind:    RowAccommodation,
			Label:   l.Label,
			Amount:  l.Amount,
			Display: pricing.FormatMoney(l.Amount),
		}
		switch {
		case l.Category == pricing.CategoryRoom:
			row.Detail = fmt.Sprintf("%d paying, %d %s", l.Quantity, l.Babies, plural(l.Babies, "baby", "babies"))
			row.Formula = formula(l.UnitPrice, l.Quantity, l.Nights)
		case b.Path == pricing.PathAggregate:
			row.Detail = fmt.Sprintf("%d %s", l.Quantity, plural(l.Quantity, "guest", "guests"))
			row.Formula = fmt.Sprintf("%s × %d/%d", pricing.FormatAmount(b.GrandTotal), l.Quantity, max(b.PayingPeople, 1))
		default:
			row.Detail = fmt.Sprintf("%d %s", l.Quantity, plural(l.Quantity, "guest", "guests"))
			row.Formula = formula(l.UnitPrice, l.Quantity, l.Nights)
		}
		rows = append(rows, row)
	}
	return rows
}

func mealPlanRow(b pricing.CostBreakdown) Row {
	row := Row{
		Kind:    RowMealPlan,
		Label:   "Meal plan: " + b.MealPlanLabel,
		Amount:  b.MealPlanTotal,
		Display: pricing.FormatMoney(b.MealPlanTotal),
	}
	if b.Path == pricing.PathAggregate {
		row.Detail = "included in total"
		return row
	}
	row.Formula = formula(b.MealPlanSurcharge, b.PayingPeople, b.Nights)
	return row
}

func totalRow(b pricing.CostBreakdown) Row {
	row := Row{
		Kind:    RowTotal,
		Label:   "TOTAL",
		Amount:  b.GrandTotal,
		Display: pricing.FormatMoney(b.GrandTotal),
	}
	if b.AuthoritativeTotalUsed && !b.GrandTotal.Equal(b.ComputedTotal) && b.Path != pricing.PathAggregate {
		row.Detail = "booked total, computed " + pricing.FormatMoney(b.ComputedTotal)
	}
	return row
}

func formula(unit decimal.Decimal, qty, nights int) string {
	return fmt.Sprintf("%s × %d × %d", pricing.FormatAmount(unit), qty, nights)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func dateLabel(d *entity.Date) string {
	if d == nil || d.IsZero() {
		return entity.PlaceholderLabel
	}
	return d.String()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return entity.PlaceholderLabel
	}
	return s
}
