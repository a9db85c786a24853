package render

import (
	"github.com/sangkips/reservation-invoicing/internal/invoice"
	"github.com/sangkips/reservation-invoicing/pkg/printer"
)

// ThermalRenderer lays an invoice out as an ESC/POS ticket
type ThermalRenderer struct {
	charWidth int
	company   string
}

// NewThermalRenderer creates a renderer for paper of charWidth characters
func NewThermalRenderer(charWidth int, company string) *ThermalRenderer {
	return &ThermalRenderer{charWidth: charWidth, company: company}
}

func (r *ThermalRenderer) Format() Format {
	return FormatESCPOS
}

func (r *ThermalRenderer) Render(doc *invoice.Document) (*Artifact, error) {
	p := printer.NewDocument(r.charWidth)

	// Header
	p.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(doc.Title).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.company != "" {
		p.Text(r.company)
	}
	p.SetAlign(printer.AlignLeft).
		Separator('-')

	p.KeyValue("Invoice:", doc.DocumentID).
		KeyValue("Date:", doc.IssueDate).
		KeyValue("Client:", doc.Header.PartyName).
		KeyValue("Email:", doc.Header.PartyEmail).
		Separator('-')

	p.SetBold(true).Text(doc.Header.AccommodationLabel).SetBold(false).
		Text(doc.Header.LocationLabel)
	if doc.Header.HotelName != "" {
		p.KeyValue("Hotel:", doc.Header.HotelName)
	}
	if doc.Header.DestinationName != "" {
		p.KeyValue("Destination:", doc.Header.DestinationName)
	}
	p.KeyValue("Check-in:", doc.StayWindow.CheckIn).
		KeyValue("Check-out:", doc.StayWindow.CheckOut).
		KeyValueInt("Nights:", doc.StayWindow.Nights).
		KeyValue("Meal plan:", doc.MealPlan.Label).
		Separator('-')

	// Rows
	for _, row := range doc.Rows {
		if row.Kind == invoice.RowTotal {
			p.Separator('-').
				SetBold(true).
				KeyValue(row.Label+":", row.Display).
				SetBold(false)
			if row.Detail != "" {
				p.Indented(row.Detail)
			}
			continue
		}
		p.KeyValue(row.Label, row.Display)
		if row.Formula != "" {
			p.Indented(row.Formula)
		}
		if row.Detail != "" {
			p.Indented(row.Detail)
		}
	}
	p.Separator('-')

	// Footer
	for _, note := range doc.Notes {
		p.Text(note)
	}
	p.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your booking!").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return &Artifact{
		Format:      FormatESCPOS,
		ContentType: "application/octet-stream",
		FileName:    doc.FileName("bin"),
		Data:        p.Bytes(),
	}, nil
}
