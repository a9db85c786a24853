package render

import (
	"fmt"

	"github.com/sangkips/reservation-invoicing/internal/invoice"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the invoice
const SheetName = "Invoice"

const amountFormat = "#,##0.00"

// XLSXRenderer lays an invoice out as a printable workbook
type XLSXRenderer struct {
	rowsPerPage int
	company     string
}

// NewXLSXRenderer creates a renderer that breaks the row table into pages
// of rowsPerPage rows.
func NewXLSXRenderer(rowsPerPage int, company string) *XLSXRenderer {
	if rowsPerPage <= 0 {
		rowsPerPage = 30
	}
	return &XLSXRenderer{rowsPerPage: rowsPerPage, company: company}
}

func (r *XLSXRenderer) Format() Format {
	return FormatXLSX
}

type xlsxStyles struct {
	title  int
	label  int
	header int
	amount int
	total  int
	note   int
}

func (r *XLSXRenderer) Render(doc *invoice.Document) (*Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("render: rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   doc.DocumentID,
		Subject: doc.Title,
		Creator: r.company,
	}); err != nil {
		return nil, fmt.Errorf("render: set properties: %w", err)
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}

	// Header
	w.set(1, 1, doc.Title, styles.title)
	w.merge(1, 1, 4, 1)
	if r.company != "" {
		w.set(1, 2, r.company, 0)
	}

	row := 4
	meta := [][2]string{
		{"Invoice", doc.DocumentID},
		{"Issue date", doc.IssueDate},
		{"Client", doc.Header.PartyName},
		{"Email", doc.Header.PartyEmail},
		{"Accommodation", doc.Header.AccommodationLabel},
		{"Location", doc.Header.LocationLabel},
	}
	if doc.Header.HotelName != "" {
		meta = append(meta, [2]string{"Hotel", doc.Header.HotelName})
	}
	if doc.Header.DestinationName != "" {
		meta = append(meta, [2]string{"Destination", doc.Header.DestinationName})
	}
	meta = append(meta,
		[2]string{"Check-in", doc.StayWindow.CheckIn},
		[2]string{"Check-out", doc.StayWindow.CheckOut},
		[2]string{"Nights", fmt.Sprint(doc.StayWindow.Nights)},
		[2]string{"Meal plan", doc.MealPlan.Label},
	)
	for _, kv := range meta {
		w.set(1, row, kv[0], styles.label)
		w.set(2, row, kv[1], 0)
		row++
	}
	row++

	// Rows
	header := func() {
		for col, title := range []string{"Description", "Detail", "Formula", "Amount (" + doc.Currency + ")"} {
			w.set(col+1, row, title, styles.header)
		}
		row++
	}
	header()

	onPage := 0
	for _, line := range doc.Rows {
		if onPage == r.rowsPerPage {
			w.pageBreak(row)
			header()
			onPage = 0
		}
		labelStyle, amountStyle := 0, styles.amount
		if line.Kind == invoice.RowTotal {
			labelStyle, amountStyle = styles.total, styles.total
		}
		w.set(1, row, line.Label, labelStyle)
		w.set(2, row, line.Detail, 0)
		w.set(3, row, line.Formula, 0)
		w.set(4, row, line.Amount.InexactFloat64(), amountStyle)
		row++
		onPage++
	}
	row++

	// Footer
	for _, note := range doc.Notes {
		w.set(1, row, note, styles.note)
		w.merge(1, row, 4, row)
		row++
	}

	if w.err != nil {
		return nil, fmt.Errorf("render: write sheet: %w", w.err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "C", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "D", "D", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render: encode workbook: %w", err)
	}

	return &Artifact{
		Format:      FormatXLSX,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FileName:    doc.FileName("xlsx"),
		Data:        buf.Bytes(),
	}, nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	numFmt := amountFormat

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&s.header, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
			Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		}},
		{&s.amount, &excelize.Style{CustomNumFmt: &numFmt}},
		{&s.total, &excelize.Style{
			Font:         &excelize.Font{Bold: true},
			CustomNumFmt: &numFmt,
			Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 2}},
		}},
		{&s.note, &excelize.Style{Font: &excelize.Font{Italic: true, Size: 9}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("render: create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

// sheetWriter keeps the first error so layout code stays linear
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	c := w.cell(col, row)
	if err := w.f.SetCellValue(SheetName, c, value); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(SheetName, c, c, style)
	}
}

func (w *sheetWriter) merge(fromCol, fromRow, toCol, toRow int) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(SheetName, w.cell(fromCol, fromRow), w.cell(toCol, toRow))
}

func (w *sheetWriter) pageBreak(row int) {
	if w.err != nil {
		return
	}
	w.err = w.f.InsertPageBreak(SheetName, w.cell(1, row))
}
