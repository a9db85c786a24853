package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"github.com/sangkips/reservation-invoicing/internal/invoice"
	"github.com/sangkips/reservation-invoicing/internal/metrics"
	"github.com/sangkips/reservation-invoicing/internal/render"
	"github.com/sangkips/reservation-invoicing/pkg/apperror"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

// InvoiceService derives invoices and produces their artifacts
type InvoiceService struct {
	reservations *ReservationService
	details      repository.InvoiceDetailSource
	renderers    render.Set
	printer      *PrinterService
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service. details may be nil when
// the source has no separate invoice records.
func NewInvoiceService(
	reservations *ReservationService,
	details repository.InvoiceDetailSource,
	renderers render.Set,
	printerSvc *PrinterService,
	m *metrics.Metrics,
	logger *slog.Logger,
) *InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{
		reservations: reservations,
		details:      details,
		renderers:    renderers,
		printer:      printerSvc,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// PrintResult is the outcome of a print request
type PrintResult struct {
	Printed  bool              `json:"printed"`
	Document *invoice.Document `json:"document"`
}

// DeriveInvoice loads a reservation with its optional invoice detail and
// builds the invoice document.
func (s *InvoiceService) DeriveInvoice(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*invoice.Document, error) {
	res, err := s.reservations.Get(ctx, cred, kind, id)
	if err != nil {
		return nil, err
	}

	detail := s.loadDetail(ctx, cred, kind, id)
	doc, err := invoice.Derive(res, detail, s.now())
	if err != nil {
		if errors.Is(err, invoice.ErrMissingIdentifier) {
			return nil, apperror.ProduceDocumentError(http.StatusUnprocessableEntity, err)
		}
		return nil, apperror.ProduceDocumentError(http.StatusInternalServerError, err)
	}

	s.compareDetail(doc, detail)
	if s.metrics != nil {
		s.metrics.Derivation(kind.String(), string(doc.Breakdown.Path))
	}
	s.logger.Debug("invoice derived",
		"document_id", doc.DocumentID,
		"path", doc.Breakdown.Path,
		"total", doc.Breakdown.GrandTotal.StringFixed(2),
	)
	return doc, nil
}

// RenderInvoice derives the invoice and renders it in format f
func (s *InvoiceService) RenderInvoice(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64, f render.Format) (*render.Artifact, error) {
	doc, err := s.DeriveInvoice(ctx, cred, kind, id)
	if err != nil {
		return nil, err
	}
	return s.render(doc, f)
}

// PrintInvoice derives the invoice and sends its ticket to the thermal
// printer. Without a configured printer the document is returned unprinted.
func (s *InvoiceService) PrintInvoice(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) (*PrintResult, error) {
	doc, err := s.DeriveInvoice(ctx, cred, kind, id)
	if err != nil {
		return nil, err
	}

	art, err := s.render(doc, render.FormatESCPOS)
	if err != nil {
		return nil, err
	}

	printed, err := s.printer.Send(ctx, art.Data)
	if err != nil {
		return nil, apperror.ProduceDocumentError(http.StatusServiceUnavailable, err)
	}
	return &PrintResult{Printed: printed, Document: doc}, nil
}

func (s *InvoiceService) render(doc *invoice.Document, f render.Format) (*render.Artifact, error) {
	art, err := s.renderers.Render(f, doc)
	if s.metrics != nil {
		s.metrics.Render(string(f), err)
	}
	if err != nil {
		s.logger.Error("invoice render failed", "document_id", doc.DocumentID, "format", f, "error", err)
		return nil, apperror.ProduceDocumentError(http.StatusInternalServerError, err)
	}
	return art, nil
}

// loadDetail fetches the invoice detail. Any failure degrades to nil.
func (s *InvoiceService) loadDetail(ctx context.Context, cred oauth2.TokenSource, kind enum.ReservationKind, id int64) *entity.InvoiceDetail {
	if s.details == nil {
		return nil
	}

	detail, err := s.details.GetInvoiceDetail(ctx, cred, kind, id)
	if err != nil {
		s.logger.Warn("invoice detail lookup failed, using reservation only",
			"kind", kind.String(),
			"reservation_id", id,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.DegradedLookup(metrics.LookupInvoiceDetail)
		}
		return nil
	}
	return detail
}

// compareDetail logs every backend-computed figure that disagrees with the
// local pricing. The local figures are kept.
func (s *InvoiceService) compareDetail(doc *invoice.Document, detail *entity.InvoiceDetail) {
	if detail == nil {
		return
	}
	b := doc.Breakdown

	if detail.Nights != nil && *detail.Nights != b.Nights {
		s.mismatch(doc, "nights", decimal.NewFromInt(int64(*detail.Nights)), decimal.NewFromInt(int64(b.Nights)))
	}
	if detail.PayingPeople != nil && *detail.PayingPeople != b.PayingPeople {
		s.mismatch(doc, "paying_people", decimal.NewFromInt(int64(*detail.PayingPeople)), decimal.NewFromInt(int64(b.PayingPeople)))
	}
	if detail.MealPlanExtra.Valid && !detail.MealPlanExtra.Decimal.Equal(b.MealPlanSurcharge) {
		s.mismatch(doc, "meal_plan_extra", detail.MealPlanExtra.Decimal, b.MealPlanSurcharge)
	}
	if detail.BasePackTotal.Valid && !detail.BasePackTotal.Decimal.Equal(b.BaseAccommodationTotal) {
		s.mismatch(doc, "base_total", detail.BasePackTotal.Decimal, b.BaseAccommodationTotal)
	}
	if detail.MealPlanTotal.Valid && !detail.MealPlanTotal.Decimal.Equal(b.MealPlanTotal) {
		s.mismatch(doc, "meal_plan_total", detail.MealPlanTotal.Decimal, b.MealPlanTotal)
	}
}

func (s *InvoiceService) mismatch(doc *invoice.Document, field string, backend, local decimal.Decimal) {
	s.logger.Warn("invoice figure differs from backend",
		"document_id", doc.DocumentID,
		"field", field,
		"backend", backend.String(),
		"local", local.String(),
	)
	if s.metrics != nil {
		s.metrics.PriceMismatch(field)
	}
}
