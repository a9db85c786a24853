package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangkips/reservation-invoicing/pkg/printer"
)

// PrinterService owns the thermal printer connection.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	logger      *slog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, logger *slog.Logger) *PrinterService {
	if p == nil {
		p = printer.NewNullPrinter()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Configured reports whether a real printer is attached
func (s *PrinterService) Configured() bool {
	return s.printerType != printer.TypeNone && s.printerType != ""
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.Configured(),
		Connected:  s.Configured() && s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// Send writes ESC/POS bytes to the printer. It reports false without error
// when no printer is configured.
func (s *PrinterService) Send(ctx context.Context, data []byte) (bool, error) {
	if !s.Configured() {
		return false, nil
	}
	if err := s.printer.Print(ctx, data); err != nil {
		s.logger.Error("printer error", "type", s.printerType, "error", err)
		return false, fmt.Errorf("print failed: %w", err)
	}
	return true, nil
}
