package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/reservation-invoicing/internal/application/service"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/response"
	"github.com/sangkips/reservation-invoicing/internal/render"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Get returns the invoice document as JSON
func (h *InvoiceHandler) Get(c *gin.Context) {
	kind, id, ok := bindReservation(c)
	if !ok {
		return
	}

	doc, err := h.invoiceService.DeriveInvoice(c.Request.Context(), Credential(c), kind, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice derived successfully", doc)
}

// Download returns a handler serving the invoice rendered in format f
func (h *InvoiceHandler) Download(f render.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, id, ok := bindReservation(c)
		if !ok {
			return
		}

		art, err := h.invoiceService.RenderInvoice(c.Request.Context(), Credential(c), kind, id, f)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Attachment(c, art.FileName, art.ContentType, art.Data)
	}
}

// Print sends the invoice ticket to the thermal printer
func (h *InvoiceHandler) Print(c *gin.Context) {
	kind, id, ok := bindReservation(c)
	if !ok {
		return
	}

	result, err := h.invoiceService.PrintInvoice(c.Request.Context(), Credential(c), kind, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Printed {
		response.OK(c, "Invoice generated (no printer configured)", result)
		return
	}
	response.OK(c, "Invoice sent to printer", result)
}
