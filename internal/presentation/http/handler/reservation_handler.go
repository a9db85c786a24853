package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/reservation-invoicing/internal/application/service"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/request"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/response"
	"github.com/sangkips/reservation-invoicing/pkg/pagination"
)

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// List returns a page of reservations of one kind
func (h *ReservationHandler) List(c *gin.Context) {
	kind, ok := bindKind(c)
	if !ok {
		return
	}

	var req request.ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if fields := fieldErrors(err); len(fields) > 0 {
			response.ValidationError(c, fields)
			return
		}
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}

	result, err := h.reservationService.List(c.Request.Context(), Credential(c), kind, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Reservations retrieved successfully", result)
}

// Get returns one reservation
func (h *ReservationHandler) Get(c *gin.Context) {
	kind, id, ok := bindReservation(c)
	if !ok {
		return
	}

	res, err := h.reservationService.Get(c.Request.Context(), Credential(c), kind, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation retrieved successfully", res)
}
