package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/reservation-invoicing/internal/domain/enum"
	"github.com/sangkips/reservation-invoicing/internal/infrastructure/upstream"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/request"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/response"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/middleware"
	"github.com/sangkips/reservation-invoicing/pkg/apperror"
	"golang.org/x/oauth2"
)

// GetSubject extracts the authenticated subject from the Gin context
func GetSubject(c *gin.Context) string {
	return c.GetString(middleware.ContextSubject)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	return c.GetStringSlice(middleware.ContextUserRoles)
}

// Credential returns the caller's token as a credential for backend calls
func Credential(c *gin.Context) oauth2.TokenSource {
	return upstream.BearerCredential(c.GetString(middleware.ContextAccessToken))
}

// bindReservation parses the :kind and :id path parameters. On failure it
// writes a 400 response and returns false.
func bindReservation(c *gin.Context) (enum.ReservationKind, int64, bool) {
	var uri request.ReservationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return 0, 0, false
	}
	kind, err := enum.ParseReservationKind(uri.Kind)
	if err != nil {
		response.BadRequest(c, "Invalid reservation type. Use 'hotels', 'destinations' or 'packs'")
		return 0, 0, false
	}
	return kind, uri.ID, true
}

func bindKind(c *gin.Context) (enum.ReservationKind, bool) {
	var uri request.ReservationKindURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "Invalid reservation type")
		return 0, false
	}
	kind, err := enum.ParseReservationKind(uri.Kind)
	if err != nil {
		response.BadRequest(c, "Invalid reservation type. Use 'hotels', 'destinations' or 'packs'")
		return 0, false
	}
	return kind, true
}

// fieldErrors lists the failed binding rules of err, one per field
func fieldErrors(err error) []apperror.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out = append(out, apperror.FieldError{Field: strings.ToLower(fe.Field()), Message: msg})
	}
	return out
}
