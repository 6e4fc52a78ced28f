package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/service"
)

// ErrorHandler maps service errors to HTTP statuses in one place, so
// handlers return errors as-is instead of translating them individually.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrVenueNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrEquipmentNotFound),
		errors.Is(err, service.ErrMaintenanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidStateTransition),
		errors.Is(err, service.ErrVenueUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
