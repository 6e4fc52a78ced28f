package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/service"
)

func admin() *models.User {
	return &models.User{ID: 1, Name: "Priya", Email: "priya@university.edu", Role: models.RoleAdmin, IsActive: true}
}

func TestApproveBooking_Handler_Success(t *testing.T) {
	var gotActor *uint
	svc := &mockBookingService{
		approveFn: func(ctx context.Context, bookingID uint, actorID *uint, notes *string) (*models.Booking, error) {
			gotActor = actorID
			return &models.Booking{ID: bookingID, Status: models.StatusApproved, TotalCost: 200}, nil
		},
	}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/requests/3/approve", `{}`, admin())
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewAdminHandler(svc, nil)
	err := h.ApproveBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, gotActor) {
		assert.Equal(t, uint(1), *gotActor)
	}

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusApproved, resp.Status)
	assert.Equal(t, 200.0, resp.TotalCost)
}

func TestApproveBooking_Handler_AlreadyDecided(t *testing.T) {
	svc := &mockBookingService{
		approveFn: func(ctx context.Context, bookingID uint, actorID *uint, notes *string) (*models.Booking, error) {
			return nil, service.ErrInvalidStateTransition
		},
	}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/requests/3/approve", `{}`, admin())
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewAdminHandler(svc, nil)
	err := h.ApproveBooking(c)

	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)
	middleware.ErrorHandler(err, c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveBooking_Handler_VenueTaken(t *testing.T) {
	svc := &mockBookingService{
		approveFn: func(ctx context.Context, bookingID uint, actorID *uint, notes *string) (*models.Booking, error) {
			return nil, service.ErrVenueUnavailable
		},
	}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/requests/3/approve", `{}`, admin())
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewAdminHandler(svc, nil)
	err := h.ApproveBooking(c)

	assert.ErrorIs(t, err, service.ErrVenueUnavailable)
	middleware.ErrorHandler(err, c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRejectBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		rejectFn: func(ctx context.Context, bookingID uint, actorID *uint, reason string) (*models.Booking, error) {
			return &models.Booking{ID: bookingID, Status: models.StatusRejected, RejectionReason: &reason}, nil
		},
	}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/requests/3/reject", `{"reason":"Venue unavailable"}`, admin())
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewAdminHandler(svc, nil)
	err := h.RejectBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusRejected, resp.Status)
	if assert.NotNil(t, resp.RejectionReason) {
		assert.Equal(t, "Venue unavailable", *resp.RejectionReason)
	}
}

func TestRejectBooking_Handler_MissingReason(t *testing.T) {
	svc := &mockBookingService{}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/requests/3/reject", `{}`, admin())
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewAdminHandler(svc, nil)
	err := h.RejectBooking(c)

	middleware.ErrorHandler(err, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
