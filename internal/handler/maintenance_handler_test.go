package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/repository"
	"github.com/unievents/venue-booking-service/internal/service"
)

// --- Mock MaintenanceService ---

type mockMaintenanceService struct {
	createFn       func(ctx context.Context, in service.CreateMaintenanceInput) (*models.MaintenanceRequest, error)
	assignFn       func(ctx context.Context, requestID, technicianID uint, actorID *uint) (*models.MaintenanceRequest, error)
	updateStatusFn func(ctx context.Context, requestID uint, status models.MaintenanceStatus, notes *string, actorID *uint) (*models.MaintenanceRequest, error)
	listFn         func(ctx context.Context, filter repository.MaintenanceFilter) ([]models.MaintenanceRequest, error)
}

func (m *mockMaintenanceService) Create(ctx context.Context, in service.CreateMaintenanceInput) (*models.MaintenanceRequest, error) {
	return m.createFn(ctx, in)
}
func (m *mockMaintenanceService) Assign(ctx context.Context, requestID, technicianID uint, actorID *uint) (*models.MaintenanceRequest, error) {
	return m.assignFn(ctx, requestID, technicianID, actorID)
}
func (m *mockMaintenanceService) UpdateStatus(ctx context.Context, requestID uint, status models.MaintenanceStatus, notes *string, actorID *uint) (*models.MaintenanceRequest, error) {
	return m.updateStatusFn(ctx, requestID, status, notes, actorID)
}
func (m *mockMaintenanceService) Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	return nil, nil
}
func (m *mockMaintenanceService) List(ctx context.Context, filter repository.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}
func (m *mockMaintenanceService) ListAssigned(ctx context.Context, userID uint) ([]models.MaintenanceRequest, error) {
	return nil, nil
}

// --- Tests ---

func TestCreateMaintenance_Handler_Success(t *testing.T) {
	svc := &mockMaintenanceService{
		createFn: func(ctx context.Context, in service.CreateMaintenanceInput) (*models.MaintenanceRequest, error) {
			return &models.MaintenanceRequest{
				ID:          4,
				VenueID:     in.VenueID,
				ReportedBy:  in.ReportedBy,
				Title:       in.Title,
				Description: in.Description,
				Priority:    in.Priority,
				Status:      models.MaintenanceOpen,
				CreatedAt:   time.Now(),
			}, nil
		},
	}

	body := `{"venue_id":2,"title":"Broken window","description":"Back row window does not close","priority":"high"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/maintenance", body, organizer())

	h := NewMaintenanceHandler(svc)
	err := h.CreateRequest(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.MaintenanceResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(4), resp.ID)
	assert.Equal(t, uint(7), resp.ReportedBy)
	assert.Equal(t, models.PriorityHigh, resp.Priority)
	assert.Equal(t, models.MaintenanceOpen, resp.Status)
}

func TestCreateMaintenance_Handler_InvalidPriority(t *testing.T) {
	svc := &mockMaintenanceService{}

	body := `{"venue_id":2,"title":"Broken window","description":"x","priority":"catastrophic"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/maintenance", body, organizer())

	h := NewMaintenanceHandler(svc)
	err := h.CreateRequest(c)

	assert.Error(t, err)
	middleware.ErrorHandler(err, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignMaintenance_Handler_TerminalRequest(t *testing.T) {
	svc := &mockMaintenanceService{
		assignFn: func(ctx context.Context, requestID, technicianID uint, actorID *uint) (*models.MaintenanceRequest, error) {
			return nil, service.ErrInvalidStateTransition
		},
	}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/maintenance/9/assign",
		`{"assigned_to":3}`, organizer())
	c.SetParamNames("id")
	c.SetParamValues("9")

	h := NewMaintenanceHandler(svc)
	err := h.AssignRequest(c)

	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)
	middleware.ErrorHandler(err, c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateMaintenanceStatus_Handler_NotFound(t *testing.T) {
	svc := &mockMaintenanceService{
		updateStatusFn: func(ctx context.Context, requestID uint, status models.MaintenanceStatus, notes *string, actorID *uint) (*models.MaintenanceRequest, error) {
			return nil, service.ErrMaintenanceNotFound
		},
	}

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/maintenance/42/status",
		`{"status":"completed"}`, organizer())
	c.SetParamNames("id")
	c.SetParamValues("42")

	h := NewMaintenanceHandler(svc)
	err := h.UpdateStatus(c)

	assert.ErrorIs(t, err, service.ErrMaintenanceNotFound)
	middleware.ErrorHandler(err, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMaintenance_Handler_PassesFilter(t *testing.T) {
	var got repository.MaintenanceFilter
	svc := &mockMaintenanceService{
		listFn: func(ctx context.Context, filter repository.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
			got = filter
			return nil, nil
		},
	}

	c, rec := newTestContext(t, http.MethodGet,
		"/api/v1/admin/maintenance?status=open&priority=urgent&assigned_to=5&limit=10", "", organizer())

	h := NewMaintenanceHandler(svc)
	err := h.ListRequests(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MaintenanceOpen, got.Status)
	assert.Equal(t, models.PriorityUrgent, got.Priority)
	assert.Equal(t, uint(5), got.AssignedTo)
	assert.Equal(t, 10, got.Limit)
}
