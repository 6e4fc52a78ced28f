package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/repository"
	"github.com/unievents/venue-booking-service/internal/service"
)

type MaintenanceHandler struct {
	svc service.MaintenanceService
}

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

func (h *MaintenanceHandler) RegisterRoutes(api, admin *echo.Group) {
	api.POST("/maintenance", h.CreateRequest)
	api.GET("/maintenance/assigned", h.ListAssigned)

	admin.GET("/maintenance", h.ListRequests)
	admin.GET("/maintenance/:id", h.GetRequest)
	admin.POST("/maintenance/:id/assign", h.AssignRequest)
	admin.POST("/maintenance/:id/status", h.UpdateStatus)
}

// CreateRequest reports a maintenance issue. Any authenticated user can
// report; triage happens on the admin side.
func (h *MaintenanceHandler) CreateRequest(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := service.CreateMaintenanceInput{
		ReportedBy:    user.ID,
		VenueID:       req.VenueID,
		EquipmentID:   req.EquipmentID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      models.MaintenancePriority(req.Priority),
		ScheduledDate: req.ScheduledDate,
	}
	if req.ScheduledDate != nil && req.ScheduledDate.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "scheduled_date must be in the future")
	}

	created, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToMaintenanceResponse(created))
}

// ListAssigned returns the caller's open workload, most urgent first.
func (h *MaintenanceHandler) ListAssigned(c echo.Context) error {
	user := middleware.CurrentUser(c)

	reqs, err := h.svc.ListAssigned(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMaintenanceList(reqs))
}

func (h *MaintenanceHandler) ListRequests(c echo.Context) error {
	limit, offset := parsePage(c)
	filter := repository.MaintenanceFilter{
		Status:   models.MaintenanceStatus(c.QueryParam("status")),
		Priority: models.MaintenancePriority(c.QueryParam("priority")),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := c.QueryParam("assigned_to"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid assigned_to")
		}
		filter.AssignedTo = id
	}

	reqs, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMaintenanceList(reqs))
}

func (h *MaintenanceHandler) GetRequest(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToMaintenanceResponse(req))
}

func (h *MaintenanceHandler) AssignRequest(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	var req dto.AssignMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.svc.Assign(c.Request().Context(), id, req.AssignedTo, &user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToMaintenanceResponse(updated))
}

func (h *MaintenanceHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	var req dto.UpdateMaintenanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.svc.UpdateStatus(c.Request().Context(), id,
		models.MaintenanceStatus(req.Status), req.Notes, &user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToMaintenanceResponse(updated))
}

func toMaintenanceList(reqs []models.MaintenanceRequest) []dto.MaintenanceResponse {
	resp := make([]dto.MaintenanceResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = dto.ToMaintenanceResponse(&r)
	}
	return resp
}
