package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/repository"
	"github.com/unievents/venue-booking-service/internal/service"
)

// AdminHandler owns the review workflow and the audit trail.
type AdminHandler struct {
	bookingSvc service.BookingService
	auditRepo  repository.AuditLogRepository
}

func NewAdminHandler(bookingSvc service.BookingService, auditRepo repository.AuditLogRepository) *AdminHandler {
	return &AdminHandler{bookingSvc: bookingSvc, auditRepo: auditRepo}
}

func (h *AdminHandler) RegisterRoutes(admin *echo.Group) {
	requests := admin.Group("/requests")
	requests.GET("", h.ListRequests)
	requests.GET("/stats", h.GetStats)
	requests.POST("/:id/approve", h.ApproveBooking)
	requests.POST("/:id/reject", h.RejectBooking)

	admin.GET("/audit-logs", h.ListAuditLogs)
}

func (h *AdminHandler) ListRequests(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}
	limit, offset := parsePage(c)

	bookings, err := h.bookingSvc.ListAll(c.Request().Context(), status, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.bookingSvc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ApproveBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ApproveBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor := middleware.CurrentUser(c)
	booking, err := h.bookingSvc.Approve(c.Request().Context(), id, &actor.ID, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *AdminHandler) RejectBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.RejectBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor := middleware.CurrentUser(c)
	booking, err := h.bookingSvc.Reject(c.Request().Context(), id, &actor.ID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *AdminHandler) ListAuditLogs(c echo.Context) error {
	filter := repository.AuditFilter{
		Action:  c.QueryParam("action"),
		Subject: c.QueryParam("subject"),
	}
	if raw := c.QueryParam("actor_id"); raw != "" {
		actorID, err := parseUintParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid actor_id")
		}
		filter.ActorID = actorID
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := parseUintParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = int(limit)
	}

	logs, err := h.auditRepo.Find(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, logs)
}
