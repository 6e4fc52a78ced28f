package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/service"
)

type VenueHandler struct {
	venueSvc   service.VenueService
	bookingSvc service.BookingService
}

func NewVenueHandler(venueSvc service.VenueService, bookingSvc service.BookingService) *VenueHandler {
	return &VenueHandler{venueSvc: venueSvc, bookingSvc: bookingSvc}
}

func (h *VenueHandler) RegisterRoutes(api, admin *echo.Group) {
	venues := api.Group("/venues")
	venues.GET("", h.ListVenues)
	venues.GET("/:id", h.GetVenue)
	venues.GET("/:id/availability", h.CheckAvailability)
	venues.GET("/:id/calendar", h.GetCalendar)

	adminVenues := admin.Group("/venues")
	adminVenues.POST("", h.CreateVenue)
	adminVenues.PATCH("/:id", h.UpdateVenue)
	adminVenues.DELETE("/:id", h.DeleteVenue)
	adminVenues.GET("/:id/stats", h.GetVenueStats)
}

func (h *VenueHandler) ListVenues(c echo.Context) error {
	activeOnly := c.QueryParam("include_inactive") != "true"
	venues, err := h.venueSvc.List(c.Request().Context(), activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	venue, err := h.venueSvc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, venue)
}

// CheckAvailability answers whether [start, end) is free on the venue.
// Query params: start, end (RFC 3339), exclude_booking_id (optional).
func (h *VenueHandler) CheckAvailability(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be RFC 3339")
	}

	var excludeID uint
	if raw := c.QueryParam("exclude_booking_id"); raw != "" {
		parsed, err := parseUintParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude_booking_id")
		}
		excludeID = parsed
	}

	available, err := h.bookingSvc.IsAvailable(c.Request().Context(), id, start, end, excludeID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		VenueID:   id,
		Start:     start,
		End:       end,
		Available: available,
	})
}

func (h *VenueHandler) GetCalendar(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	month := time.Now()
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "month must look like 2024-01")
		}
		month = parsed
	}

	calendar, err := h.venueSvc.Calendar(c.Request().Context(), id, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, calendar)
}

func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var req dto.CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amenities := "[]"
	if len(req.Amenities) > 0 {
		b, err := json.Marshal(req.Amenities)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amenities")
		}
		amenities = string(b)
	}

	venue := &models.Venue{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
		HourlyRate:  req.HourlyRate,
		Amenities:   amenities,
		IsActive:    true,
	}
	if req.IsActive != nil {
		venue.IsActive = *req.IsActive
	}

	actor := middleware.CurrentUser(c)
	if err := h.venueSvc.Create(c.Request().Context(), venue, &actor.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, venue)
}

func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Capacity != nil {
		fields["capacity"] = *req.Capacity
	}
	if req.HourlyRate != nil {
		fields["hourly_rate"] = *req.HourlyRate
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	actor := middleware.CurrentUser(c)
	venue, err := h.venueSvc.Update(c.Request().Context(), id, fields, &actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor := middleware.CurrentUser(c)
	if err := h.venueSvc.Delete(c.Request().Context(), id, &actor.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VenueHandler) GetVenueStats(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	stats, err := h.venueSvc.Stats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
