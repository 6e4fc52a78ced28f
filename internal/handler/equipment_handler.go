package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/service"
)

type EquipmentHandler struct {
	svc service.EquipmentService
}

func NewEquipmentHandler(svc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

func (h *EquipmentHandler) RegisterRoutes(api, admin *echo.Group) {
	api.GET("/equipment", h.ListEquipment)
	api.GET("/equipment/:id", h.GetEquipment)

	adminEq := admin.Group("/equipment")
	adminEq.POST("", h.CreateEquipment)
	adminEq.PATCH("/:id", h.UpdateEquipment)
	adminEq.DELETE("/:id", h.DeleteEquipment)
}

func (h *EquipmentHandler) ListEquipment(c echo.Context) error {
	activeOnly := c.QueryParam("include_inactive") != "true"
	eqs, err := h.svc.List(c.Request().Context(), activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, eqs)
}

func (h *EquipmentHandler) GetEquipment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	eq, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eq)
}

func (h *EquipmentHandler) CreateEquipment(c echo.Context) error {
	var req dto.CreateEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	eq := &models.Equipment{
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Quantity:          req.Quantity,
		RentalRatePerUnit: req.RentalRatePerUnit,
		IsActive:          true,
	}
	actor := middleware.CurrentUser(c)
	if err := h.svc.Create(c.Request().Context(), eq, &actor.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, eq)
}

func (h *EquipmentHandler) UpdateEquipment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEquipmentRequest
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
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.RentalRatePerUnit != nil {
		fields["rental_rate_per_unit"] = *req.RentalRatePerUnit
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	actor := middleware.CurrentUser(c)
	eq, err := h.svc.Update(c.Request().Context(), id, fields, &actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eq)
}

func (h *EquipmentHandler) DeleteEquipment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request().Context(), id, &actor.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
