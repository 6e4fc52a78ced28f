package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/repository"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	repo repository.NotificationRepository
}

func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	user := middleware.CurrentUser(c)
	unreadOnly := c.QueryParam("unread") == "true"
	limit, _ := parsePage(c)

	notifications, err := h.repo.FindByUserID(c.Request().Context(), user.ID, unreadOnly, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	if err := h.repo.MarkRead(c.Request().Context(), id, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
