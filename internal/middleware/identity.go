package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/repository"
)

const userContextKey = "currentUser"

// Identity resolves the caller from the X-User-ID header set by the
// authenticating gateway in front of this service. The service itself does
// no credential checking.
func Identity(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-User-ID")
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing X-User-ID header")
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid X-User-ID header")
			}

			user, err := userRepo.FindByID(c.Request().Context(), uint(id))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "account is deactivated")
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// RequireAdmin guards the admin route group.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CurrentUser returns the resolved caller, or nil outside Identity.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// SetCurrentUser stores the caller on the request context. Exposed for
// handler tests that bypass Identity.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}
