package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unievents/venue-booking-service/internal/dto"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(api *echo.Group) {
	bookings := api.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListMyBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.PATCH("/:id", h.UpdateBooking)
	bookings.DELETE("/:id", h.CancelBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := service.CreateBookingInput{
		UserID:            user.ID,
		VenueID:           req.VenueID,
		EventTitle:        req.EventTitle,
		EventDescription:  req.EventDescription,
		StartDatetime:     req.StartDatetime,
		EndDatetime:       req.EndDatetime,
		ExpectedAttendees: req.ExpectedAttendees,
	}
	for _, eq := range req.Equipment {
		in.Equipment = append(in.Equipment, service.EquipmentRequest{
			EquipmentID: eq.EquipmentID,
			Quantity:    eq.Quantity,
		})
	}

	booking, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}
	limit, offset := parsePage(c)

	bookings, err := h.svc.ListForUser(c.Request().Context(), user.ID, status, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	booking, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if booking.UserID != user.ID && !user.IsAdmin() {
		return service.ErrNotOwner
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.EventTitle != nil {
		fields["event_title"] = *req.EventTitle
	}
	if req.EventDescription != nil {
		fields["event_description"] = *req.EventDescription
	}
	if req.ExpectedAttendees != nil {
		fields["expected_attendees"] = *req.ExpectedAttendees
	}

	booking, err := h.svc.UpdateDetails(c.Request().Context(), id, user.ID, fields)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	booking, err := h.svc.Cancel(c.Request().Context(), id, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func parseUintParam(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// parsePage reads limit/offset query params; zero values let the repository
// apply its defaults.
func parsePage(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
