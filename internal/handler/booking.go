package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/service"
)

// BookingHandler exposes the /bookings endpoints.  It validates shape
// only (presence, ranges, ordering of timestamps); every business rule
// lives in the service.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{bookings: bookings}
}

// CreateBooking handles POST /bookings.  Both timestamps are required
// and end must be strictly after start.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	bookerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	var body service.CreateBookingInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	if body.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "itemId is required"})
	}
	if body.Start.IsZero() || body.End.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "start and end are required"})
	}
	if !body.End.After(body.Start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "end must be after start"})
	}
	booking, err := h.bookings.Create(c.Request().Context(), body, bookerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// ApproveBooking handles PATCH /bookings/:bookingId?approved=.  The
// approved parameter is a required boolean.
func (h *BookingHandler) ApproveBooking(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return writeError(c, err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "approved must be true or false"})
	}
	booking, err := h.bookings.Approve(c.Request().Context(), bookingID, approved, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// GetBookingByID handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBookingByID(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return writeError(c, err)
	}
	booking, err := h.bookings.GetByID(c.Request().Context(), bookingID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// GetBookingsByUser handles GET /bookings?state=&from=&size=: the
// caller's own bookings.
func (h *BookingHandler) GetBookingsByUser(c echo.Context) error {
	return h.list(c, h.bookings.ListByBooker)
}

// GetBookingsByOwner handles GET /bookings/owner?state=&from=&size=:
// bookings placed against the caller's items.
func (h *BookingHandler) GetBookingsByOwner(c echo.Context) error {
	return h.list(c, h.bookings.ListByOwner)
}

func (h *BookingHandler) list(c echo.Context, fetch func(ctx context.Context, userID uint64, state model.State, from, size int) ([]service.BookingResponse, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return writeError(c, err)
	}
	from, size, err := paging(c)
	if err != nil {
		return writeError(c, err)
	}
	bookings, err := fetch(c.Request().Context(), userID, state, from, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}
