package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ktvilla/villa-booking/internal/repository"
)

// PublicHandler serves the discovery endpoints: bookings other members
// can still join, and the public trip page behind a share code.  The
// routes sit behind the response cache middleware since they are pure
// reads.
type PublicHandler struct {
	Bookings *repository.BookingRepo
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(bookings *repository.BookingRepo) *PublicHandler {
	if bookings == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Bookings: bookings}
}

// ListJoinable handles GET /v1/public/bookings.  It returns future
// bookings with at least one free seat, excluding the caller's own,
// ordered by start date.  An optional ?limit caps the result.
func (h *PublicHandler) ListJoinable(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}

	list, err := h.Bookings.ListJoinable(c.Request().Context(), userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingResp, 0, len(list))
	for _, b := range list {
		items = append(items, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetByCode handles GET /v1/public/bookings/:code.  It returns the
// hydrated trip page aggregate for the booking behind the share code.
func (h *PublicHandler) GetByCode(c echo.Context) error {
	det, err := h.Bookings.GetDetailByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": det})
}
