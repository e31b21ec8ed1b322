package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ktvilla/villa-booking/internal/booking"
	"github.com/ktvilla/villa-booking/internal/model"
	"github.com/ktvilla/villa-booking/internal/repository"
)

// AdminHandler exposes the admin console endpoints.  All routes sit
// behind the ADMIN role middleware; the direct update and delete
// endpoints are escape hatches that bypass conflict detection and
// capacity accounting on purpose.
type AdminHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *booking.Service, bookings *repository.BookingRepo, users *repository.UserRepo) *AdminHandler {
	if svc == nil || bookings == nil || users == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Svc: svc, Bookings: bookings, Users: users}
}

func bookingIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid booking id")
	}
	return id, nil
}

// ListBookings handles GET /v1/admin/bookings.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	list, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingResp, 0, len(list))
	for _, b := range list {
		items = append(items, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ApproveBooking handles POST /v1/admin/bookings/:id/approve.  The
// engine flips a pending booking to approved and generates its welcome
// packet; re-approving is idempotent, rejected bookings are refused.
func (h *AdminHandler) ApproveBooking(c echo.Context) error {
	id, err := bookingIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b, err := h.Svc.AdminApprove(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

type bookingStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/bookings/:id/status.  The status
// is overwritten directly with no conflict re-check and no packet
// generation.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := bookingIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req bookingStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch req.Status {
	case model.StatusPending, model.StatusApproved, model.StatusRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, approved or rejected"})
	}

	b, err := h.Bookings.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

type updateBookingReq struct {
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	MaxGuests   *int    `json:"max_guests"`
	NumGuests   *int    `json:"num_guests"`
	Status      *string `json:"status"`
	WithPets    *bool   `json:"with_pets"`
	WithInfants *bool   `json:"with_infants"`
}

// UpdateBooking handles PATCH /v1/admin/bookings/:id.  Only the fields
// present in the body are written.  Field-level validation reports every
// failing rule at once; no conflict detection runs on admin edits.
func (h *AdminHandler) UpdateBooking(c echo.Context) error {
	id, err := bookingIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var upd repository.BookingUpdate
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
		}
		upd.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		upd.EndDate = &t
	}
	upd.MaxGuests = req.MaxGuests
	upd.NumGuests = req.NumGuests
	upd.Status = req.Status
	upd.WithPets = req.WithPets
	upd.WithInfants = req.WithInfants

	if err := upd.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b, err := h.Bookings.Update(c.Request().Context(), id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id.  Member records
// cascade; welcome packet items stay with their users.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := bookingIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}
	return c.NoContent(http.StatusNoContent)
}

type trustReq struct {
	TrustLevel string `json:"trust_level"`
}

// SetTrust handles PATCH /v1/admin/users/:id/trust.  Trusted users skip
// the pending queue on their next booking; the change never touches
// existing bookings.
func (h *AdminHandler) SetTrust(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req trustReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch req.TrustLevel {
	case model.TrustTrusted, model.TrustUntrusted:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trust_level must be trusted or untrusted"})
	}

	if err := h.Users.SetTrustLevel(c.Request().Context(), userID, req.TrustLevel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update trust level"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "trust_level": req.TrustLevel})
}
