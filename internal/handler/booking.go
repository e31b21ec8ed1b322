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

// BookingHandler exposes the member-facing booking endpoints: creating a
// booking, joining one by code, and the owner's member approvals.  All
// methods assume JWT authentication has already run; mutations go
// through the engine service, reads hit the repositories directly.
type BookingHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
	Members  *repository.MemberRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must
// be non-nil.
func NewBookingHandler(svc *booking.Service, bookings *repository.BookingRepo, members *repository.MemberRepo) *BookingHandler {
	if svc == nil || bookings == nil || members == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Bookings: bookings, Members: members}
}

type createBookingReq struct {
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	MaxGuests   int    `json:"max_guests"`
	WithPets    bool   `json:"with_pets"`
	WithInfants bool   `json:"with_infants"`
}

type bookingResp struct {
	ID        uint64  `json:"id"`
	Code      string  `json:"code"`
	OwnerID   uint64  `json:"owner_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	MaxGuests int     `json:"max_guests"`
	NumGuests int     `json:"num_guests"`
	Status    string  `json:"status"`
	ItemID    *uint64 `json:"item_id,omitempty"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		Code:      b.Code,
		OwnerID:   b.OwnerID,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		MaxGuests: b.MaxGuests,
		NumGuests: b.NumGuests,
		Status:    b.Status,
		ItemID:    b.ItemID,
	}
}

type memberResp struct {
	ID        uint64  `json:"id"`
	BookingID uint64  `json:"booking_id"`
	UserID    uint64  `json:"user_id"`
	Status    string  `json:"status"`
	ItemID    *uint64 `json:"item_id,omitempty"`
}

func toMemberResp(m model.MemberBooking) memberResp {
	return memberResp{ID: m.ID, BookingID: m.BookingID, UserID: m.UserID, Status: m.Status, ItemID: m.ItemID}
}

// engineError maps engine sentinels onto HTTP responses carrying the
// specific reason, so clients can tell which rule was violated.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrGuestBounds),
		errors.Is(err, booking.ErrDateOrder),
		errors.Is(err, booking.ErrUserAmbiguous):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrMemberNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrDateConflict),
		errors.Is(err, booking.ErrBookingFull),
		errors.Is(err, booking.ErrNotApprovable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// CreateBooking handles POST /v1/bookings.  It validates the date
// strings, then delegates to the engine, which owns conflict detection
// and the trust decision.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}

	b, err := h.Svc.CreateBooking(c.Request().Context(), booking.CreateBookingInput{
		OwnerID:     userID,
		StartDate:   start,
		EndDate:     end,
		MaxGuests:   req.MaxGuests,
		WithPets:    req.WithPets,
		WithInfants: req.WithInfants,
	})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// MyBookings handles GET /v1/my-bookings.  It returns the current
// user's own bookings ordered by start date.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Bookings.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingResp, 0, len(list))
	for _, b := range list {
		items = append(items, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:code.  It returns the hydrated
// booking aggregate.  Knowing the share code is the capability to view
// the trip page, matching how codes are shared between members.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	code := c.Param("code")
	det, err := h.Bookings.GetDetailByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": det})
}

// JoinBooking handles POST /v1/bookings/:code/join.  The current user
// asks to join the booking behind the code; the owner is notified.
func (h *BookingHandler) JoinBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	m, err := h.Svc.RequestJoin(c.Request().Context(), c.Param("code"), userID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, toMemberResp(m))
}

// MyJoinRequests handles GET /v1/my-join-requests.  It lists the join
// requests the current user has filed, with their booking codes and
// dates.
func (h *BookingHandler) MyJoinRequests(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Members.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load join requests"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

type memberStatusReq struct {
	Status string `json:"status"`
}

// UpdateMemberStatus handles PATCH /v1/members/:id/status.  Only the
// booking owner may decide; approving allocates the seat and packet
// atomically inside the engine.
func (h *BookingHandler) UpdateMemberStatus(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || memberID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	var req memberStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch req.Status {
	case model.StatusPending, model.StatusApproved, model.StatusRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, approved or rejected"})
	}

	m, err := h.Svc.ApproveMember(c.Request().Context(), memberID, req.Status, userID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toMemberResp(m))
}

type addMemberReq struct {
	Username string `json:"username"`
}

// AddMember handles POST /v1/bookings/:id/members.  The booking owner
// adds a member by display name; the record is created already approved
// with its packet attached.
func (h *BookingHandler) AddMember(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req addMemberReq
	if err := c.Bind(&req); err != nil || req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username is required"})
	}

	b, err := h.Svc.AddMember(c.Request().Context(), bookingID, req.Username, userID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}
