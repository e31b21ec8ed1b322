package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ktvilla/villa-booking/internal/metrics"
	"github.com/ktvilla/villa-booking/internal/model"
	"github.com/ktvilla/villa-booking/internal/notify"
	"github.com/ktvilla/villa-booking/internal/repository"
)

// codeRetryLimit caps how often a colliding share code is regenerated
// before the creation is abandoned.
const codeRetryLimit = 5

// Service is the reservation engine.  It owns the ordering of
// validation, mutation and side effect for every booking operation:
// validation always runs before any write, conflict-sensitive reads and
// their writes share one transaction, and notifications fire only after
// commit.
//
// AdminEmail, SiteURL and StrictCapacity tune behavior and may be set
// once after construction, before the service handles requests.
type Service struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
	Members  *repository.MemberRepo
	Users    *repository.UserRepo
	Codes    CodeGenerator
	Assigner ItemAssigner
	Notifier notify.Notifier
	Log      *logrus.Logger

	// AdminEmail receives the new-booking notification.
	AdminEmail string
	// SiteURL prefixes the links embedded in notifications.
	SiteURL string
	// StrictCapacity re-checks max_guests at the approval increment and
	// accounts owner-added members.  Off by default: the legacy system
	// checked capacity only at join-request time.
	StrictCapacity bool
}

// NewService constructs the engine.  All dependencies must be non-nil.
func NewService(db *sql.DB, bookings *repository.BookingRepo, members *repository.MemberRepo,
	users *repository.UserRepo, codes CodeGenerator, assigner ItemAssigner,
	notifier notify.Notifier, log *logrus.Logger) *Service {
	if db == nil || bookings == nil || members == nil || users == nil ||
		codes == nil || assigner == nil || notifier == nil || log == nil {
		panic("nil dependency passed to NewService")
	}
	return &Service{
		DB:       db,
		Bookings: bookings,
		Members:  members,
		Users:    users,
		Codes:    codes,
		Assigner: assigner,
		Notifier: notifier,
		Log:      log,
	}
}

// CreateBookingInput carries the fields a member submits for a new
// booking.
type CreateBookingInput struct {
	OwnerID     uint64
	StartDate   time.Time
	EndDate     time.Time
	MaxGuests   int
	WithPets    bool
	WithInfants bool
}

// CreateBooking validates the request, checks the calendar, and creates
// the booking with its initial status decided by the owner's trust
// level.  The calendar read and the insert run inside one serializable
// transaction with the future rows locked, so two concurrent creations
// cannot both pass the conflict check against a stale snapshot.  A
// trusted owner's booking gets its welcome packet in the same
// transaction; the admin is notified after commit either way.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (model.Booking, error) {
	if err := ValidateCapacity(in.MaxGuests); err != nil {
		return model.Booking{}, err
	}
	candidate := DateRange{Start: in.StartDate, End: in.EndDate}
	if err := candidate.Validate(); err != nil {
		return model.Booking{}, err
	}

	owner, err := s.Users.GetByID(ctx, in.OwnerID)
	if err != nil {
		return model.Booking{}, fmt.Errorf("load owner: %w", err)
	}
	status := InitialStatus(owner.TrustLevel)

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	future, err := s.Bookings.ListFutureTx(ctx, tx, time.Now().UTC())
	if err != nil {
		return model.Booking{}, err
	}
	taken := make([]DateRange, len(future))
	for i, b := range future {
		taken[i] = DateRange{Start: b.StartDate, End: b.EndDate}
	}
	if err := CheckAvailable(candidate, taken); err != nil {
		metrics.ConflictsRejected.Inc()
		return model.Booking{}, err
	}

	b := model.Booking{
		OwnerID:     owner.ID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		MaxGuests:   in.MaxGuests,
		NumGuests:   1, // the owner takes the first seat
		Status:      status,
		WithPets:    in.WithPets,
		WithInfants: in.WithInfants,
	}
	if err := s.createWithFreshCode(ctx, tx, &b); err != nil {
		return model.Booking{}, err
	}

	if status == model.StatusApproved {
		item, err := s.Assigner.Assign(ctx, tx, owner.ID, b.StartDate)
		if err != nil {
			return model.Booking{}, fmt.Errorf("assign welcome packet: %w", err)
		}
		if err := s.Bookings.AttachItemTx(ctx, tx, b.ID, item.ID); err != nil {
			return model.Booking{}, err
		}
		b.ItemID = &item.ID
	}

	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	metrics.BookingsCreated.WithLabelValues(status).Inc()

	// Best effort past this point: the booking is committed.
	if err := s.Notifier.Send(ctx, notify.TemplateBookingCreated, s.AdminEmail, map[string]string{
		"code": b.Code,
		"link": s.SiteURL + "/admin/bookings",
	}); err != nil {
		s.Log.WithError(err).WithField("code", b.Code).Warn("booking created notification failed")
	}
	return b, nil
}

// createWithFreshCode inserts the booking, regenerating the share code
// on unique-key collisions.  Codes are random, so a handful of retries
// is plenty.
func (s *Service) createWithFreshCode(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		code, err := s.Codes.Generate()
		if err != nil {
			return fmt.Errorf("generate booking code: %w", err)
		}
		b.Code = code
		err = s.Bookings.CreateTx(ctx, tx, b)
		if errors.Is(err, repository.ErrCodeExists) {
			continue
		}
		return err
	}
	return fmt.Errorf("assign booking code: %w", repository.ErrCodeExists)
}

// RequestJoin files a pending member record against the booking behind
// the share code.  Capacity is checked here, at request time; the owner
// decides later whether to approve.  Joining does not touch the date
// range, so no conflict detection runs.
func (s *Service) RequestJoin(ctx context.Context, code string, requesterID uint64) (model.MemberBooking, error) {
	b, err := s.Bookings.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.JoinRequests.WithLabelValues("not_found").Inc()
			return model.MemberBooking{}, ErrBookingNotFound
		}
		return model.MemberBooking{}, err
	}
	if err := CanJoin(b.NumGuests, b.MaxGuests); err != nil {
		metrics.JoinRequests.WithLabelValues("full").Inc()
		return model.MemberBooking{}, err
	}

	m, err := s.Members.Create(ctx, b.ID, requesterID)
	if err != nil {
		return model.MemberBooking{}, err
	}
	metrics.JoinRequests.WithLabelValues("accepted").Inc()

	owner, oerr := s.Users.GetByID(ctx, b.OwnerID)
	requester, rerr := s.Users.GetByID(ctx, requesterID)
	if oerr == nil && rerr == nil {
		if err := s.Notifier.Send(ctx, notify.TemplateJoinRequest, owner.Email, map[string]string{
			"name": requester.Name,
			"code": b.Code,
			"link": s.SiteURL + "/booking/" + b.Code,
		}); err != nil {
			s.Log.WithError(err).WithField("code", b.Code).Warn("join request notification failed")
		}
	}
	return m, nil
}

// ApproveMember writes the owner's decision onto a member record.  A
// transition into approved atomically assigns the packet, attaches it
// and bumps the guest counter, all under the booking's row lock; two
// concurrent approvals for the same booking serialize on that lock.  A
// rejection, or a re-approval of a record that already holds a packet,
// short-circuits with no side effects.  If packet assignment fails the
// whole approval rolls back.
func (s *Service) ApproveMember(ctx context.Context, memberID uint64, newStatus string, actorID uint64) (model.MemberBooking, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.MemberBooking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	m, err := s.Members.GetForUpdateTx(ctx, tx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MemberBooking{}, ErrMemberNotFound
		}
		return model.MemberBooking{}, err
	}
	b, err := s.Bookings.GetForUpdateTx(ctx, tx, m.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MemberBooking{}, ErrBookingNotFound
		}
		return model.MemberBooking{}, err
	}
	if b.OwnerID != actorID {
		return model.MemberBooking{}, ErrForbidden
	}

	if err := s.Members.UpdateStatusTx(ctx, tx, m.ID, newStatus); err != nil {
		return model.MemberBooking{}, err
	}

	if !NeedsItem(m, newStatus) {
		if err := tx.Commit(); err != nil {
			return model.MemberBooking{}, err
		}
		committed = true
		m.Status = newStatus
		return m, nil
	}

	item, err := s.Assigner.Assign(ctx, tx, m.UserID, b.StartDate)
	if err != nil {
		return model.MemberBooking{}, fmt.Errorf("assign welcome packet: %w", err)
	}
	if err := s.Members.AttachItemTx(ctx, tx, m.ID, item.ID); err != nil {
		return model.MemberBooking{}, err
	}
	incremented, err := s.Bookings.IncrementGuestsTx(ctx, tx, b.ID, s.StrictCapacity)
	if err != nil {
		return model.MemberBooking{}, err
	}
	if s.StrictCapacity && !incremented {
		return model.MemberBooking{}, ErrBookingFull
	}

	if err := tx.Commit(); err != nil {
		return model.MemberBooking{}, err
	}
	committed = true
	metrics.MembersApproved.Inc()
	m.Status = newStatus
	m.ItemID = &item.ID

	if member, err := s.Users.GetByID(ctx, m.UserID); err == nil {
		if err := s.Notifier.Send(ctx, notify.TemplateJoinApproved, member.Email, map[string]string{
			"name": member.Name,
			"code": b.Code,
			"link": s.SiteURL + "/public-booking/" + b.Code,
		}); err != nil {
			s.Log.WithError(err).WithField("code", b.Code).Warn("join approved notification failed")
		}
	}
	return m, nil
}

// AdminApprove transitions a pending booking to approved and generates
// its welcome packet on demand.  Re-approving an approved booking only
// fills in a missing packet; an attached packet is never regenerated.  A
// rejected booking is not approvable through this path; that is what
// the direct status update escape hatch is for.
func (s *Service) AdminApprove(ctx context.Context, bookingID uint64) (model.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	if b.Status == model.StatusRejected {
		return model.Booking{}, ErrNotApprovable
	}
	if b.Status != model.StatusApproved {
		if b, err = s.Bookings.UpdateStatus(ctx, bookingID, model.StatusApproved); err != nil {
			return model.Booking{}, err
		}
	}
	if b.ItemID != nil {
		return b, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	locked, err := s.Bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if locked.ItemID == nil {
		item, err := s.Assigner.Assign(ctx, tx, locked.OwnerID, locked.StartDate)
		if err != nil {
			return model.Booking{}, fmt.Errorf("assign welcome packet: %w", err)
		}
		if err := s.Bookings.AttachItemTx(ctx, tx, bookingID, item.ID); err != nil {
			return model.Booking{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return s.Bookings.GetByID(ctx, bookingID)
}

// AddMember lets the booking owner add a member by display name without
// the request/approve round trip.  The name must resolve to exactly one
// user.  The record is created already approved with its packet
// attached.  The legacy system left num_guests untouched on this path;
// that behavior is reproduced unless StrictCapacity is on, which also
// claims a seat and rejects the add when the booking is full.
func (s *Service) AddMember(ctx context.Context, bookingID uint64, username string, actorID uint64) (model.Booking, error) {
	users, err := s.Users.FindByName(ctx, username)
	if err != nil {
		return model.Booking{}, err
	}
	if len(users) != 1 {
		return model.Booking{}, ErrUserAmbiguous
	}
	member := users[0]

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	if b.OwnerID != actorID {
		return model.Booking{}, ErrForbidden
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	locked, err := s.Bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	item, err := s.Assigner.Assign(ctx, tx, member.ID, locked.StartDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("assign welcome packet: %w", err)
	}
	if _, err := s.Members.CreateApprovedTx(ctx, tx, bookingID, member.ID, item.ID); err != nil {
		return model.Booking{}, err
	}
	if s.StrictCapacity {
		incremented, err := s.Bookings.IncrementGuestsTx(ctx, tx, bookingID, true)
		if err != nil {
			return model.Booking{}, err
		}
		if !incremented {
			return model.Booking{}, ErrBookingFull
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return s.Bookings.GetByID(ctx, bookingID)
}
