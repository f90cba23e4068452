package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/shareit/internal/cache"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
)

// cache kind for single-booking lookups.
const bookingKind = "booking"

// BookingService implements the booking lifecycle: creation in WAITING,
// a single approve/reject transition by the item's owner, two-party
// visibility on reads and state-bucket filtered listings.
type BookingService struct {
	bookings BookingStore
	items    ItemStore
	users    UserStore
	cache    *cache.Cache
	events   EventPublisher
	logger   zerolog.Logger
}

// NewBookingService constructs a BookingService.  cache and events may
// be disabled instances but must not be nil interfaces.
func NewBookingService(bookings BookingStore, items ItemStore, users UserStore, c *cache.Cache, events EventPublisher, logger zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		cache:    c,
		events:   events,
		logger:   logger,
	}
}

// CreateBookingInput carries the validated shape of a booking request.
// The HTTP layer guarantees both timestamps are present and end is
// strictly after start.
type CreateBookingInput struct {
	ItemID uint64    `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Create books an item for the given user.  The item must resolve and
// be available, and the booker must resolve and not be the item's
// owner.  Self-booking is reported as not-found so existence and
// ownership of the item are not leaked to the caller.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput, bookerID uint64) (BookingResponse, error) {
	item, err := s.items.GetByID(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return BookingResponse{}, model.NotFound("item with id %d not found", in.ItemID)
		}
		return BookingResponse{}, err
	}
	if !item.Available {
		return BookingResponse{}, model.Unavailable("item is not available for booking")
	}
	if item.OwnerID == bookerID {
		return BookingResponse{}, model.NotFound("owner cannot book own item")
	}
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return BookingResponse{}, model.NotFound("user with id %d not found", bookerID)
		}
		return BookingResponse{}, err
	}

	booking := model.Booking{
		Start:    in.Start,
		End:      in.End,
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	}
	if err := s.bookings.Create(ctx, &booking); err != nil {
		return BookingResponse{}, err
	}
	detail := repository.BookingDetail{
		ID:          booking.ID,
		Start:       booking.Start,
		End:         booking.End,
		Status:      booking.Status,
		BookerID:    booking.BookerID,
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
	}
	s.cache.Set(ctx, bookingKind, detail.ID, detail)
	s.publish(ctx, detail)
	s.logger.Info().
		Uint64("booking_id", booking.ID).
		Uint64("item_id", item.ID).
		Uint64("booker_id", bookerID).
		Msg("booking created")
	return toBookingResponse(detail), nil
}

// Approve moves a WAITING booking to APPROVED or REJECTED.  Only the
// item's owner may perform the transition; anyone else gets not-found.
// Re-approving an already APPROVED booking fails, re-rejecting a
// REJECTED one is allowed.
func (s *BookingService) Approve(ctx context.Context, bookingID uint64, approve bool, userID uint64) (BookingResponse, error) {
	detail, err := s.getDetail(ctx, bookingID)
	if err != nil {
		return BookingResponse{}, err
	}
	if err := checkUser(ctx, s.users, userID); err != nil {
		return BookingResponse{}, err
	}
	if detail.ItemOwnerID != userID {
		return BookingResponse{}, model.NotFound("booking status may be changed only by the item's owner")
	}
	if approve && detail.Status == model.StatusApproved {
		return BookingResponse{}, model.Unavailable("booking already has status approved")
	}

	status := model.StatusRejected
	if approve {
		status = model.StatusApproved
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return BookingResponse{}, model.NotFound("booking with id %d not found", bookingID)
		}
		return BookingResponse{}, err
	}
	detail.Status = status
	s.cache.Set(ctx, bookingKind, detail.ID, detail)
	s.publish(ctx, detail)
	s.logger.Info().
		Uint64("booking_id", bookingID).
		Uint64("owner_id", userID).
		Str("status", status).
		Msg("booking status changed")
	return toBookingResponse(detail), nil
}

// GetByID returns one booking.  Visibility is restricted to the booker
// and the item's owner; everyone else gets not-found.
func (s *BookingService) GetByID(ctx context.Context, bookingID, userID uint64) (BookingResponse, error) {
	if err := checkUser(ctx, s.users, userID); err != nil {
		return BookingResponse{}, err
	}
	detail, err := s.getDetail(ctx, bookingID)
	if err != nil {
		return BookingResponse{}, err
	}
	if detail.BookerID != userID && detail.ItemOwnerID != userID {
		return BookingResponse{}, model.NotFound("booking may be viewed only by its booker or the item's owner")
	}
	return toBookingResponse(detail), nil
}

// ListByBooker returns one page of the user's own bookings in the given
// state bucket, ordered by start descending.
func (s *BookingService) ListByBooker(ctx context.Context, userID uint64, state model.State, from, size int) ([]BookingResponse, error) {
	if err := checkUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	limit, offset := page(from, size)
	details, err := s.bookings.ListByBooker(ctx, userID, state, time.Now().UTC(), limit, offset)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(details), nil
}

// ListByOwner returns one page of the bookings placed against the
// owner's items in the given state bucket, ordered by start descending.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID uint64, state model.State, from, size int) ([]BookingResponse, error) {
	if err := checkUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	limit, offset := page(from, size)
	details, err := s.bookings.ListByOwner(ctx, ownerID, state, time.Now().UTC(), limit, offset)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(details), nil
}

// getDetail is the cached single-booking lookup.  Cache hits skip the
// store; misses are refreshed on the way out.
func (s *BookingService) getDetail(ctx context.Context, bookingID uint64) (repository.BookingDetail, error) {
	var detail repository.BookingDetail
	if s.cache.Get(ctx, bookingKind, bookingID, &detail) {
		return detail, nil
	}
	detail, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return repository.BookingDetail{}, model.NotFound("booking with id %d not found", bookingID)
		}
		return repository.BookingDetail{}, err
	}
	s.cache.Set(ctx, bookingKind, bookingID, detail)
	return detail, nil
}

// publish emits a status event; failures are already logged by the
// publisher and never fail the request.
func (s *BookingService) publish(ctx context.Context, d repository.BookingDetail) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, queue.BookingStatusEvent{
		BookingID: d.ID,
		ItemID:    d.ItemID,
		ItemName:  d.ItemName,
		BookerID:  d.BookerID,
		OwnerID:   d.ItemOwnerID,
		Status:    d.Status,
		Start:     d.Start.UTC().Format(time.RFC3339),
		End:       d.End.UTC().Format(time.RFC3339),
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
