package service

import (
	"context"
	"time"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
)

// Store interfaces consumed by the services.  The repository types in
// internal/repository satisfy them; tests substitute mocks.

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
}

// ItemStore persists items.
type ItemStore interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id uint64) (model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id uint64) error
	ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []uint64) ([]model.Item, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (repository.BookingDetail, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	ListByBooker(ctx context.Context, bookerID uint64, state model.State, now time.Time, limit, offset int) ([]repository.BookingDetail, error)
	ListByOwner(ctx context.Context, ownerID uint64, state model.State, now time.Time, limit, offset int) ([]repository.BookingDetail, error)
	ListApprovedForItems(ctx context.Context, itemIDs []uint64) ([]repository.BookingDetail, error)
	CountCompleted(ctx context.Context, itemID, bookerID uint64, now time.Time) (int64, error)
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID uint64) ([]repository.CommentDetail, error)
	ListByItemIDs(ctx context.Context, itemIDs []uint64) ([]repository.CommentDetail, error)
}

// RequestStore persists request board entries.
type RequestStore interface {
	Create(ctx context.Context, req *model.Request) error
	GetByID(ctx context.Context, id uint64) (model.Request, error)
	ListByRequestor(ctx context.Context, requestorID uint64) ([]model.Request, error)
	ListOthers(ctx context.Context, userID uint64, limit, offset int) ([]model.Request, error)
}

// EventPublisher emits booking lifecycle events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.BookingStatusEvent) error
}

// page translates (from, size) pagination into a LIMIT/OFFSET pair.
// The offset snaps to the page boundary below from (page = from/size,
// integer division), so from=7,size=5 reads page 1 starting at row 5.
func page(from, size int) (limit, offset int) {
	return size, (from / size) * size
}

// checkUser resolves the subject user or fails the operation with a
// not-found error carrying the user's id.
func checkUser(ctx context.Context, users UserStore, userID uint64) error {
	ok, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return model.NotFound("user with id %d not found", userID)
	}
	return nil
}
