package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/shareit/internal/cache"
	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
)

// Mock stores shared by the service tests.  Each method forwards to
// testify's mock.Mock so individual tests can script returns and assert
// call expectations.

func nopCache() *cache.Cache {
	return cache.New(config.CacheConfig{Enabled: false}, nil)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserStore) Exists(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockItemStore struct{ mock.Mock }

func (m *mockItemStore) Create(ctx context.Context, it *model.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockItemStore) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *mockItemStore) Update(ctx context.Context, it *model.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockItemStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockItemStore) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *mockItemStore) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	args := m.Called(ctx, text, limit, offset)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *mockItemStore) ListByRequestIDs(ctx context.Context, requestIDs []uint64) ([]model.Item, error) {
	args := m.Called(ctx, requestIDs)
	return args.Get(0).([]model.Item), args.Error(1)
}

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) Create(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id uint64) (repository.BookingDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.BookingDetail), args.Error(1)
}

func (m *mockBookingStore) UpdateStatus(ctx context.Context, id uint64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockBookingStore) ListByBooker(ctx context.Context, bookerID uint64, state model.State, now time.Time, limit, offset int) ([]repository.BookingDetail, error) {
	args := m.Called(ctx, bookerID, state, now, limit, offset)
	return args.Get(0).([]repository.BookingDetail), args.Error(1)
}

func (m *mockBookingStore) ListByOwner(ctx context.Context, ownerID uint64, state model.State, now time.Time, limit, offset int) ([]repository.BookingDetail, error) {
	args := m.Called(ctx, ownerID, state, now, limit, offset)
	return args.Get(0).([]repository.BookingDetail), args.Error(1)
}

func (m *mockBookingStore) ListApprovedForItems(ctx context.Context, itemIDs []uint64) ([]repository.BookingDetail, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]repository.BookingDetail), args.Error(1)
}

func (m *mockBookingStore) CountCompleted(ctx context.Context, itemID, bookerID uint64, now time.Time) (int64, error) {
	args := m.Called(ctx, itemID, bookerID, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockCommentStore struct{ mock.Mock }

func (m *mockCommentStore) Create(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentStore) ListByItem(ctx context.Context, itemID uint64) ([]repository.CommentDetail, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]repository.CommentDetail), args.Error(1)
}

func (m *mockCommentStore) ListByItemIDs(ctx context.Context, itemIDs []uint64) ([]repository.CommentDetail, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]repository.CommentDetail), args.Error(1)
}

type mockRequestStore struct{ mock.Mock }

func (m *mockRequestStore) Create(ctx context.Context, req *model.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRequestStore) GetByID(ctx context.Context, id uint64) (model.Request, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Request), args.Error(1)
}

func (m *mockRequestStore) ListByRequestor(ctx context.Context, requestorID uint64) ([]model.Request, error) {
	args := m.Called(ctx, requestorID)
	return args.Get(0).([]model.Request), args.Error(1)
}

func (m *mockRequestStore) ListOthers(ctx context.Context, userID uint64, limit, offset int) ([]model.Request, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]model.Request), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event queue.BookingStatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
