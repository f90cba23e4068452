package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type bookingFixture struct {
	bookings *mockBookingStore
	items    *mockItemStore
	users    *mockUserStore
	events   *mockPublisher
	svc      *BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings: &mockBookingStore{},
		items:    &mockItemStore{},
		users:    &mockUserStore{},
		events:   &mockPublisher{},
	}
	f.svc = NewBookingService(f.bookings, f.items, f.users, nopCache(), f.events, zerolog.Nop())
	return f
}

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	t.Run("creates waiting booking and publishes event", func(t *testing.T) {
		f := newBookingFixture()
		f.items.On("GetByID", ctx, uint64(5)).
			Return(model.Item{ID: 5, Name: "drill", Available: true, OwnerID: 1}, nil)
		f.users.On("GetByID", ctx, uint64(2)).
			Return(model.User{ID: 2, Name: "booker"}, nil)
		f.bookings.On("Create", ctx, mock.AnythingOfType("*model.Booking")).
			Run(func(args mock.Arguments) {
				b := args.Get(1).(*model.Booking)
				b.ID = 10
			}).
			Return(nil)
		f.events.On("Publish", ctx, mock.AnythingOfType("queue.BookingStatusEvent")).Return(nil)

		resp, err := f.svc.Create(ctx, CreateBookingInput{ItemID: 5, Start: start, End: end}, 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), resp.ID)
		assert.Equal(t, model.StatusWaiting, resp.Status)
		assert.Equal(t, uint64(2), resp.Booker.ID)
		assert.Equal(t, uint64(5), resp.Item.ID)
		assert.Equal(t, "drill", resp.Item.Name)
		f.bookings.AssertExpectations(t)
		f.events.AssertExpectations(t)
	})

	t.Run("unavailable item is rejected", func(t *testing.T) {
		f := newBookingFixture()
		f.items.On("GetByID", ctx, uint64(5)).
			Return(model.Item{ID: 5, Available: false, OwnerID: 1}, nil)

		_, err := f.svc.Create(ctx, CreateBookingInput{ItemID: 5, Start: start, End: end}, 2)
		var unavailable *model.UnavailableItemError
		require.ErrorAs(t, err, &unavailable)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("owner booking own item reads as not found", func(t *testing.T) {
		f := newBookingFixture()
		f.items.On("GetByID", ctx, uint64(5)).
			Return(model.Item{ID: 5, Available: true, OwnerID: 2}, nil)

		_, err := f.svc.Create(ctx, CreateBookingInput{ItemID: 5, Start: start, End: end}, 2)
		assert.True(t, model.IsNotFound(err))
	})

	t.Run("missing item", func(t *testing.T) {
		f := newBookingFixture()
		f.items.On("GetByID", ctx, uint64(99)).
			Return(model.Item{}, repository.ErrItemNotFound)

		_, err := f.svc.Create(ctx, CreateBookingInput{ItemID: 99, Start: start, End: end}, 2)
		assert.True(t, model.IsNotFound(err))
	})

	t.Run("missing booker", func(t *testing.T) {
		f := newBookingFixture()
		f.items.On("GetByID", ctx, uint64(5)).
			Return(model.Item{ID: 5, Available: true, OwnerID: 1}, nil)
		f.users.On("GetByID", ctx, uint64(77)).
			Return(model.User{}, repository.ErrUserNotFound)

		_, err := f.svc.Create(ctx, CreateBookingInput{ItemID: 5, Start: start, End: end}, 77)
		assert.True(t, model.IsNotFound(err))
	})
}

func TestBookingApprove(t *testing.T) {
	ctx := context.Background()
	detail := repository.BookingDetail{
		ID:          10,
		Start:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC),
		Status:      model.StatusWaiting,
		BookerID:    2,
		ItemID:      5,
		ItemName:    "drill",
		ItemOwnerID: 1,
	}

	t.Run("owner approves", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(10)).Return(detail, nil)
		f.users.On("Exists", ctx, uint64(1)).Return(true, nil)
		f.bookings.On("UpdateStatus", ctx, uint64(10), model.StatusApproved).Return(nil)
		f.events.On("Publish", ctx, mock.AnythingOfType("queue.BookingStatusEvent")).Return(nil)

		resp, err := f.svc.Approve(ctx, 10, true, 1)
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, resp.Status)
		f.bookings.AssertExpectations(t)
	})

	t.Run("owner rejects", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(10)).Return(detail, nil)
		f.users.On("Exists", ctx, uint64(1)).Return(true, nil)
		f.bookings.On("UpdateStatus", ctx, uint64(10), model.StatusRejected).Return(nil)
		f.events.On("Publish", ctx, mock.AnythingOfType("queue.BookingStatusEvent")).Return(nil)

		resp, err := f.svc.Approve(ctx, 10, false, 1)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, resp.Status)
	})

	t.Run("non-owner reads as not found", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(10)).Return(detail, nil)
		f.users.On("Exists", ctx, uint64(3)).Return(true, nil)

		_, err := f.svc.Approve(ctx, 10, true, 3)
		assert.True(t, model.IsNotFound(err))
		f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("booker cannot approve own booking", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(10)).Return(detail, nil)
		f.users.On("Exists", ctx, uint64(2)).Return(true, nil)

		_, err := f.svc.Approve(ctx, 10, true, 2)
		assert.True(t, model.IsNotFound(err))
	})

	t.Run("re-approving approved booking fails", func(t *testing.T) {
		approved := detail
		approved.Status = model.StatusApproved
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(10)).Return(approved, nil)
		f.users.On("Exists", ctx, uint64(1)).Return(true, nil)

		_, err := f.svc.Approve(ctx, 10, true, 1)
		var unavailable *model.UnavailableItemError
		require.ErrorAs(t, err, &unavailable)
	})

	t.Run("rejecting approved booking is allowed", func(t *testing.T) {
		approved := detail
		approved.Status = model.StatusApproved
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(10)).Return(approved, nil)
		f.users.On("Exists", ctx, uint64(1)).Return(true, nil)
		f.bookings.On("UpdateStatus", ctx, uint64(10), model.StatusRejected).Return(nil)
		f.events.On("Publish", ctx, mock.AnythingOfType("queue.BookingStatusEvent")).Return(nil)

		resp, err := f.svc.Approve(ctx, 10, false, 1)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, resp.Status)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("GetByID", ctx, uint64(404)).
			Return(repository.BookingDetail{}, repository.ErrBookingNotFound)

		_, err := f.svc.Approve(ctx, 404, true, 1)
		assert.True(t, model.IsNotFound(err))
	})
}

func TestBookingGetByID(t *testing.T) {
	ctx := context.Background()
	detail := repository.BookingDetail{
		ID: 10, Status: model.StatusWaiting, BookerID: 2, ItemID: 5, ItemOwnerID: 1,
	}

	cases := []struct {
		name    string
		viewer  uint64
		visible bool
	}{
		{"booker sees own booking", 2, true},
		{"owner sees booking of own item", 1, true},
		{"stranger gets not found", 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture()
			f.users.On("Exists", ctx, tc.viewer).Return(true, nil)
			f.bookings.On("GetByID", ctx, uint64(10)).Return(detail, nil)

			resp, err := f.svc.GetByID(ctx, 10, tc.viewer)
			if tc.visible {
				require.NoError(t, err)
				assert.Equal(t, uint64(10), resp.ID)
			} else {
				assert.True(t, model.IsNotFound(err))
			}
		})
	}

	t.Run("unknown viewer fails before lookup", func(t *testing.T) {
		f := newBookingFixture()
		f.users.On("Exists", ctx, uint64(9)).Return(false, nil)

		_, err := f.svc.GetByID(ctx, 10, 9)
		assert.True(t, model.IsNotFound(err))
		f.bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestBookingListings(t *testing.T) {
	ctx := context.Background()
	details := []repository.BookingDetail{
		{ID: 11, Status: model.StatusApproved, BookerID: 2, ItemID: 5},
		{ID: 10, Status: model.StatusWaiting, BookerID: 2, ItemID: 5},
	}

	t.Run("booker listing snaps offset to page boundary", func(t *testing.T) {
		f := newBookingFixture()
		f.users.On("Exists", ctx, uint64(2)).Return(true, nil)
		// from=7 size=5 reads page 1 starting at row 5
		f.bookings.On("ListByBooker", ctx, uint64(2), model.StateAll, mock.AnythingOfType("time.Time"), 5, 5).
			Return(details, nil)

		resp, err := f.svc.ListByBooker(ctx, 2, model.StateAll, 7, 5)
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, uint64(11), resp[0].ID)
		f.bookings.AssertExpectations(t)
	})

	t.Run("owner listing forwards state bucket", func(t *testing.T) {
		f := newBookingFixture()
		f.users.On("Exists", ctx, uint64(1)).Return(true, nil)
		f.bookings.On("ListByOwner", ctx, uint64(1), model.StateWaiting, mock.AnythingOfType("time.Time"), 10, 0).
			Return([]repository.BookingDetail{details[1]}, nil)

		resp, err := f.svc.ListByOwner(ctx, 1, model.StateWaiting, 0, 10)
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, model.StatusWaiting, resp[0].Status)
	})

	t.Run("unknown user gets not found", func(t *testing.T) {
		f := newBookingFixture()
		f.users.On("Exists", ctx, uint64(9)).Return(false, nil)

		_, err := f.svc.ListByBooker(ctx, 9, model.StateAll, 0, 10)
		assert.True(t, model.IsNotFound(err))
	})
}
