package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/shareit/internal/cache"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// cache kind for single-item lookups.  Only the bare entity is cached;
// booking and comment decorations are always fetched fresh because they
// differ per viewer and change independently of the item row.
const itemKind = "item"

// ItemService implements the item catalog and the comment ledger.
type ItemService struct {
	items    ItemStore
	users    UserStore
	bookings BookingStore
	comments CommentStore
	requests RequestStore
	cache    *cache.Cache
	logger   zerolog.Logger
}

// NewItemService constructs an ItemService.
func NewItemService(items ItemStore, users UserStore, bookings BookingStore, comments CommentStore, requests RequestStore, c *cache.Cache, logger zerolog.Logger) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		cache:    c,
		logger:   logger,
	}
}

// CreateItemInput carries the validated shape of a new item.
type CreateItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *uint64 `json:"requestId"`
}

// UpdateItemInput carries a partial update.  Nil fields are left
// untouched; blank strings are also skipped, so clearing a description
// to empty is not expressible through this payload.
type UpdateItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// List returns one page of the owner's items ordered by id, each
// decorated with its last/next APPROVED booking and its comments.
func (s *ItemService) List(ctx context.Context, ownerID uint64, from, size int) ([]ItemResponse, error) {
	if err := checkUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	limit, offset := page(from, size)
	items, err := s.items.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, items, true)
}

// Get returns one item.  Booking decorations are included only when the
// requesting user is the owner; other viewers get a comment-only view.
func (s *ItemService) Get(ctx context.Context, itemID, userID uint64) (ItemResponse, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return ItemResponse{}, err
	}
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return ItemResponse{}, err
	}
	var bookings []repository.BookingDetail
	if item.OwnerID == userID {
		bookings, err = s.bookings.ListApprovedForItems(ctx, []uint64{itemID})
		if err != nil {
			return ItemResponse{}, err
		}
	}
	return toItemResponse(item, toCommentResponses(comments), bookings, time.Now().UTC()), nil
}

// Search returns one page of available items matching text in name or
// description, ordered by id.  Blank text short-circuits to an empty
// result without touching the store.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemResponse{}, nil
	}
	limit, offset := page(from, size)
	items, err := s.items.Search(ctx, text, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, items, true)
}

// Create lists a new item for the owner.  A supplied request id must
// resolve on the request board.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput, ownerID uint64) (ItemResponse, error) {
	if err := checkUser(ctx, s.users, ownerID); err != nil {
		return ItemResponse{}, err
	}
	if in.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *in.RequestID); err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				return ItemResponse{}, model.NotFound("request with id %d not found", *in.RequestID)
			}
			return ItemResponse{}, err
		}
	}
	item := model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return ItemResponse{}, err
	}
	s.cache.Set(ctx, itemKind, item.ID, item)
	s.logger.Info().Uint64("item_id", item.ID).Uint64("owner_id", ownerID).Msg("item created")
	return toItemResponse(item, []CommentResponse{}, nil, time.Now().UTC()), nil
}

// Update applies a partial update to an item owned by ownerID.  Each
// field is written only when supplied and, for strings, non-blank.
// Non-owners get not-found rather than forbidden.
func (s *ItemService) Update(ctx context.Context, in UpdateItemInput, itemID, ownerID uint64) (ItemResponse, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return ItemResponse{}, err
	}
	if err := checkUser(ctx, s.users, ownerID); err != nil {
		return ItemResponse{}, err
	}
	if item.OwnerID != ownerID {
		return ItemResponse{}, model.NotFound("item may be edited only by its owner")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		item.Name = *in.Name
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		item.Description = *in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if err := s.items.Update(ctx, &item); err != nil {
		return ItemResponse{}, err
	}
	s.cache.Set(ctx, itemKind, item.ID, item)
	s.logger.Info().Uint64("item_id", itemID).Uint64("owner_id", ownerID).Msg("item updated")
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return ItemResponse{}, err
	}
	return toItemResponse(item, toCommentResponses(comments), nil, time.Now().UTC()), nil
}

// Delete removes an item owned by ownerID.  Non-owners get not-found.
func (s *ItemService) Delete(ctx context.Context, itemID, ownerID uint64) error {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return model.NotFound("item may be deleted only by its owner")
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return model.NotFound("item with id %d not found", itemID)
		}
		return err
	}
	s.cache.Invalidate(ctx, itemKind, itemID)
	s.logger.Info().Uint64("item_id", itemID).Uint64("owner_id", ownerID).Msg("item deleted")
	return nil
}

// CreateComment attaches a comment to an item.  The author must have at
// least one booking of the item whose end time is already in the past;
// the check is a count query, not a state flag.
func (s *ItemService) CreateComment(ctx context.Context, text string, itemID, authorID uint64) (CommentResponse, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return CommentResponse{}, model.NotFound("user with id %d not found", authorID)
		}
		return CommentResponse{}, err
	}
	if _, err := s.getItem(ctx, itemID); err != nil {
		return CommentResponse{}, err
	}
	now := time.Now().UTC()
	count, err := s.bookings.CountCompleted(ctx, itemID, authorID, now)
	if err != nil {
		return CommentResponse{}, err
	}
	if count == 0 {
		return CommentResponse{}, model.Unavailable("comments may be left only by a user with a completed booking of the item")
	}
	comment := model.Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return CommentResponse{}, err
	}
	s.logger.Info().Uint64("comment_id", comment.ID).Uint64("item_id", itemID).Uint64("author_id", authorID).Msg("comment created")
	return CommentResponse{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		Created:    comment.Created,
	}, nil
}

// getItem is the cached single-item lookup.
func (s *ItemService) getItem(ctx context.Context, itemID uint64) (model.Item, error) {
	var item model.Item
	if s.cache.Get(ctx, itemKind, itemID, &item) {
		return item, nil
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return model.Item{}, model.NotFound("item with id %d not found", itemID)
		}
		return model.Item{}, err
	}
	s.cache.Set(ctx, itemKind, itemID, item)
	return item, nil
}

// decorate attaches comments (and, when withBookings is set, last/next
// APPROVED booking markers) to a list of items in two grouped queries.
func (s *ItemService) decorate(ctx context.Context, items []model.Item, withBookings bool) ([]ItemResponse, error) {
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	commentsByItem := map[uint64][]CommentResponse{}
	comments, err := s.comments.ListByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], toCommentResponse(c))
	}
	bookingsByItem := map[uint64][]repository.BookingDetail{}
	if withBookings {
		bookings, err := s.bookings.ListApprovedForItems(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
		}
	}
	now := time.Now().UTC()
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it, commentsByItem[it.ID], bookingsByItem[it.ID], now))
	}
	return out, nil
}
