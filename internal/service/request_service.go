package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// RequestService implements the request board: "I need an item like X"
// entries that items can later reference as their origin.
type RequestService struct {
	requests RequestStore
	items    ItemStore
	users    UserStore
	logger   zerolog.Logger
}

// NewRequestService constructs a RequestService.
func NewRequestService(requests RequestStore, items ItemStore, users UserStore, logger zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, items: items, users: users, logger: logger}
}

// Create posts a new request for the user with a server-assigned
// creation timestamp.
func (s *RequestService) Create(ctx context.Context, description string, userID uint64) (RequestResponse, error) {
	if err := checkUser(ctx, s.users, userID); err != nil {
		return RequestResponse{}, err
	}
	req := model.Request{
		Description: description,
		RequestorID: userID,
		Created:     time.Now().UTC(),
	}
	if err := s.requests.Create(ctx, &req); err != nil {
		return RequestResponse{}, err
	}
	s.logger.Info().Uint64("request_id", req.ID).Uint64("requestor_id", userID).Msg("request created")
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       []ItemShort{},
	}, nil
}

// ListOwn returns the user's own requests ordered by creation time
// ascending, each with the items listed in answer to it.
func (s *RequestService) ListOwn(ctx context.Context, userID uint64) ([]RequestResponse, error) {
	if err := checkUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, requests)
}

// Get returns one request with its answering items.
func (s *RequestService) Get(ctx context.Context, requestID, userID uint64) (RequestResponse, error) {
	if err := checkUser(ctx, s.users, userID); err != nil {
		return RequestResponse{}, err
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return RequestResponse{}, model.NotFound("request with id %d not found", requestID)
		}
		return RequestResponse{}, err
	}
	responses, err := s.decorate(ctx, []model.Request{req})
	if err != nil {
		return RequestResponse{}, err
	}
	return responses[0], nil
}

// ListAll returns one page of other users' requests, newest first, for
// browsing what could be listed.
func (s *RequestService) ListAll(ctx context.Context, userID uint64, from, size int) ([]RequestResponse, error) {
	if err := checkUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	limit, offset := page(from, size)
	requests, err := s.requests.ListOthers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, requests)
}

// decorate attaches each request's answering items in one grouped query.
func (s *RequestService) decorate(ctx context.Context, requests []model.Request) ([]RequestResponse, error) {
	ids := make([]uint64, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}
	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := map[uint64][]ItemShort{}
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		itemsByRequest[*it.RequestID] = append(itemsByRequest[*it.RequestID], toItemShort(it))
	}
	out := make([]RequestResponse, 0, len(requests))
	for _, req := range requests {
		shorts := itemsByRequest[req.ID]
		if shorts == nil {
			shorts = []ItemShort{}
		}
		out = append(out, RequestResponse{
			ID:          req.ID,
			Description: req.Description,
			Created:     req.Created,
			Items:       shorts,
		})
	}
	return out, nil
}
