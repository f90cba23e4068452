package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/shareit/internal/cache"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// cache kind for single-user lookups.
const userKind = "user"

// UserService implements the identity store operations.
type UserService struct {
	users  UserStore
	cache  *cache.Cache
	logger zerolog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, c *cache.Cache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cache: c, logger: logger}
}

// UpdateUserInput carries a partial user update.  Nil fields are left
// untouched; blank strings are also skipped.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// List returns every registered user ordered by id.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, userID uint64) (model.User, error) {
	var u model.User
	if s.cache.Get(ctx, userKind, userID, &u) {
		return u, nil
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, model.NotFound("user with id %d not found", userID)
		}
		return model.User{}, err
	}
	s.cache.Set(ctx, userKind, userID, u)
	return u, nil
}

// Create registers a new user.  A duplicate email is rejected.
func (s *UserService) Create(ctx context.Context, name, email string) (model.User, error) {
	u := model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, repository.ErrEmailExists
		}
		return model.User{}, err
	}
	s.cache.Set(ctx, userKind, u.ID, u)
	s.logger.Info().Uint64("user_id", u.ID).Msg("user created")
	return u, nil
}

// Update applies a partial update.  Name and email are each written
// only when supplied and non-blank; a duplicate email is rejected.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput, userID uint64) (model.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = *in.Name
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		u.Email = *in.Email
	}
	if err := s.users.Update(ctx, &u); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return model.User{}, repository.ErrEmailExists
		case errors.Is(err, repository.ErrUserNotFound):
			return model.User{}, model.NotFound("user with id %d not found", userID)
		}
		return model.User{}, err
	}
	s.cache.Set(ctx, userKind, u.ID, u)
	s.logger.Info().Uint64("user_id", userID).Msg("user updated")
	return u, nil
}

// Delete removes a user by id.  Items, bookings, requests and comments
// referencing the user go away with it through the schema cascades.
func (s *UserService) Delete(ctx context.Context, userID uint64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.NotFound("user with id %d not found", userID)
		}
		return err
	}
	s.cache.Invalidate(ctx, userKind, userID)
	s.logger.Info().Uint64("user_id", userID).Msg("user deleted")
	return nil
}
