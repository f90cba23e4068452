package handler // handler implements the HTTP surface and its shape validation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// currentUserID extracts the identity-header user id stored in the
// context by the identity middleware.
func currentUserID(c echo.Context) (uint64, error) {
	v := c.Get(middleware.ContextUserKey)
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case int:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, model.Invalid("invalid %s", name)
	}
	return id, nil
}

// paging parses the from/size query parameters with the contract
// defaults (from=0, size=10) and bounds (from >= 0, 1 <= size <= 100).
func paging(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, model.Invalid("from must be a non-negative integer")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 || size > 100 {
			return 0, 0, model.Invalid("size must be between 1 and 100")
		}
	}
	return from, size, nil
}

// writeError maps a business-layer error onto the terminal HTTP
// response for the request.  NotFound covers authorization failures as
// well, so callers cannot distinguish "absent" from "not yours".
func writeError(c echo.Context, err error) error {
	var (
		notFound    *model.NotFoundError
		unavailable *model.UnavailableItemError
		state       *model.StateError
		validation  *model.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Entity not found", "message": notFound.Message})
	case errors.As(err, &unavailable):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Booking error", "message": unavailable.Message})
	case errors.As(err, &state):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": state.Error(), "message": state.Error()})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Validation error", "message": validation.Message})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Email conflict", "message": "user email already exists"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error", "message": err.Error()})
}
