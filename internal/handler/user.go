package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

// UserHandler exposes the /users endpoints.  User management does not
// require the identity header; everything else does.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	if users == nil {
		panic("nil service passed to NewUserHandler")
	}
	return &UserHandler{users: users}
}

// GetUsers handles GET /users.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserByID handles GET /users/:userId.
func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return writeError(c, err)
	}
	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /users.  Name and email are required; email
// must look like an address.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "name is required"})
	}
	if strings.TrimSpace(body.Email) == "" || !strings.Contains(body.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "a valid email is required"})
	}
	user, err := h.users.Create(c.Request().Context(), body.Name, body.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles PATCH /users/:userId.  Absent or blank fields are
// left untouched.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return writeError(c, err)
	}
	var body service.UpdateUserInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	if body.Email != nil && strings.TrimSpace(*body.Email) != "" && !strings.Contains(*body.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "a valid email is required"})
	}
	user, err := h.users.Update(c.Request().Context(), body, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:userId.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.users.Delete(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
