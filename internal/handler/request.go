package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

// RequestHandler exposes the /requests endpoints: the board where users
// ask for items that do not exist yet.
type RequestHandler struct {
	requests *service.RequestService
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	if requests == nil {
		panic("nil service passed to NewRequestHandler")
	}
	return &RequestHandler{requests: requests}
}

// CreateRequest handles POST /requests.  The description must be
// non-blank.
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	var body struct {
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	if strings.TrimSpace(body.Description) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "description is required"})
	}
	request, err := h.requests.Create(c.Request().Context(), body.Description, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

// GetOwnRequests handles GET /requests: the caller's own requests,
// oldest first, each with the items offered in answer.
func (h *RequestHandler) GetOwnRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	requests, err := h.requests.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// GetAllRequests handles GET /requests/all?from=&size=: one page of
// other users' requests, newest first.
func (h *RequestHandler) GetAllRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	from, size, err := paging(c)
	if err != nil {
		return writeError(c, err)
	}
	requests, err := h.requests.ListAll(c.Request().Context(), userID, from, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// GetRequestByID handles GET /requests/:requestId.  Any known user may
// view any request.
func (h *RequestHandler) GetRequestByID(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return writeError(c, err)
	}
	request, err := h.requests.Get(c.Request().Context(), requestID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}
