package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

// ItemHandler exposes the /items endpoints, including search and the
// comment ledger.  Every route requires the identity header.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler constructs an ItemHandler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	if items == nil {
		panic("nil service passed to NewItemHandler")
	}
	return &ItemHandler{items: items}
}

// GetItems handles GET /items: one page of the caller's items with
// booking decorations and comments.
func (h *ItemHandler) GetItems(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	from, size, err := paging(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.items.List(c.Request().Context(), ownerID, from, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItemByID handles GET /items/:itemId.  Booking decorations appear
// only for the item's owner.
func (h *ItemHandler) GetItemByID(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.items.Get(c.Request().Context(), itemID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// SearchItems handles GET /items/search?text=.  Blank text returns an
// empty list.
func (h *ItemHandler) SearchItems(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	from, size, err := paging(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.items.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateItem handles POST /items.  Name and description must be
// non-blank and the available flag must be present.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	var body struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Available   *bool   `json:"available"`
		RequestID   *uint64 `json:"requestId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "name is required"})
	}
	if strings.TrimSpace(body.Description) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "description is required"})
	}
	if body.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "available is required"})
	}
	in := service.CreateItemInput{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	}
	item, err := h.items.Create(c.Request().Context(), in, ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles PATCH /items/:itemId.  Absent or blank fields are
// left untouched.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	var body service.UpdateItemInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	item, err := h.items.Update(c.Request().Context(), body, itemID, ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:itemId.
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.items.Delete(c.Request().Context(), itemID, ownerID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateComment handles POST /items/:itemId/comment.  The text must be
// non-blank; eligibility is decided by the service.
func (h *ItemHandler) CreateComment(c echo.Context) error {
	authorID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "missing identity"})
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "invalid request body"})
	}
	if strings.TrimSpace(body.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation error", "message": "text is required"})
	}
	comment, err := h.items.CreateComment(c.Request().Context(), body.Text, itemID, authorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}
