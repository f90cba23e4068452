package service

import (
	"time"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// Response projections.  Responses never expose the raw persisted row:
// bookings embed an id-only booker and an id+name item, item views embed
// id+bookerId booking markers, and comments denormalize the author's
// display name.

// BookerRef is the id-only booker projection nested in a booking.
type BookerRef struct {
	ID uint64 `json:"id"`
}

// ItemRef is the id+name item projection nested in a booking.
type ItemRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// BookingResponse is the full booking projection.
type BookingResponse struct {
	ID     uint64    `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker BookerRef `json:"booker"`
	Item   ItemRef   `json:"item"`
}

// BookingRef is the id+bookerId projection used for the lastBooking and
// nextBooking decorations on an item.
type BookingRef struct {
	ID       uint64 `json:"id"`
	BookerID uint64 `json:"bookerId"`
}

// CommentResponse is the comment projection with the author's display
// name denormalized.
type CommentResponse struct {
	ID         uint64    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemResponse is the item projection.  LastBooking and NextBooking are
// present only on views produced for the item's owner.
type ItemResponse struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *uint64           `json:"requestId,omitempty"`
	LastBooking *BookingRef       `json:"lastBooking,omitempty"`
	NextBooking *BookingRef       `json:"nextBooking,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

// ItemShort is the item projection nested in a request board entry.
type ItemShort struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *uint64 `json:"requestId,omitempty"`
}

// RequestResponse is the request board projection with the items listed
// in answer to it.
type RequestResponse struct {
	ID          uint64      `json:"id"`
	Description string      `json:"description"`
	Created     time.Time   `json:"created"`
	Items       []ItemShort `json:"items"`
}

func toBookingResponse(d repository.BookingDetail) BookingResponse {
	return BookingResponse{
		ID:     d.ID,
		Start:  d.Start,
		End:    d.End,
		Status: d.Status,
		Booker: BookerRef{ID: d.BookerID},
		Item:   ItemRef{ID: d.ItemID, Name: d.ItemName},
	}
}

func toBookingResponses(details []repository.BookingDetail) []BookingResponse {
	out := make([]BookingResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toBookingResponse(d))
	}
	return out
}

func toCommentResponse(d repository.CommentDetail) CommentResponse {
	return CommentResponse{ID: d.ID, Text: d.Text, AuthorName: d.AuthorName, Created: d.Created}
}

func toCommentResponses(details []repository.CommentDetail) []CommentResponse {
	out := make([]CommentResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toCommentResponse(d))
	}
	return out
}

func toItemShort(it model.Item) ItemShort {
	return ItemShort{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

// toItemResponse builds the item projection.  bookings must be the
// item's APPROVED bookings ordered by start ascending; pass nil for
// views that hide booking decorations.  The last booking is the latest
// one starting at or before now, the next booking the earliest one
// starting after now.
func toItemResponse(it model.Item, comments []CommentResponse, bookings []repository.BookingDetail, now time.Time) ItemResponse {
	resp := ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		Comments:    comments,
	}
	if resp.Comments == nil {
		resp.Comments = []CommentResponse{}
	}
	for i := range bookings {
		b := bookings[i]
		if b.Start.After(now) {
			if resp.NextBooking == nil {
				resp.NextBooking = &BookingRef{ID: b.ID, BookerID: b.BookerID}
			}
		} else {
			resp.LastBooking = &BookingRef{ID: b.ID, BookerID: b.BookerID}
		}
	}
	return resp
}
