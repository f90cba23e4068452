package model

import "time"

// Comment is feedback attached to an item.  Only a user with at least
// one booking of the item whose end time has already passed may write
// one; Created is assigned by the server at write time.
type Comment struct {
	ID       uint64    // comments.id
	Text     string    // comments.text
	ItemID   uint64    // comments.item_id
	AuthorID uint64    // comments.author_id
	Created  time.Time // comments.created
}
