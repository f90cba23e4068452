package model

// Item represents a listing owned by a single user.  The Available flag
// gates both bookability and search visibility.  RequestID is set when
// the item was listed in answer to a request board entry.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – short item name, searched case-insensitively.
//  Description – free text, searched case-insensitively.
//  Available   – whether the item may be booked right now.
//  OwnerID     – user who listed the item.
//  RequestID   – originating request, nil when listed spontaneously.
type Item struct {
	ID          uint64  // items.id
	Name        string  // items.name
	Description string  // items.description
	Available   bool    // items.available
	OwnerID     uint64  // items.owner_id
	RequestID   *uint64 // items.request_id (nullable)
}
