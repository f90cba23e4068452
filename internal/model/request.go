package model

import "time"

// Request is a "looking for an item like X" entry on the request board.
// Items may reference the request that prompted their listing.
type Request struct {
	ID          uint64    // requests.id
	Description string    // requests.description
	RequestorID uint64    // requests.requestor_id
	Created     time.Time // requests.created
}
