// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusEvent is published whenever a booking changes status:
// once on creation (WAITING) and once when the owner approves or
// rejects it.  It carries enough information for downstream consumers
// to audit or analyze bookings without querying the primary database.
type BookingStatusEvent struct {
	BookingID uint64 `json:"booking_id"`
	ItemID    uint64 `json:"item_id"`
	ItemName  string `json:"item_name"`
	BookerID  uint64 `json:"booker_id"`
	OwnerID   uint64 `json:"owner_id"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	End       string `json:"end"`
	ChangedAt string `json:"changed_at"`
}
