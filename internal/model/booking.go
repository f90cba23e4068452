package model

import (
	"strings"
	"time"
)

// Booking statuses as persisted in bookings.status.  A booking is
// created WAITING and moved exactly once to APPROVED or REJECTED by
// the item's owner.  There is no delete operation.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Booking records one user's request to borrow an item for a date range.
//
// Fields:
//  ID       – primary key identifier.
//  Start    – beginning of the booked range, strictly before End.
//  End      – end of the booked range.
//  ItemID   – booked item.
//  BookerID – user who requested the booking, never the item's owner.
//  Status   – one of StatusWaiting, StatusApproved, StatusRejected.
type Booking struct {
	ID       uint64    // bookings.id
	Start    time.Time // bookings.start_date
	End      time.Time // bookings.end_date
	ItemID   uint64    // bookings.item_id
	BookerID uint64    // bookings.booker_id
	Status   string    // bookings.status
}

// State is a filter bucket for booking listings.  CURRENT, PAST and
// FUTURE are evaluated against "now" at query time; WAITING and
// REJECTED match the persisted status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a query parameter onto a State.  An empty value
// defaults to ALL; anything unrecognized yields a StateError carrying
// the offending value.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch State(strings.ToUpper(s)) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	}
	return "", UnknownState(s)
}
