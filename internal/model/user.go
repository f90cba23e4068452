package model

// User represents an application user as stored in the `users` table.
// Email is unique across all users; the identity header carries the
// numeric ID of one of these rows.  The json tags double as the wire
// shape because the user projection exposes every column.
//
// Fields:
//  ID    – primary key identifier.
//  Name  – display name shown in comment projections.
//  Email – unique email address.
type User struct {
	ID    uint64 `json:"id"`    // users.id
	Name  string `json:"name"`  // users.name
	Email string `json:"email"` // users.email
}
