// Package repository defines error values that are reused across
// multiple repositories. These sentinels allow higher layers such as
// services to distinguish between failure scenarios without matching
// on driver errors. Each *NotFound value is returned when a lookup by
// id produces no row; ErrEmailExists is returned when the unique email
// constraint on users rejects an insert or update.
package repository

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrCommentNotFound = errors.New("comment not found")

	// ErrEmailExists maps MySQL duplicate-key errors (1062) on the
	// users.email unique index.
	ErrEmailExists = errors.New("email already exists")
)
