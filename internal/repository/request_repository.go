package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/shareit/internal/model"
)

// RequestRepo provides persistence for the request board.
type RequestRepo struct{ db *sql.DB }

// NewRequestRepo returns a new RequestRepo bound to the given database.
func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

// Create inserts a request and populates the generated ID.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)",
		req.Description, req.RequestorID, req.Created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return nil
}

// GetByID fetches a request by id.  Returns ErrRequestNotFound when
// absent.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.Request, error) {
	var req model.Request
	err := r.db.QueryRowContext(ctx,
		"SELECT id, description, requestor_id, created FROM requests WHERE id = ? LIMIT 1",
		id).Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Request{}, ErrRequestNotFound
	}
	return req, err
}

// ListByRequestor returns every request created by the user ordered by
// creation time ascending.
func (r *RequestRepo) ListByRequestor(ctx context.Context, requestorID uint64) ([]model.Request, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, description, requestor_id, created FROM requests WHERE requestor_id = ? ORDER BY created",
		requestorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListOthers returns one page of requests created by anyone except the
// given user, newest first.
func (r *RequestRepo) ListOthers(ctx context.Context, userID uint64, limit, offset int) ([]model.Request, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, requestor_id, created
		 FROM requests
		 WHERE requestor_id <> ?
		 ORDER BY created DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]model.Request, error) {
	requests := make([]model.Request, 0)
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
