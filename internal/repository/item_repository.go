package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
)

// ItemRepo provides CRUD operations and free-text search over the
// `items` table.
type ItemRepo struct{ db *sql.DB }

// NewItemRepo returns a new ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = "id, name, description, available, owner_id, request_id"

func scanItem(row interface{ Scan(...any) error }) (model.Item, error) {
	var it model.Item
	var reqID sql.NullInt64
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &reqID)
	if err != nil {
		return model.Item{}, err
	}
	if reqID.Valid {
		id := uint64(reqID.Int64)
		it.RequestID = &id
	}
	return it, nil
}

// Create inserts an item and populates the generated ID.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	var reqID any
	if it.RequestID != nil {
		reqID = *it.RequestID
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)",
		it.Name, it.Description, it.Available, it.OwnerID, reqID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetByID fetches an item by id.  Returns ErrItemNotFound when absent.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrItemNotFound
	}
	return it, err
}

// Update rewrites the mutable columns of an item.
func (r *ItemRepo) Update(ctx context.Context, it *model.Item) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?",
		it.Name, it.Description, it.Available, it.ID)
	return err
}

// Delete removes an item.  Returns ErrItemNotFound when no row matched.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ListByOwner returns one page of an owner's items ordered by id.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// Search returns one page of available items whose name or description
// contains text, matched case-insensitively, ordered by id ascending.
// Callers are expected to short-circuit blank text before reaching the
// store.
func (r *ItemRepo) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items
		 WHERE available = TRUE
		   AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		pattern, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListByRequestIDs returns all items that answer one of the given
// requests, ordered by id.  An empty id list returns no rows without
// touching the store.
func (r *ItemRepo) ListByRequestIDs(ctx context.Context, requestIDs []uint64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return []model.Item{}, nil
	}
	query := "SELECT " + itemColumns + " FROM items WHERE request_id IN (" +
		placeholders(len(requestIDs)) + ") ORDER BY id"
	args := make([]any, 0, len(requestIDs))
	for _, id := range requestIDs {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// placeholders builds "?, ?, ?" for IN clauses of n values.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
