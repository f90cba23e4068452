package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/shareit/internal/model"
)

// CommentRepo provides persistence for item comments.  Reads join the
// users table to denormalize the author's display name into the result.
type CommentRepo struct{ db *sql.DB }

// NewCommentRepo returns a new CommentRepo bound to the given database.
func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// CommentDetail is a comment row joined with the author's display name.
type CommentDetail struct {
	model.Comment
	AuthorName string
}

// Create inserts a comment and populates the generated ID.  Created
// must already carry the server-assigned timestamp.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)",
		c.Text, c.ItemID, c.AuthorID, c.Created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// ListByItem returns an item's comments ordered by creation time.
func (r *CommentRepo) ListByItem(ctx context.Context, itemID uint64) ([]CommentDetail, error) {
	return r.list(ctx,
		commentSelect+" WHERE c.item_id = ? ORDER BY c.created", itemID)
}

// ListByItemIDs returns the comments of all given items ordered by
// creation time, for decorating item listings in one round trip.
func (r *CommentRepo) ListByItemIDs(ctx context.Context, itemIDs []uint64) ([]CommentDetail, error) {
	if len(itemIDs) == 0 {
		return []CommentDetail{}, nil
	}
	query := commentSelect + " WHERE c.item_id IN (" + placeholders(len(itemIDs)) +
		") ORDER BY c.created"
	args := make([]any, 0, len(itemIDs))
	for _, id := range itemIDs {
		args = append(args, id)
	}
	return r.list(ctx, query, args...)
}

const commentSelect = `SELECT c.id, c.text, c.item_id, c.author_id, c.created, u.name
FROM comments c
JOIN users u ON u.id = c.author_id`

func (r *CommentRepo) list(ctx context.Context, query string, args ...any) ([]CommentDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]CommentDetail, 0)
	for rows.Next() {
		var d CommentDetail
		if err := rows.Scan(&d.ID, &d.Text, &d.ItemID, &d.AuthorID, &d.Created, &d.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, d)
	}
	return comments, rows.Err()
}
