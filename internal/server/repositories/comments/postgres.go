// Package comments provides the PostgreSQL-backed repository for post comments.
package comments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts comment and fills its ID. An unknown post or author
// yields common.ErrorNotFound through the foreign keys.
func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (author_id, post_id, text)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, comment.AuthorID, comment.PostID, comment.Text).Scan(&comment.ID)
	if err != nil {
		return nil, dbx.TranslateError(err)
	}
	return comment, nil
}

// ListByPost returns the comments of a post oldest first, with author name and email.
func (r *PostgresRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.author_id, c.post_id, c.text, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.id
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to select comments: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Comment, 0)
	for rows.Next() {
		var item models.Comment
		if err := rows.Scan(&item.ID, &item.AuthorID, &item.PostID, &item.Text, &item.AuthorName, &item.AuthorEmail); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByPost removes every comment of a post. Zero rows is not an error.
func (r *PostgresRepository) DeleteByPost(ctx context.Context, postID int64) error {
	query := `
		DELETE FROM comments
		WHERE post_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return dbx.TranslateError(err)
	}
	return nil
}
