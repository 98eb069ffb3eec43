// Package posts provides the PostgreSQL-backed repository for blog posts.
// Reads join users so every returned post carries its author's name.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

const selectPosts = `
		SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
	`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts post and fills its ID. A duplicate title yields
// common.ErrAlreadyExists; an unknown author yields common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL).Scan(&post.ID)
	if err != nil {
		return nil, dbx.TranslateError(err)
	}
	return post, nil
}

// GetByID returns the post or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := selectPosts + `WHERE p.id = $1`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImgURL, &post.AuthorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.TranslateError(err)
	}
	return post, nil
}

// List returns every post in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := selectPosts + `ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		var item models.Post
		if err := rows.Scan(
			&item.ID, &item.AuthorID, &item.Title, &item.Subtitle, &item.Date, &item.Body, &item.ImgURL, &item.AuthorName,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the editable fields of post. Author and date are never touched.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE blog_posts
		SET title = $1, subtitle = $2, body = $3, img_url = $4
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query, post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID)
	if err != nil {
		return dbx.TranslateError(err)
	}
	return expectOneRow(res)
}

// Delete removes the post. Comments go with it through the ON DELETE CASCADE
// foreign key; services also delete them explicitly inside the same transaction.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM blog_posts
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return dbx.TranslateError(err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
