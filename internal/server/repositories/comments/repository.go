package comments

import (
	"context"

	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	DeleteByPost(ctx context.Context, postID int64) error
}
