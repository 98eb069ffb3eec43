package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
)

// PostService reads and mutates posts and their comments. Authorization is
// checked by callers before any mutating method is reached.
type PostService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(m repomanager.RepositoryManager) *PostService {
	return &PostService{repomanager: m, now: time.Now}
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.repomanager.Conn()).List(ctx)
}

// Get returns the post or common.ErrorNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.repomanager.Posts(s.repomanager.Conn()).GetByID(ctx, id)
}

func (s *PostService) Comments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.repomanager.Conn()).ListByPost(ctx, postID)
}

// Create stores a new post by authorID dated today. A taken title yields
// common.ErrAlreadyExists.
func (s *PostService) Create(ctx context.Context, authorID int64, in models.PostInput) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(common.PostDateLayout),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
	}

	var created *models.Post
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Posts(tx).Create(ctx, post)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update rewrites the editable fields of post id. Author and date stay.
func (s *PostService) Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	var updated *models.Post
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		post, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		post.Title = in.Title
		post.Subtitle = in.Subtitle
		post.Body = in.Body
		post.ImgURL = in.ImgURL

		if err := repo.Update(ctx, post); err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes post id together with its comments.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Posts(tx).GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Comments(tx).DeleteByPost(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Posts(tx).Delete(ctx, id)
	})
}

// AddComment attaches text to post postID on behalf of authorID.
func (s *PostService) AddComment(ctx context.Context, postID, authorID int64, text string) (*models.Comment, error) {
	var created *models.Comment
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Posts(tx).GetByID(ctx, postID); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.Comments(tx).Create(ctx, &models.Comment{
			AuthorID: authorID,
			PostID:   postID,
			Text:     text,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
