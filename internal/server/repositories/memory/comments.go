package memory

import (
	"context"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

type CommentRepository struct {
	m *RepositoryManager
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.data.users[comment.AuthorID]; !ok {
		return nil, common.ErrorNotFound
	}
	if _, ok := r.m.data.posts[comment.PostID]; !ok {
		return nil, common.ErrorNotFound
	}

	r.m.data.lastCommentID++
	comment.ID = r.m.data.lastCommentID
	stored := *comment
	stored.AuthorName, stored.AuthorEmail = "", ""
	r.m.data.comments[comment.ID] = stored
	return comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	result := make([]*models.Comment, 0)
	for _, id := range sortedKeys(r.m.data.comments) {
		c := r.m.data.comments[id]
		if c.PostID != postID {
			continue
		}
		author := r.m.data.users[c.AuthorID]
		c.AuthorName = author.Name
		c.AuthorEmail = author.Email
		result = append(result, &c)
	}
	return result, nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for id, c := range r.m.data.comments {
		if c.PostID == postID {
			delete(r.m.data.comments, id)
		}
	}
	return nil
}
