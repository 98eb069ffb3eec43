package memory

import (
	"context"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

type PostRepository struct {
	m *RepositoryManager
}

func (r *PostRepository) titleTaken(title string, exceptID int64) bool {
	for id, p := range r.m.data.posts {
		if id != exceptID && p.Title == title {
			return true
		}
	}
	return false
}

// withAuthor fills the joined author name. Caller holds mu.
func (r *PostRepository) withAuthor(p models.Post) *models.Post {
	p.AuthorName = r.m.data.users[p.AuthorID].Name
	return &p
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.data.users[post.AuthorID]; !ok {
		return nil, common.ErrorNotFound
	}
	if r.titleTaken(post.Title, 0) {
		return nil, common.ErrAlreadyExists
	}

	r.m.data.lastPostID++
	post.ID = r.m.data.lastPostID
	stored := *post
	stored.AuthorName = ""
	r.m.data.posts[post.ID] = stored
	return post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p, ok := r.m.data.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.withAuthor(p), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	result := make([]*models.Post, 0, len(r.m.data.posts))
	for _, id := range sortedKeys(r.m.data.posts) {
		result = append(result, r.withAuthor(r.m.data.posts[id]))
	}
	return result, nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored, ok := r.m.data.posts[post.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if r.titleTaken(post.Title, post.ID) {
		return common.ErrAlreadyExists
	}

	stored.Title = post.Title
	stored.Subtitle = post.Subtitle
	stored.Body = post.Body
	stored.ImgURL = post.ImgURL
	r.m.data.posts[post.ID] = stored
	return nil
}

// Delete removes the post and, like ON DELETE CASCADE, its comments.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.data.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.data.posts, id)
	for cid, c := range r.m.data.comments {
		if c.PostID == id {
			delete(r.m.data.comments, cid)
		}
	}
	return nil
}
