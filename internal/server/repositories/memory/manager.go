// Package memory provides an in-process RepositoryManager. It keeps the same
// invariants as the PostgreSQL schema (unique email and title, foreign keys,
// cascading comment removal) and is used for local development and tests.
//
// Reads outside WithTx are not isolated: they may observe writes of a
// transaction that is still running and may later be rolled back.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/users"
)

type state struct {
	users    map[int64]models.User
	posts    map[int64]models.Post
	comments map[int64]models.Comment

	lastUserID    int64
	lastPostID    int64
	lastCommentID int64
}

func newState() *state {
	return &state{
		users:    make(map[int64]models.User),
		posts:    make(map[int64]models.Post),
		comments: make(map[int64]models.Comment),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:         make(map[int64]models.User, len(s.users)),
		posts:         make(map[int64]models.Post, len(s.posts)),
		comments:      make(map[int64]models.Comment, len(s.comments)),
		lastUserID:    s.lastUserID,
		lastPostID:    s.lastPostID,
		lastCommentID: s.lastCommentID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	return c
}

// RepositoryManager holds all rows in maps guarded by mu. Transactions are
// serialized by txMu and undone by restoring a snapshot taken at begin.
// Writes are expected to go through WithTx.
type RepositoryManager struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{data: newState()}
}

// RunMigrations is a no-op; the maps need no schema.
func (m *RepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

// Conn returns nil. Memory repositories ignore the handle they are given.
func (m *RepositoryManager) Conn() dbx.DBTX {
	return nil
}

// WithTx runs fn and rolls every change back if it returns an error or panics.
func (m *RepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	snapshot := m.data.clone()
	m.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			m.restore(snapshot)
			panic(p)
		}
		if err != nil {
			m.restore(snapshot)
		}
	}()

	return fn(ctx, nil)
}

func (m *RepositoryManager) restore(s *state) {
	m.mu.Lock()
	m.data = s
	m.mu.Unlock()
}

func (m *RepositoryManager) Close() error {
	return nil
}

func (m *RepositoryManager) Users(db dbx.DBTX) users.Repository {
	return &UserRepository{m: m}
}

func (m *RepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return &PostRepository{m: m}
}

func (m *RepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return &CommentRepository{m: m}
}

func sortedKeys[V any](items map[int64]V) []int64 {
	keys := make([]int64, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
