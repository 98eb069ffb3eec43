package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/users"
)

// MemoryDSN selects the in-memory storage backend.
const MemoryDSN = "memory://"

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() dbx.DBTX
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	Close() error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
}

var _ RepositoryManager = (*memory.RepositoryManager)(nil)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open picks the backend from dsn: memory:// yields an in-memory manager,
// anything else is handed to the pgx driver and pinged.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		return memory.NewRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewPostgresRepositoryManager(db)
}
