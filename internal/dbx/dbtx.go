// Package dbx holds the database/sql glue shared by the repositories and
// the PostgreSQL repository manager.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what a repository needs to run its queries: *sql.DB outside a
// transaction, *sql.Tx inside one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is one use case's worth of repository calls.
type TxFunc func(ctx context.Context, tx DBTX) error

// WithTx runs fn on a transaction of db. A nil error from fn commits, and
// the commit error is returned. An error or panic from fn rolls back; the
// panic is re-raised afterwards.
//
// Deleting a post with its comments:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//		if err := comments.NewPostgresRepository(tx).DeleteByPost(ctx, id); err != nil {
//			return err
//		}
//		return posts.NewPostgresRepository(tx).Delete(ctx, id)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	return tx.Commit()
}
