package core

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DBExecutor is satisfied by both *sqlx.DB and *sqlx.Tx so that repositories
// may run against the pool or an open transaction interchangeably.
type DBExecutor interface {
	sqlx.ExtContext

	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ DBExecutor = (*sqlx.DB)(nil)
	_ DBExecutor = (*sqlx.Tx)(nil)
)
