package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub-BE/internal/notification"
)

// Store provides all functions to execute db queries. It satisfies both the
// notification record store and the directory lookups the resolver needs.
type Store interface {
	notification.Store
	notification.Directory
	Ping(ctx context.Context) error
}

type SQLStore struct {
	connPool *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) Store {
	return &SQLStore{
		connPool: db,
	}
}

// Ping checks if the database connection is alive.
func (store *SQLStore) Ping(ctx context.Context) error {
	return store.connPool.Ping(ctx)
}
