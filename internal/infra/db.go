// README: Postgres connection pool initialization using pgxpool, with a startup ping.
package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDB opens a pool and waits for the database to answer, retrying a few
// times so the API can start alongside a fresh Postgres container.
func NewDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	const attempts = 5
	for i := 1; ; i++ {
		err = pool.Ping(ctx)
		if err == nil {
			return pool, nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(i) * time.Second):
		}
	}
	pool.Close()
	return nil, fmt.Errorf("db: ping: %w", err)
}
