package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkiryanov/billboard/internal/repository"
)

// PoolSessions opens one session per call on a dedicated pooled connection
type PoolSessions struct {
	pool *pgxpool.Pool
}

func NewPoolSessions(pool *pgxpool.Pool) *PoolSessions {
	return &PoolSessions{pool: pool}
}

// Open acquires a connection and returns storage bound to it
// The release func must be called exactly once; it returns the connection to the pool
// and pgxpool drops any transaction left open on it
func (s *PoolSessions) Open(ctx context.Context) (repository.Storage, func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("can't acquire db connection: %w", err)
	}

	return NewStorage(conn), conn.Release, nil
}

// TxSessions hands out sessions on top of an already opened transaction
// Every InTx call becomes a savepoint, so the outer transaction may be rolled back at the end
// Not safe for concurrent requests: use it with sequential test clients only
type TxSessions struct {
	Tx pgx.Tx
}

func (s TxSessions) Open(_ context.Context) (repository.Storage, func(), error) {
	return NewStorage(s.Tx), func() {}, nil
}
