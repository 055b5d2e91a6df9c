package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// store is embedded by every repo for the pool and DB metrics.
type store struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func (s store) observe(ctx context.Context, op string, fn func() error) error {
	if s.prom != nil {
		return s.prom.ObserveDB(ctx, op, fn)
	}
	return fn()
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
