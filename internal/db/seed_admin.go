package db

import (
	"context"
	"errors"

	"github.com/geocoder89/hallulies/internal/auth"
	"github.com/geocoder89/hallulies/internal/config"
	"github.com/geocoder89/hallulies/internal/domain/user"
	"github.com/geocoder89/hallulies/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser creates the configured admin account once. Without an
// ADMIN_PASSWORD there is nothing to seed.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) (bool, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	email := user.NormalizeEmail(cfg.AdminEmail)

	var id int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE lower(email) = $1`, email).Scan(&id)

	if err == nil {
		return false, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return false, err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`,
		cfg.AdminUsername, email, hash, auth.RoleAdmin,
	)

	if err != nil {
		return false, err
	}

	return true, nil
}
