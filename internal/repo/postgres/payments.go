package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/hallulies/internal/domain/payment"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentsRepo struct {
	store
}

func NewPaymentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PaymentsRepo {
	return &PaymentsRepo{store{pool: pool, prom: prom}}
}

func (r *PaymentsRepo) Create(ctx context.Context, p payment.Payment) error {
	return r.observe(ctx, "payments.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO payments (id, method, amount, currency, status,
				customer_name, customer_email, customer_phone,
				provider_ref, network, bank, account_last4, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			p.ID, p.Method, p.Amount, p.Currency, p.Status,
			p.Customer.Name, p.Customer.Email, p.Customer.Phone,
			p.ProviderRef, p.Network, p.Bank, p.AccountLast4, p.CreatedAt)
		return err
	})
}

func (r *PaymentsRepo) GetByID(ctx context.Context, id string) (p payment.Payment, err error) {
	err = r.observe(ctx, "payments.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id::text, method, amount::float8, currency, status,
				customer_name, customer_email, customer_phone,
				provider_ref, network, bank, account_last4, created_at
			FROM payments WHERE id = $1`, id,
		).Scan(
			&p.ID, &p.Method, &p.Amount, &p.Currency, &p.Status,
			&p.Customer.Name, &p.Customer.Email, &p.Customer.Phone,
			&p.ProviderRef, &p.Network, &p.Bank, &p.AccountLast4, &p.CreatedAt,
		)
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return payment.Payment{}, payment.ErrNotFound
	}
	return p, err
}
