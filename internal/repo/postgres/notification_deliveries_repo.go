package postgres

import (
	"context"

	"github.com/geocoder89/hallulies/internal/domain/delivery"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationDeliveriesRepo struct {
	store
}

func NewNotificationDeliveriesRepo(pool *pgxpool.Pool, prom *observability.Prom) *NotificationDeliveriesRepo {
	return &NotificationDeliveriesRepo{store{pool: pool, prom: prom}}
}

// Record appends one attempt. Rows are never updated.
func (r *NotificationDeliveriesRepo) Record(ctx context.Context, d delivery.Delivery) error {
	return r.observe(ctx, "notification_deliveries.record", func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO notification_deliveries (kind, recipient, subject, status, last_error)
			VALUES ($1, $2, $3, $4, $5)
		`, d.Kind, d.Recipient, d.Subject, d.Status, d.LastError)
		return err
	})
}

// Recent lists the latest attempts of one kind, newest first.
func (r *NotificationDeliveriesRepo) Recent(ctx context.Context, kind string, limit int) ([]delivery.Delivery, error) {
	out := make([]delivery.Delivery, 0, limit)

	err := r.observe(ctx, "notification_deliveries.recent", func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT id, kind, recipient, subject, status, last_error, created_at
			FROM notification_deliveries
			WHERE kind = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, kind, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var d delivery.Delivery
			if err := rows.Scan(&d.ID, &d.Kind, &d.Recipient, &d.Subject, &d.Status, &d.LastError, &d.CreatedAt); err != nil {
				return err
			}
			out = append(out, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
