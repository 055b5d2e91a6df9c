package postgres

import (
	"context"

	"github.com/geocoder89/hallulies/internal/domain/analytics"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepo struct {
	store
}

func NewAnalyticsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AnalyticsRepo {
	return &AnalyticsRepo{store{pool: pool, prom: prom}}
}

// Dashboard gathers every figure in one round trip. Revenue counts
// total_amount of bookings that were not cancelled.
func (r *AnalyticsRepo) Dashboard(ctx context.Context) (d analytics.Dashboard, err error) {
	err = r.observe(ctx, "analytics.dashboard", func() error {
		return r.pool.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM bookings),
				(SELECT COUNT(*) FROM bookings
					WHERE created_at >= NOW() - make_interval(days => $1)),
				(SELECT COUNT(*) FROM testimonials WHERE status = 'approved'),
				(SELECT COALESCE(AVG(rating), 0)::float8 FROM testimonials WHERE status = 'approved'),
				(SELECT COALESCE(SUM(total_amount), 0)::float8 FROM bookings
					WHERE status <> 'cancelled' AND created_at >= NOW() - make_interval(days => $1))
		`, analytics.WindowDays).Scan(
			&d.TotalBookings,
			&d.RecentBookings,
			&d.ApprovedTestimonials,
			&d.AverageRating,
			&d.Revenue30Days,
		)
	})
	if err != nil {
		return analytics.Dashboard{}, err
	}

	d.AverageRating = analytics.RoundRating(d.AverageRating)
	return d, nil
}
