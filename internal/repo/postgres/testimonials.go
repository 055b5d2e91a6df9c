package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/hallulies/internal/domain/testimonial"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestimonialsRepo struct {
	store
}

func NewTestimonialsRepo(pool *pgxpool.Pool, prom *observability.Prom) *TestimonialsRepo {
	return &TestimonialsRepo{store{pool: pool, prom: prom}}
}

const testimonialColumns = `id, name, location, title, content, rating, status, created_at`

func scanTestimonial(row pgx.Row) (testimonial.Testimonial, error) {
	var t testimonial.Testimonial

	err := row.Scan(&t.ID, &t.Name, &t.Location, &t.Title, &t.Content, &t.Rating, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return testimonial.Testimonial{}, testimonial.ErrNotFound
		}
		return testimonial.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialsRepo) Create(ctx context.Context, req testimonial.CreateRequest) (t testimonial.Testimonial, err error) {
	err = r.observe(ctx, "testimonials.create", func() error {
		t, err = scanTestimonial(r.pool.QueryRow(ctx,
			`INSERT INTO testimonials (name, location, title, content, rating, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+testimonialColumns,
			req.Name, req.Location, req.Title, req.Content, req.Rating, testimonial.StatusPending))
		return err
	})
	return t, err
}

// ListByStatus returns testimonials newest first. An empty status returns
// every row, deleted ones included.
func (r *TestimonialsRepo) ListByStatus(ctx context.Context, status string) ([]testimonial.Testimonial, error) {
	q := `SELECT ` + testimonialColumns + ` FROM testimonials`
	var args []any
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	out := make([]testimonial.Testimonial, 0)

	err := r.observe(ctx, "testimonials.list", func() error {
		rows, err := r.pool.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTestimonial(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TestimonialsRepo) GetByID(ctx context.Context, id int64) (t testimonial.Testimonial, err error) {
	err = r.observe(ctx, "testimonials.get_by_id", func() error {
		t, err = scanTestimonial(r.pool.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
		return err
	})
	return t, err
}

func testimonialUpdate(id int64, p testimonial.Patch) (string, []any, error) {
	u := newUpdate("testimonials")

	setIf(u, "name", p.Name)
	setIf(u, "location", p.Location)
	setIf(u, "title", p.Title)
	setIf(u, "content", p.Content)
	setIf(u, "rating", p.Rating)
	setIf(u, "status", p.Status)

	if u.empty() {
		return "", nil, testimonial.ErrEmptyPatch
	}
	q, args := u.build("id", id, testimonialColumns)
	return q, args, nil
}

func (r *TestimonialsRepo) Update(ctx context.Context, id int64, p testimonial.Patch) (t testimonial.Testimonial, err error) {
	q, args, err := testimonialUpdate(id, p)
	if err != nil {
		return testimonial.Testimonial{}, err
	}

	err = r.observe(ctx, "testimonials.update", func() error {
		t, err = scanTestimonial(r.pool.QueryRow(ctx, q, args...))
		return err
	})
	return t, err
}

// SoftDelete hides the testimonial by moving it to the deleted status.
func (r *TestimonialsRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.observe(ctx, "testimonials.soft_delete", func() error {
		tag, err := r.pool.Exec(ctx, `UPDATE testimonials SET status = $2 WHERE id = $1`, id, testimonial.StatusDeleted)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return testimonial.ErrNotFound
		}
		return nil
	})
}
