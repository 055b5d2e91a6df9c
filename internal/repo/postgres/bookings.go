package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/hallulies/internal/domain/booking"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingsRepo struct {
	store
}

func NewBookingsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BookingsRepo {
	return &BookingsRepo{store{pool: pool, prom: prom}}
}

const bookingColumns = `id, guest_name, email, phone,
	to_char(checkin_date, 'YYYY-MM-DD'), to_char(checkout_date, 'YYYY-MM-DD'),
	room_type, adults, children, special_requests, status,
	total_amount::float8, created_at`

func scanBooking(row pgx.Row) (booking.Booking, error) {
	var b booking.Booking

	err := row.Scan(
		&b.ID, &b.GuestName, &b.Email, &b.Phone,
		&b.CheckinDate, &b.CheckoutDate,
		&b.RoomType, &b.Adults, &b.Children, &b.SpecialRequests, &b.Status,
		&b.TotalAmount, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, booking.ErrNotFound
		}
		return booking.Booking{}, err
	}
	return b, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(booking.DateLayout, s)
}

// Create stores a new pending booking. Adults and children fall back to
// 1 and 0 when the request leaves them out.
func (r *BookingsRepo) Create(ctx context.Context, req booking.CreateRequest) (b booking.Booking, err error) {
	stay, err := booking.ParseStay(req.CheckinDate, req.CheckoutDate)
	if err != nil {
		return booking.Booking{}, err
	}
	req = req.Normalize()

	err = r.observe(ctx, "bookings.create", func() error {
		b, err = scanBooking(r.pool.QueryRow(ctx,
			`INSERT INTO bookings (guest_name, email, phone, checkin_date, checkout_date,
				room_type, adults, children, special_requests, status, total_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+bookingColumns,
			req.GuestName, req.Email, req.Phone, stay.Checkin, stay.Checkout,
			req.RoomType, *req.Adults, *req.Children, req.SpecialRequests,
			booking.StatusPending, req.TotalAmount,
		))
		return err
	})
	return b, err
}

func (r *BookingsRepo) List(ctx context.Context) ([]booking.Booking, error) {
	out := make([]booking.Booking, 0)

	err := r.observe(ctx, "bookings.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			b, err := scanBooking(rows)
			if err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id int64) (b booking.Booking, err error) {
	err = r.observe(ctx, "bookings.get_by_id", func() error {
		b, err = scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
		return err
	})
	return b, err
}

func bookingUpdate(id int64, p booking.Patch) (string, []any, error) {
	u := newUpdate("bookings")

	setIf(u, "guest_name", p.GuestName)
	setIf(u, "email", p.Email)
	setIf(u, "phone", p.Phone)
	if err := setIfMapped(u, "checkin_date", p.CheckinDate, parseDate); err != nil {
		return "", nil, err
	}
	if err := setIfMapped(u, "checkout_date", p.CheckoutDate, parseDate); err != nil {
		return "", nil, err
	}
	setIf(u, "room_type", p.RoomType)
	setIf(u, "adults", p.Adults)
	setIf(u, "children", p.Children)
	setIf(u, "special_requests", p.SpecialRequests)
	setIf(u, "status", p.Status)
	setIf(u, "total_amount", p.TotalAmount)

	if u.empty() {
		return "", nil, booking.ErrEmptyPatch
	}

	q, args := u.build("id", id, bookingColumns)
	return q, args, nil
}

// Update writes only the fields present in p.
func (r *BookingsRepo) Update(ctx context.Context, id int64, p booking.Patch) (b booking.Booking, err error) {
	q, args, err := bookingUpdate(id, p)
	if err != nil {
		return booking.Booking{}, err
	}

	err = r.observe(ctx, "bookings.update", func() error {
		b, err = scanBooking(r.pool.QueryRow(ctx, q, args...))
		return err
	})
	return b, err
}

// Cancel is the soft delete. Cancelling twice is not an error.
func (r *BookingsRepo) Cancel(ctx context.Context, id int64) error {
	return r.observe(ctx, "bookings.cancel", func() error {
		tag, err := r.pool.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, booking.StatusCancelled)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return booking.ErrNotFound
		}
		return nil
	})
}
