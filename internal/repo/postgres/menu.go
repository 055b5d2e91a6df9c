package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuRepo struct {
	store
}

func NewMenuRepo(pool *pgxpool.Pool, prom *observability.Prom) *MenuRepo {
	return &MenuRepo{store{pool: pool, prom: prom}}
}

const menuColumns = `id, name, description, category, price::float8, discounted_price::float8,
	ingredients, allergens, tags, image_url, is_active, created_at`

func scanMenuItem(row pgx.Row) (menu.Item, error) {
	var it menu.Item

	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Category, &it.Price, &it.DiscountedPrice,
		&it.Ingredients, &it.Allergens, &it.Tags, &it.ImageURL, &it.IsActive, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return menu.Item{}, menu.ErrNotFound
		}
		return menu.Item{}, err
	}
	return it, nil
}

func (r *MenuRepo) queryItems(ctx context.Context, op, q string, args ...any) ([]menu.Item, error) {
	out := make([]menu.Item, 0)

	err := r.observe(ctx, op, func() error {
		rows, err := r.pool.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			it, err := scanMenuItem(rows)
			if err != nil {
				return err
			}
			out = append(out, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive is the public menu, grouped by category then name.
func (r *MenuRepo) ListActive(ctx context.Context) ([]menu.Item, error) {
	return r.queryItems(ctx, "menu.list_active",
		`SELECT `+menuColumns+` FROM menu_items WHERE is_active ORDER BY category, name, id`)
}

func (r *MenuRepo) ListActiveByCategory(ctx context.Context, category string) ([]menu.Item, error) {
	return r.queryItems(ctx, "menu.list_by_category",
		`SELECT `+menuColumns+` FROM menu_items WHERE is_active AND category = $1 ORDER BY name, id`, category)
}

func (r *MenuRepo) Create(ctx context.Context, req menu.CreateRequest) (it menu.Item, err error) {
	err = r.observe(ctx, "menu.create", func() error {
		it, err = scanMenuItem(r.pool.QueryRow(ctx,
			`INSERT INTO menu_items (name, description, category, price, discounted_price,
				ingredients, allergens, tags, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING `+menuColumns,
			req.Name, req.Description, req.Category, req.Price, req.DiscountedPrice,
			req.Ingredients, req.Allergens, req.Tags, req.ImageURL))
		return err
	})
	return it, err
}

func (r *MenuRepo) GetByID(ctx context.Context, id int64) (it menu.Item, err error) {
	err = r.observe(ctx, "menu.get_by_id", func() error {
		it, err = scanMenuItem(r.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
		return err
	})
	return it, err
}

func menuUpdate(id int64, p menu.Patch) (string, []any, error) {
	u := newUpdate("menu_items")

	setIf(u, "name", p.Name)
	setIf(u, "description", p.Description)
	setIf(u, "category", p.Category)
	setIf(u, "price", p.Price)
	setIf(u, "discounted_price", p.DiscountedPrice)
	setIf(u, "ingredients", p.Ingredients)
	setIf(u, "allergens", p.Allergens)
	setIf(u, "tags", p.Tags)
	setIf(u, "image_url", p.ImageURL)
	setIf(u, "is_active", p.IsActive)

	if u.empty() {
		return "", nil, menu.ErrEmptyPatch
	}
	q, args := u.build("id", id, menuColumns)
	return q, args, nil
}

func (r *MenuRepo) Update(ctx context.Context, id int64, p menu.Patch) (it menu.Item, err error) {
	q, args, err := menuUpdate(id, p)
	if err != nil {
		return menu.Item{}, err
	}

	err = r.observe(ctx, "menu.update", func() error {
		it, err = scanMenuItem(r.pool.QueryRow(ctx, q, args...))
		return err
	})
	return it, err
}

// Deactivate is the soft delete; the dish stays for order history.
func (r *MenuRepo) Deactivate(ctx context.Context, id int64) error {
	return r.observe(ctx, "menu.deactivate", func() error {
		tag, err := r.pool.Exec(ctx, `UPDATE menu_items SET is_active = FALSE WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return menu.ErrNotFound
		}
		return nil
	})
}
