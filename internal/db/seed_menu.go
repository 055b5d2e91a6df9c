package db

import (
	"context"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedMenu loads the sample dishes into an empty catalog and reports how many
// rows it wrote. A catalog with any row, active or not, is left alone.
func SeedMenu(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM menu_items)`).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, it := range menu.Samples {
		batch.Queue(
			`INSERT INTO menu_items (name, description, category, price, discounted_price, ingredients, allergens, tags, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.Name, it.Description, it.Category, it.Price, it.DiscountedPrice,
			it.Ingredients, it.Allergens, it.Tags, it.ImageURL,
		)
	}

	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}

	return len(menu.Samples), nil
}
