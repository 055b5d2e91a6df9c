package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/hallulies/internal/domain/document"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentsRepo struct {
	store
}

func NewDocumentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *DocumentsRepo {
	return &DocumentsRepo{store{pool: pool, prom: prom}}
}

const documentColumns = `id::text, title, type, description, amount::float8, currency,
	filename, content_type, file_size, status, created_at`

func scanDocument(row pgx.Row) (document.Document, error) {
	var d document.Document

	err := row.Scan(&d.ID, &d.Title, &d.Type, &d.Description, &d.Amount, &d.Currency,
		&d.Filename, &d.ContentType, &d.FileSize, &d.Status, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrNotFound
		}
		return document.Document{}, err
	}
	return d, nil
}

// Create stores the metadata under a fresh id. req is expected to carry
// defaults already.
func (r *DocumentsRepo) Create(ctx context.Context, req document.CreateRequest) (d document.Document, err error) {
	id := uuid.NewString()

	err = r.observe(ctx, "documents.create", func() error {
		d, err = scanDocument(r.pool.QueryRow(ctx,
			`INSERT INTO documents (id, title, type, description, amount, currency,
				filename, content_type, file_size, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+documentColumns,
			id, req.Title, req.Type, req.Description, req.Amount, req.Currency,
			document.StoredFilename(id, req.Filename), req.ContentType, req.FileSize, req.Status))
		return err
	})
	return d, err
}

// List returns live documents newest first, narrowed to one type unless
// view is document.ViewAll.
func (r *DocumentsRepo) List(ctx context.Context, view string) ([]document.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE status <> $1`
	args := []any{document.StatusDeleted}
	if view != document.ViewAll {
		q += ` AND type = $2`
		args = append(args, view)
	}
	q += ` ORDER BY created_at DESC, id`

	out := make([]document.Document, 0)

	err := r.observe(ctx, "documents.list", func() error {
		rows, err := r.pool.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			d, err := scanDocument(rows)
			if err != nil {
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

// GetByID treats malformed ids and deleted documents as absent.
func (r *DocumentsRepo) GetByID(ctx context.Context, id string) (d document.Document, err error) {
	if _, perr := uuid.Parse(id); perr != nil {
		return document.Document{}, document.ErrNotFound
	}

	err = r.observe(ctx, "documents.get_by_id", func() error {
		d, err = scanDocument(r.pool.QueryRow(ctx,
			`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND status <> $2`,
			id, document.StatusDeleted))
		return err
	})
	return d, err
}

func (r *DocumentsRepo) SoftDelete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return document.ErrNotFound
	}

	return r.observe(ctx, "documents.soft_delete", func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE documents SET status = $2 WHERE id = $1 AND status <> $2`,
			id, document.StatusDeleted)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return document.ErrNotFound
		}
		return nil
	})
}
