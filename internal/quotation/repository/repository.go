// Package repository persists issued quotations. The engine itself is
// storage-free; persistence is a post-calculation side effect that makes a
// stored result reproducible byte for byte.
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
)

// Repository provides access to quotation storage.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotation repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create stores a quotation and its line items in one transaction.
func (r *Repository) Create(ctx context.Context, q *domain.Quotation) error {
	requestJSON, err := json.Marshal(q.Request)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "marshal quotation request", err)
	}
	resultJSON, err := json.Marshal(q.Result)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "marshal quotation result", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO quotations (
			id, customer_name, customer_email, customer_phone,
			product_key, status, catalog_version, currency,
			subtotal_cents, discount_cents, tax_cents, total_cents,
			request, result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		q.ID, q.Customer.Name, q.Customer.Email, q.Customer.Phone,
		q.Result.ProductKey, string(q.Result.Status), q.Result.CatalogVersion, q.Result.Currency,
		int64(q.Result.Totals.Subtotal), int64(q.Result.Totals.Discount),
		int64(q.Result.Totals.Tax), int64(q.Result.Totals.Total),
		requestJSON, resultJSON, q.CreatedAt,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "insert quotation", err)
	}

	for position, item := range q.Result.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO quotation_line_items (
				quotation_id, position, description, sku, kind,
				quantity, unit_price_cents, pricing_unit, extended_price_cents
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			q.ID, position, item.Description, item.SKU, item.Kind,
			item.Quantity, int64(item.UnitPrice), string(item.Unit), int64(item.ExtendedPrice),
		)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "insert quotation line item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Wrap(apperr.KindInternal, "commit quotation", err)
	}
	return nil
}

// GetByID returns a stored quotation. The result is rebuilt from the stored
// JSON document, so a retrieval reproduces the issued result exactly.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var (
		q           domain.Quotation
		requestJSON []byte
		resultJSON  []byte
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, request, result, created_at
		FROM quotations
		WHERE id = $1`, id,
	).Scan(&q.ID, &q.Customer.Name, &q.Customer.Email, &q.Customer.Phone,
		&requestJSON, &resultJSON, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quotation not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "query quotation", err)
	}

	if err := json.Unmarshal(requestJSON, &q.Request); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "decode quotation request", err)
	}
	if err := json.Unmarshal(resultJSON, &q.Result); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "decode quotation result", err)
	}

	return &q, nil
}
