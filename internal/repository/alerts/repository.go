// internal/repository/alerts/repository.go
package alerts

import (
	"context"
	"database/sql"

	"storefront-filters/internal/common/errors"
	"storefront-filters/internal/models"
)

// PendingAlert is a subscription whose product is back in stock and has
// not been notified yet.
type PendingAlert struct {
	models.StockAlert
	ProductName string
}

// Repository stores back-in-stock subscriptions in PostgreSQL.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a subscription and returns its ID.
func (r *Repository) Create(ctx context.Context, alert models.StockAlert) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO stock_alerts (product_id, email, phone, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NOW())
		RETURNING id`,
		alert.ProductID, alert.Email, alert.Phone).Scan(&id)
	if err != nil {
		return 0, wrap(ctx, "create_alert", err)
	}
	return id, nil
}

// Pending returns subscriptions whose product is visible and back in
// stock, oldest first.
func (r *Repository) Pending(ctx context.Context) ([]PendingAlert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sa.id, sa.product_id, COALESCE(sa.email, ''), COALESCE(sa.phone, ''), p.name
		FROM stock_alerts sa
		JOIN products p ON p.id = sa.product_id
		WHERE sa.notified_at IS NULL AND p.visible AND p.stock > 0
		ORDER BY sa.created_at`)
	if err != nil {
		return nil, wrap(ctx, "pending_alerts", err)
	}
	defer rows.Close()

	var pending []PendingAlert
	for rows.Next() {
		var a PendingAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Email, &a.Phone, &a.ProductName); err != nil {
			return nil, wrap(ctx, "pending_alerts", err)
		}
		pending = append(pending, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ctx, "pending_alerts", err)
	}
	return pending, nil
}

// MarkNotified records a successful dispatch so the sweeper never sends
// the same alert twice.
func (r *Repository) MarkNotified(ctx context.Context, alertID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stock_alerts SET notified_at = NOW() WHERE id = $1`, alertID)
	if err != nil {
		return wrap(ctx, "mark_notified", err)
	}
	return nil
}

func wrap(ctx context.Context, operation string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewQueryTimeoutError(operation)
	}
	return errors.NewQueryExecutionFailedError(operation, err)
}
