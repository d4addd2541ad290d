// internal/repository/catalog/repository.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"storefront-filters/internal/common/errors"
	"storefront-filters/internal/models"
)

// Repository reads catalog records from PostgreSQL. All reads are
// request-scoped and read-only; connectivity and query errors surface as
// retryable StandardErrors and propagate unchanged to the caller.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CategoryByID loads one category with its raw filter configuration.
func (r *Repository) CategoryByID(ctx context.Context, categoryID int64) (*models.Category, error) {
	var cat models.Category
	var filterConfig []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, filter_config
		FROM categories
		WHERE id = $1`, categoryID).Scan(&cat.ID, &cat.Name, &filterConfig)
	if err == sql.ErrNoRows {
		return nil, errors.NewCategoryNotFoundError(categoryID)
	}
	if err != nil {
		return nil, wrap(ctx, "category_by_id", err)
	}

	cat.FilterConfig = json.RawMessage(filterConfig)
	return &cat, nil
}

// ProductByID loads one visible product.
func (r *Repository) ProductByID(ctx context.Context, productID int64) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, category_id, name, price, stock, visible
		FROM products
		WHERE id = $1 AND visible`, productID).
		Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.Stock, &p.Visible)
	if err == sql.ErrNoRows {
		return nil, errors.NewProductNotFoundError(productID)
	}
	if err != nil {
		return nil, wrap(ctx, "product_by_id", err)
	}
	return &p, nil
}

// UniverseIDs returns every visible product ID in a category: the full
// candidate set before any facet filtering.
func (r *Repository) UniverseIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id
		FROM products
		WHERE category_id = $1 AND visible
		ORDER BY id`, categoryID)
	if err != nil {
		return nil, wrap(ctx, "universe_ids", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrap(ctx, "universe_ids", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ctx, "universe_ids", err)
	}
	return ids, nil
}

// ProductsByIDs loads products for an ID set, returned in the order the
// IDs were given.
func (r *Repository) ProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_id, name, price, stock, visible
		FROM products
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, wrap(ctx, "products_by_ids", err)
	}
	defer rows.Close()

	byID := make(map[int64]models.Product, len(ids))
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.Stock, &p.Visible); err != nil {
			return nil, wrap(ctx, "products_by_ids", err)
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ctx, "products_by_ids", err)
	}

	products := make([]models.Product, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// ParameterGroups loads the referenced groups keyed by ID. Unknown IDs are
// simply absent from the result.
func (r *Repository) ParameterGroups(ctx context.Context, ids []int64) (map[int64]models.ParameterGroup, error) {
	if len(ids) == 0 {
		return map[int64]models.ParameterGroup{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, kind, COALESCE(unit, '')
		FROM parameter_groups
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, wrap(ctx, "parameter_groups", err)
	}
	defer rows.Close()

	groups := make(map[int64]models.ParameterGroup)
	for rows.Next() {
		var g models.ParameterGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Kind, &g.Unit); err != nil {
			return nil, wrap(ctx, "parameter_groups", err)
		}
		groups[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ctx, "parameter_groups", err)
	}
	return groups, nil
}

// ParameterValues loads the value each product carries for the given
// groups, with enumerated-item labels resolved. At most one value per
// (product, group) pair is read.
func (r *Repository) ParameterValues(ctx context.Context, productIDs, groupIDs []int64) ([]models.ParameterValue, error) {
	if len(productIDs) == 0 || len(groupIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pp.product_id, pp.group_id, pp.item_id, COALESCE(pi.label, ''),
		       pp.number_value, COALESCE(pp.text_value, '')
		FROM product_parameters pp
		LEFT JOIN parameter_items pi ON pi.id = pp.item_id
		WHERE pp.product_id = ANY($1) AND pp.group_id = ANY($2)`,
		pq.Array(productIDs), pq.Array(groupIDs))
	if err != nil {
		return nil, wrap(ctx, "parameter_values", err)
	}
	defer rows.Close()

	var values []models.ParameterValue
	for rows.Next() {
		var v models.ParameterValue
		var itemID sql.NullInt64
		var number sql.NullFloat64
		if err := rows.Scan(&v.ProductID, &v.GroupID, &itemID, &v.ItemLabel, &number, &v.Text); err != nil {
			return nil, wrap(ctx, "parameter_values", err)
		}
		if itemID.Valid {
			v.ItemID = &itemID.Int64
		}
		if number.Valid {
			v.Number = &number.Float64
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ctx, "parameter_values", err)
	}
	return values, nil
}

func wrap(ctx context.Context, operation string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewQueryTimeoutError(operation)
	}
	return errors.NewQueryExecutionFailedError(operation, err)
}
