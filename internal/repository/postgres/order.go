package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/catalog-admin/pkg/database"
)

// OrderRepository implements the order existence probe using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// ExistsByProductID reports whether any order references the given product.
func (r *OrderRepository) ExistsByProductID(ctx context.Context, productID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE product_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check product orders: %w", err)
	}

	return exists, nil
}
