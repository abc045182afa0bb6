package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
)

// ProductRepository implements the product catalog on the products table
type ProductRepository struct {
	conn *Connection
}

// NewProductRepository creates a new product repository
func NewProductRepository(conn *Connection) *ProductRepository {
	return &ProductRepository{conn: conn}
}

// Create registers a new listing
func (r *ProductRepository) Create(ctx context.Context, product *shared.Product) error {
	query := r.conn.db.Rebind(`
		INSERT INTO products (id, seller_id, category_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	now := time.Now().UTC()
	_, err := r.conn.db.ExecContext(ctx, query,
		product.ID,
		product.SellerID,
		product.CategoryID,
		product.Status,
		now,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", storageError(err))
	}

	return nil
}

// GetProduct retrieves a listing by ID
func (r *ProductRepository) GetProduct(ctx context.Context, id uuid.UUID) (*shared.Product, error) {
	query := r.conn.db.Rebind(`
		SELECT id, seller_id, category_id, status
		FROM products
		WHERE id = ?
	`)

	var product shared.Product
	err := r.conn.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", storageError(err))
	}

	return &product, nil
}

// SetProductStatus moves a listing to a new catalog state
func (r *ProductRepository) SetProductStatus(ctx context.Context, id uuid.UUID, status shared.ProductStatus) error {
	query := r.conn.db.Rebind(`
		UPDATE products
		SET status = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.conn.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", storageError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", storageError(err))
	}

	if rowsAffected == 0 {
		return shared.ErrProductNotFound
	}

	return nil
}
