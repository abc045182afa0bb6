package memory

import (
	"context"
	"fmt"
	"sync"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
)

// Catalog is an in-memory product catalog
type Catalog struct {
	mu       sync.RWMutex
	products map[uuid.UUID]shared.Product
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{products: make(map[uuid.UUID]shared.Product)}
}

// AddProduct registers or replaces a listing
func (c *Catalog) AddProduct(p shared.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// GetProduct retrieves a listing by ID
func (c *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (*shared.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, shared.ErrProductNotFound
	}
	return &p, nil
}

// SetProductStatus moves a listing to a new state
func (c *Catalog) SetProductStatus(ctx context.Context, id uuid.UUID, status shared.ProductStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("set status of product %s: %w", id, shared.ErrProductNotFound)
	}
	p.Status = status
	c.products[id] = p
	return nil
}
