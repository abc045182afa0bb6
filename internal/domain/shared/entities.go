package shared

import (
	"github.com/google/uuid"
)

// ProductStatus is the catalog-side state of a listing
type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "available"
	ProductStatusSold      ProductStatus = "sold"
	ProductStatusWithdrawn ProductStatus = "withdrawn"
)

// Product is the slice of a catalog listing the engine needs
type Product struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	SellerID   uuid.UUID     `json:"seller_id" db:"seller_id"`
	CategoryID string        `json:"category_id" db:"category_id"`
	Status     ProductStatus `json:"status" db:"status"`
}

// Sellable returns true if the product can be put up for auction
func (p *Product) Sellable() bool {
	return p.Status == ProductStatusAvailable
}
