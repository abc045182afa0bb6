package db

import (
	"troffee-auction-engine/internal/ports/outbound"
)

// RepositoryFactory creates and manages all database repositories
type RepositoryFactory struct {
	conn *Connection
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(conn *Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// GetAuctionRepository returns the auction repository
func (f *RepositoryFactory) GetAuctionRepository() outbound.AuctionRepository {
	return NewAuctionRepository(f.conn)
}

// GetBidRepository returns the bid repository
func (f *RepositoryFactory) GetBidRepository() outbound.BidRepository {
	return NewBidRepository(f.conn)
}

// GetProductCatalog returns the product catalog
func (f *RepositoryFactory) GetProductCatalog() outbound.ProductCatalog {
	return NewProductRepository(f.conn)
}

// GetTransactor returns the unit of work runner
func (f *RepositoryFactory) GetTransactor() outbound.Transactor {
	return NewTransactor(f.conn)
}

// Repositories groups every store port for dependency injection
type Repositories struct {
	AuctionRepository outbound.AuctionRepository
	BidRepository     outbound.BidRepository
	ProductCatalog    outbound.ProductCatalog
	Transactor        outbound.Transactor
}

// GetAllRepositories returns all repositories in a struct for easy dependency injection
func (f *RepositoryFactory) GetAllRepositories() Repositories {
	return Repositories{
		AuctionRepository: f.GetAuctionRepository(),
		BidRepository:     f.GetBidRepository(),
		ProductCatalog:    f.GetProductCatalog(),
		Transactor:        f.GetTransactor(),
	}
}
