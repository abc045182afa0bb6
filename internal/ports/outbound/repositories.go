package outbound

import (
	"context"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks . Transactor,Tx,ProductCatalog

// AuctionRepository defines the read and create operations on auctions
type AuctionRepository interface {
	// Create creates a new auction
	Create(ctx context.Context, auction *auction.Auction) error

	// GetByID retrieves an auction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error)

	// GetByProductID retrieves the most recently created auction of a product
	GetByProductID(ctx context.Context, productID uuid.UUID) (*auction.Auction, error)

	// GetActiveByProductID retrieves the active auction of a product, if any
	GetActiveByProductID(ctx context.Context, productID uuid.UUID) (*auction.Auction, error)

	// ListActive retrieves active, not yet due auctions and the total count
	ListActive(ctx context.Context, filter auction.ListFilter) ([]*auction.Auction, int, error)

	// ListDue retrieves IDs of active auctions whose end time has passed
	ListDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// BidRepository defines the read side of the bid ledger
type BidRepository interface {
	// GetByAuctionID retrieves all bids for an auction in ledger order
	GetByAuctionID(ctx context.Context, auctionID uuid.UUID, order bid.Order) ([]*bid.Bid, error)
}

// Transactor runs a unit of work in which the auction row and the ledger
// are written atomically. Returning an error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the view of the store inside a unit of work
type Tx interface {
	// GetAuctionForUpdate reads the auction and holds its row lock until the end of the unit
	GetAuctionForUpdate(ctx context.Context, id uuid.UUID) (*auction.Auction, error)

	// UpdateAuction persists the mutable fields of an auction
	UpdateAuction(ctx context.Context, auction *auction.Auction) error

	// AppendBid appends an accepted bid to the ledger
	AppendBid(ctx context.Context, bid *bid.Bid) error

	// ListBids reads the ledger of an auction in ascending order
	ListBids(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error)
}

// ProductCatalog is the product listing collaborator
type ProductCatalog interface {
	// GetProduct retrieves the owner and state of a listing
	GetProduct(ctx context.Context, id uuid.UUID) (*shared.Product, error)

	// SetProductStatus moves a listing to a new catalog state
	SetProductStatus(ctx context.Context, id uuid.UUID, status shared.ProductStatus) error
}
