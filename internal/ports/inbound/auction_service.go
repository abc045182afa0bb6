package inbound

import (
	"context"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . AuctionService,BidService

// AuctionService defines the interface for auction lifecycle operations
type AuctionService interface {
	// CreateAuction converts a product listing into an active auction
	CreateAuction(ctx context.Context, req CreateAuctionRequest) (*auction.Auction, error)

	// GetAuction retrieves an auction by ID, closing it first if it is due
	GetAuction(ctx context.Context, auctionID uuid.UUID) (*auction.Auction, error)

	// GetAuctionByProduct retrieves the latest auction of a product
	GetAuctionByProduct(ctx context.Context, productID uuid.UUID) (*auction.Auction, error)

	// ListActiveAuctions retrieves a page of active auctions
	ListActiveAuctions(ctx context.Context, req ListAuctionsRequest) (*AuctionPage, error)

	// CancelAuction withdraws an auction without bids on behalf of its seller
	CancelAuction(ctx context.Context, auctionID, requesterID uuid.UUID) (*auction.Auction, error)

	// CloseIfDue settles an auction whose end time has passed; no-op otherwise
	CloseIfDue(ctx context.Context, auctionID uuid.UUID) (*shared.AuctionEndResult, error)

	// VerifyLedger replays the bid ledger against the stored auction
	VerifyLedger(ctx context.Context, auctionID uuid.UUID) (*LedgerReport, error)

	// ReleaseIntegrityHold clears the hold once the ledger matches again
	ReleaseIntegrityHold(ctx context.Context, auctionID uuid.UUID) (*auction.Auction, error)
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid places a new bid on an auction
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*PlaceBidResult, error)

	// ListBids retrieves the bid history of an auction
	ListBids(ctx context.Context, auctionID uuid.UUID, order bid.Order) ([]*bid.Bid, error)
}

// request to create an auction
type CreateAuctionRequest struct {
	ProductID     uuid.UUID           `json:"product_id"`
	SellerID      uuid.UUID           `json:"seller_id"`
	StartingPrice decimal.Decimal     `json:"starting_price"`
	ReservePrice  decimal.NullDecimal `json:"reserve_price"`
	BuyNowPrice   decimal.NullDecimal `json:"buy_now_price"`
	Duration      time.Duration       `json:"duration"`
}

// request to list auctions
type ListAuctionsRequest struct {
	CategoryID string `json:"category_id,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// request to place a bid
type PlaceBidRequest struct {
	AuctionID uuid.UUID       `json:"auction_id"`
	BidderID  uuid.UUID       `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// PlaceBidResult is the auction snapshot after an accepted bid
type PlaceBidResult struct {
	Auction *auction.Auction `json:"auction"`
	Bid     *bid.Bid         `json:"bid"`
}

// AuctionPage is one page of listed auctions
type AuctionPage struct {
	Auctions []*auction.Auction `json:"auctions"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// LedgerReport is the result of a successful ledger replay
type LedgerReport struct {
	AuctionID       uuid.UUID           `json:"auction_id"`
	BidCount        int                 `json:"bid_count"`
	CurrentBid      decimal.NullDecimal `json:"current_bid"`
	HighestBidderID uuid.NullUUID       `json:"highest_bidder_id"`
	Consistent      bool                `json:"consistent"`
}
