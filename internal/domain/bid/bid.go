package bid

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the direction bid history is listed in
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// ParseOrder maps a query value to an Order, defaulting to ascending
func ParseOrder(s string) Order {
	if Order(s) == OrderDescending {
		return OrderDescending
	}
	return OrderAscending
}

// Bid is an immutable ledger entry for an accepted bid
type Bid struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	AuctionID uuid.UUID       `json:"auction_id" db:"auction_id"`
	BidderID  uuid.UUID       `json:"bidder_id" db:"bidder_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Sequence  int             `json:"sequence" db:"sequence"`
	PlacedAt  time.Time       `json:"placed_at" db:"placed_at"`
}

// New creates the ledger entry for the sequence-th accepted bid of an auction
func New(auctionID, bidderID uuid.UUID, amount decimal.Decimal, sequence int, placedAt time.Time) *Bid {
	return &Bid{
		ID:        uuid.New(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		Sequence:  sequence,
		PlacedAt:  placedAt,
	}
}
