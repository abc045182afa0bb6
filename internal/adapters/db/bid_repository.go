package db

import (
	"context"
	"fmt"

	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const bidColumns = `id, auction_id, bidder_id, amount, sequence, placed_at`

// BidRepository implements the read side of the bid ledger
type BidRepository struct {
	conn *Connection
}

// NewBidRepository creates a new bid repository
func NewBidRepository(conn *Connection) *BidRepository {
	return &BidRepository{conn: conn}
}

// GetByAuctionID retrieves all bids for an auction in ledger order
func (r *BidRepository) GetByAuctionID(ctx context.Context, auctionID uuid.UUID, order bid.Order) ([]*bid.Bid, error) {
	return listBids(ctx, r.conn.db, auctionID, order)
}

// appendBid inserts a ledger entry. A duplicate sequence means two writers
// raced past the row lock, which the ledger never allows.
func appendBid(ctx context.Context, e sqlx.ExtContext, b *bid.Bid) error {
	query := e.Rebind(`
		INSERT INTO bids (` + bidColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := e.ExecContext(ctx, query,
		b.ID,
		b.AuctionID,
		b.BidderID,
		b.Amount,
		b.Sequence,
		b.PlacedAt.UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create bid %d: %w", b.Sequence, shared.ErrIntegrityViolation)
		}
		return fmt.Errorf("failed to create bid: %w", storageError(err))
	}

	return nil
}

func listBids(ctx context.Context, q sqlx.ExtContext, auctionID uuid.UUID, order bid.Order) ([]*bid.Bid, error) {
	direction := "ASC"
	if order == bid.OrderDescending {
		direction = "DESC"
	}

	query := q.Rebind(`
		SELECT ` + bidColumns + `
		FROM bids
		WHERE auction_id = ?
		ORDER BY sequence ` + direction)

	bids := []*bid.Bid{}
	if err := sqlx.SelectContext(ctx, q, &bids, query, auctionID); err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", storageError(err))
	}

	return bids, nil
}
