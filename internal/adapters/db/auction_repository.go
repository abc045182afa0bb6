package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const auctionColumns = `id, product_id, seller_id, category_id, starting_price, reserve_price, buy_now_price,
	current_bid, highest_bidder_id, bid_count, start_time, end_time, status, integrity_hold, created_at, updated_at`

// AuctionRepository implements the auction repository interface
type AuctionRepository struct {
	conn *Connection
}

// NewAuctionRepository creates a new auction repository
func NewAuctionRepository(conn *Connection) *AuctionRepository {
	return &AuctionRepository{conn: conn}
}

// Create creates a new auction
func (r *AuctionRepository) Create(ctx context.Context, a *auction.Auction) error {
	query := r.conn.db.Rebind(`
		INSERT INTO auctions (` + auctionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.conn.db.ExecContext(ctx, query,
		a.ID,
		a.ProductID,
		a.SellerID,
		a.CategoryID,
		a.StartingPrice,
		a.ReservePrice,
		a.BuyNowPrice,
		a.CurrentBid,
		a.HighestBidderID,
		a.BidCount,
		a.StartTime.UTC(),
		a.EndTime.UTC(),
		a.Status,
		a.IntegrityHold,
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrActiveAuctionExists
		}
		return fmt.Errorf("failed to create auction: %w", storageError(err))
	}

	return nil
}

// GetByID retrieves an auction by ID
func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ?`
	return getAuction(ctx, r.conn.db, query, id)
}

// GetByProductID retrieves the most recently created auction of a product
func (r *AuctionRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*auction.Auction, error) {
	query := `
		SELECT ` + auctionColumns + `
		FROM auctions
		WHERE product_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	return getAuction(ctx, r.conn.db, query, productID)
}

// GetActiveByProductID retrieves the active auction of a product
func (r *AuctionRepository) GetActiveByProductID(ctx context.Context, productID uuid.UUID) (*auction.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE product_id = ? AND status = 'active'`
	return getAuction(ctx, r.conn.db, query, productID)
}

// ListActive retrieves active auctions that have not reached their end time
func (r *AuctionRepository) ListActive(ctx context.Context, filter auction.ListFilter) ([]*auction.Auction, int, error) {
	whereClause := ` WHERE status = 'active' AND end_time > ?`
	args := []interface{}{filter.Now.UTC()}

	if filter.CategoryID != "" {
		whereClause += ` AND category_id = ?`
		args = append(args, filter.CategoryID)
	}

	var total int
	countQuery := r.conn.db.Rebind(`SELECT COUNT(*) FROM auctions` + whereClause)
	if err := r.conn.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count auctions: %w", storageError(err))
	}

	// Add pagination
	query := r.conn.db.Rebind(`SELECT ` + auctionColumns + ` FROM auctions` + whereClause +
		` ORDER BY end_time ASC, id ASC LIMIT ? OFFSET ?`)
	args = append(args, filter.PageSize, filter.Offset())

	auctions := []*auction.Auction{}
	if err := r.conn.db.SelectContext(ctx, &auctions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list auctions: %w", storageError(err))
	}

	return auctions, total, nil
}

// ListDue retrieves IDs of active auctions whose end time has passed.
// Auctions on integrity hold wait for reconciliation and are skipped.
func (r *AuctionRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	query := r.conn.db.Rebind(`
		SELECT id FROM auctions
		WHERE status = 'active' AND NOT integrity_hold AND end_time <= ?
		ORDER BY end_time ASC
		LIMIT ?
	`)

	var ids []uuid.UUID
	if err := r.conn.db.SelectContext(ctx, &ids, query, now.UTC(), limit); err != nil {
		return nil, fmt.Errorf("failed to list due auctions: %w", storageError(err))
	}

	return ids, nil
}

// getAuction runs a single-row auction query on a connection or transaction
func getAuction(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (*auction.Auction, error) {
	var a auction.Auction
	err := sqlx.GetContext(ctx, q, &a, q.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", storageError(err))
	}

	return &a, nil
}

// updateAuction persists the mutable state of an auction
func updateAuction(ctx context.Context, e sqlx.ExtContext, a *auction.Auction) error {
	query := e.Rebind(`
		UPDATE auctions
		SET current_bid = ?, highest_bidder_id = ?, bid_count = ?, end_time = ?,
			status = ?, integrity_hold = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := e.ExecContext(ctx, query,
		a.CurrentBid,
		a.HighestBidderID,
		a.BidCount,
		a.EndTime.UTC(),
		a.Status,
		a.IntegrityHold,
		a.UpdatedAt.UTC(),
		a.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update auction: %w", storageError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", storageError(err))
	}

	if rowsAffected == 0 {
		return shared.ErrAuctionNotFound
	}

	return nil
}
