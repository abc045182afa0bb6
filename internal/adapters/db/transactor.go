package db

import (
	"context"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Transactor runs units of work in a database transaction
type Transactor struct {
	conn *Connection
}

// NewTransactor creates a new transactor
func NewTransactor(conn *Connection) *Transactor {
	return &Transactor{conn: conn}
}

// WithinTransaction runs fn in one transaction, committing when it returns nil
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(tx outbound.Tx) error) error {
	return t.conn.ExecuteTransaction(ctx, func(tx *sqlx.Tx) error {
		return fn(&sqlTx{tx: tx, forUpdate: t.conn.forUpdate()})
	})
}

type sqlTx struct {
	tx        *sqlx.Tx
	forUpdate string
}

func (t *sqlTx) GetAuctionForUpdate(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ?` + t.forUpdate
	return getAuction(ctx, t.tx, query, id)
}

func (t *sqlTx) UpdateAuction(ctx context.Context, a *auction.Auction) error {
	return updateAuction(ctx, t.tx, a)
}

func (t *sqlTx) AppendBid(ctx context.Context, b *bid.Bid) error {
	return appendBid(ctx, t.tx, b)
}

func (t *sqlTx) ListBids(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	return listBids(ctx, t.tx, auctionID, bid.OrderAscending)
}
