package scheduler

import (
	"context"
	"time"

	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
)

// StoreExpiryIndex sweeps the auction store for due auctions. The store is
// the source of truth, so Schedule and Remove have nothing to record.
type StoreExpiryIndex struct {
	auctions outbound.AuctionRepository
}

func NewStoreExpiryIndex(auctions outbound.AuctionRepository) *StoreExpiryIndex {
	return &StoreExpiryIndex{auctions: auctions}
}

func (i *StoreExpiryIndex) Schedule(ctx context.Context, auctionID uuid.UUID, endTime time.Time) error {
	return nil
}

func (i *StoreExpiryIndex) Due(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	return i.auctions.ListDue(ctx, now, limit)
}

func (i *StoreExpiryIndex) Remove(ctx context.Context, auctionID uuid.UUID) error {
	return nil
}
