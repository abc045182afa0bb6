package scheduler

import (
	"context"
	"sync"
	"time"

	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SweepingExpiryIndex answers Due from a fast index and, every sweep
// interval, also from the auction store. Auctions the fast index never
// recorded or lost are still closed by the sweep.
type SweepingExpiryIndex struct {
	index     outbound.ExpiryIndex
	auctions  outbound.AuctionRepository
	every     time.Duration
	mu        sync.Mutex
	lastSweep time.Time
	logger    zerolog.Logger
}

type SweepingExpiryIndexParams struct {
	Index         outbound.ExpiryIndex
	Auctions      outbound.AuctionRepository
	SweepInterval time.Duration
	Logger        zerolog.Logger
}

func NewSweepingExpiryIndex(params SweepingExpiryIndexParams) *SweepingExpiryIndex {
	return &SweepingExpiryIndex{
		index:    params.Index,
		auctions: params.Auctions,
		every:    params.SweepInterval,
		logger:   params.Logger.With().Str("component", "sweeping_expiry_index").Logger(),
	}
}

func (i *SweepingExpiryIndex) Schedule(ctx context.Context, auctionID uuid.UUID, endTime time.Time) error {
	return i.index.Schedule(ctx, auctionID, endTime)
}

func (i *SweepingExpiryIndex) Remove(ctx context.Context, auctionID uuid.UUID) error {
	return i.index.Remove(ctx, auctionID)
}

// Due merges the fast index with a store sweep. A failing fast index forces
// the sweep so expiry keeps running while it is down.
func (i *SweepingExpiryIndex) Due(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	due, indexErr := i.index.Due(ctx, now, limit)
	if indexErr != nil {
		i.logger.Warn().Err(indexErr).Msg("Expiry index unavailable, sweeping the store")
		due = nil
	}

	if indexErr == nil && !i.sweepDue(now) {
		return due, nil
	}

	swept, err := i.auctions.ListDue(ctx, now, limit)
	if err != nil {
		if indexErr != nil {
			return nil, err
		}
		i.logger.Error().Err(err).Msg("Failed to sweep the store for due auctions")
		return due, nil
	}

	return mergeIDs(due, swept), nil
}

func (i *SweepingExpiryIndex) sweepDue(now time.Time) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.lastSweep.IsZero() && now.Sub(i.lastSweep) < i.every {
		return false
	}
	i.lastSweep = now
	return true
}

func mergeIDs(first, second []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(first)+len(second))
	merged := make([]uuid.UUID, 0, len(first)+len(second))
	for _, ids := range [][]uuid.UUID{first, second} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}
