package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_scheduling.go -package=mocks . ExpiryIndex

// ExpiryIndex tracks auction end times so closing does not depend on reads
type ExpiryIndex interface {
	// Schedule registers the end time of an auction
	Schedule(ctx context.Context, auctionID uuid.UUID, endTime time.Time) error

	// Due returns up to limit auctions whose end time is at or before now
	Due(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)

	// Remove forgets an auction once it is terminal
	Remove(ctx context.Context, auctionID uuid.UUID) error
}

// AuctionLocker serialises work on a single auction
type AuctionLocker interface {
	// Lock blocks until the auction is held or the wait times out with shared.ErrBusy.
	// The returned function releases the lock.
	Lock(ctx context.Context, auctionID uuid.UUID) (func(), error)
}
