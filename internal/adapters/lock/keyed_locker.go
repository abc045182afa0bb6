package lock

import (
	"context"
	"sync"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// KeyedLocker hands out one mutex per auction ID. Entries are reference
// counted and dropped once nobody holds or waits for them.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	timeout time.Duration
	logger  zerolog.Logger
}

type entry struct {
	sem  chan struct{}
	refs int
}

type KeyedLockerParams struct {
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewKeyedLocker creates a locker whose waits fail with shared.ErrBusy after Timeout
func NewKeyedLocker(params KeyedLockerParams) *KeyedLocker {
	return &KeyedLocker{
		entries: make(map[uuid.UUID]*entry),
		timeout: params.Timeout,
		logger:  params.Logger.With().Str("component", "auction_locker").Logger(),
	}
}

// Lock acquires the auction's mutex
func (l *KeyedLocker) Lock(ctx context.Context, auctionID uuid.UUID) (func(), error) {
	e := l.acquireEntry(auctionID)

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.releaseEntry(auctionID, e)
			})
		}, nil
	case <-timer.C:
		l.releaseEntry(auctionID, e)
		l.logger.Warn().
			Str("auction_id", auctionID.String()).
			Dur("timeout", l.timeout).
			Msg("Timed out waiting for auction lock")
		return nil, shared.ErrBusy
	case <-ctx.Done():
		l.releaseEntry(auctionID, e)
		return nil, ctx.Err()
	}
}

// Len returns the number of auctions currently locked or waited on
func (l *KeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *KeyedLocker) acquireEntry(auctionID uuid.UUID) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[auctionID]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[auctionID] = e
	}
	e.refs++
	return e
}

func (l *KeyedLocker) releaseEntry(auctionID uuid.UUID, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, auctionID)
	}
}
