package app

import (
	"context"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	dispatchAttempts   = 3
	dispatchJobTimeout = 5 * time.Second
	dispatchQueueSize  = 1024
)

// EventDispatcher runs post-commit side effects (notifications and catalog
// updates) on a worker pool. Jobs are retried with exponential backoff and
// may be delivered more than once.
type EventDispatcher struct {
	pool     *pond.WorkerPool
	notifier outbound.Notifier
	catalog  outbound.ProductCatalog
	backoff  time.Duration
	logger   zerolog.Logger
}
type EventDispatcherParams struct {
	Notifier outbound.Notifier
	Catalog  outbound.ProductCatalog
	Workers  int
	// Backoff is the delay before the first retry; it doubles per attempt
	Backoff time.Duration
	Logger  zerolog.Logger
}

func NewEventDispatcher(params EventDispatcherParams) *EventDispatcher {
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	backoff := params.Backoff
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}

	return &EventDispatcher{
		pool:     pond.New(workers, dispatchQueueSize, pond.Strategy(pond.Balanced())),
		notifier: params.Notifier,
		catalog:  params.Catalog,
		backoff:  backoff,
		logger:   params.Logger.With().Str("component", "event_dispatcher").Logger(),
	}
}

// BidAccepted queues the live update, the outbid notice and, on buy-now, the closing effects
func (d *EventDispatcher) BidAccepted(a *auction.Auction, b *bid.Bid, previousBidderID uuid.NullUUID) {
	amount := b.Amount.StringFixed(2)
	d.submit("bid_accepted", a.ID, func(ctx context.Context) error {
		return d.notifier.BidAccepted(ctx, a.ID, b.BidderID, amount, a.BidCount)
	})

	if previousBidderID.Valid && previousBidderID.UUID != b.BidderID {
		d.submit("auction_outbid", a.ID, func(ctx context.Context) error {
			return d.notifier.AuctionOutbid(ctx, a.ID, previousBidderID.UUID)
		})
	}

	if a.Status.IsTerminal() {
		d.AuctionClosed(a)
	}
}

// AuctionClosed queues the winner notice, the outcome broadcast and the catalog update
func (d *EventDispatcher) AuctionClosed(a *auction.Auction) {
	if winnerID := a.WinnerID(); winnerID != nil {
		winner := *winnerID
		d.submit("auction_won", a.ID, func(ctx context.Context) error {
			return d.notifier.AuctionWon(ctx, a.ID, winner)
		})
	}

	outcome := string(a.Status)
	d.submit("auction_ended", a.ID, func(ctx context.Context) error {
		return d.notifier.AuctionEnded(ctx, a.ID, outcome)
	})

	productStatus := shared.ProductStatusAvailable
	if a.Status == auction.StatusSold {
		productStatus = shared.ProductStatusSold
	}
	productID := a.ProductID
	d.submit("product_status", a.ID, func(ctx context.Context) error {
		return d.catalog.SetProductStatus(ctx, productID, productStatus)
	})
}

// Close waits for queued jobs to finish
func (d *EventDispatcher) Close() {
	d.pool.StopAndWait()
}

func (d *EventDispatcher) submit(job string, auctionID uuid.UUID, fn func(ctx context.Context) error) {
	d.pool.Submit(func() {
		delay := d.backoff
		var err error
		for attempt := 1; attempt <= dispatchAttempts; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), dispatchJobTimeout)
			err = fn(ctx)
			cancel()
			if err == nil {
				return
			}

			d.logger.Debug().Err(err).
				Str("job", job).
				Str("auction_id", auctionID.String()).
				Int("attempt", attempt).
				Msg("Dispatch attempt failed")

			if attempt < dispatchAttempts {
				time.Sleep(delay)
				delay *= 2
			}
		}

		d.logger.Error().Err(err).
			Str("job", job).
			Str("auction_id", auctionID.String()).
			Int("attempts", dispatchAttempts).
			Msg("Dropping event after retries")
	})
}
