package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuctionCloser settles due auctions
type AuctionCloser interface {
	CloseIfDue(ctx context.Context, auctionID uuid.UUID) (*shared.AuctionEndResult, error)
}

type AuctionScheduler struct {
	index     outbound.ExpiryIndex
	closer    AuctionCloser
	pool      *pond.WorkerPool
	interval  time.Duration
	batchSize int
	now       func() time.Time
	logger    zerolog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}
type AuctionSchedulerParams struct {
	ExpiryIndex outbound.ExpiryIndex
	Closer      AuctionCloser
	Interval    time.Duration
	BatchSize   int
	Workers     int
	Clock       func() time.Time
	Logger      zerolog.Logger
}

func NewAuctionScheduler(params AuctionSchedulerParams) *AuctionScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	return &AuctionScheduler{
		index:     params.ExpiryIndex,
		closer:    params.Closer,
		pool:      pond.New(workers, params.BatchSize, pond.Strategy(pond.Balanced())),
		interval:  params.Interval,
		batchSize: params.BatchSize,
		now:       clock,
		logger:    params.Logger.With().Str("component", "auction_scheduler").Logger(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the scheduler loop
func (s *AuctionScheduler) Start() {
	s.logger.Info().Dur("interval", s.interval).Int("batch_size", s.batchSize).Msg("Starting auction scheduler")

	s.wg.Add(1)
	go s.schedulerLoop()
}

// Stop gracefully stops the scheduler and waits for in-flight closes
func (s *AuctionScheduler) Stop() {
	s.logger.Info().Msg("Stopping auction scheduler")
	s.cancel()
	s.wg.Wait()
	s.pool.StopAndWait()
}

// schedulerLoop runs the main scheduling loop
func (s *AuctionScheduler) schedulerLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(s.ctx)
		case <-s.ctx.Done():
			s.logger.Info().Msg("Scheduler loop stopped")
			return
		}
	}
}

// RunOnce closes one batch of due auctions and returns how many were settled
func (s *AuctionScheduler) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}

	due, err := s.index.Due(ctx, s.now(), s.batchSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get expired auctions")
		return 0
	}

	if len(due) == 0 {
		return 0
	}
	s.logger.Debug().Int("count", len(due)).Msg("Found expired auctions")

	var (
		mu     sync.Mutex
		closed int
	)
	group := s.pool.Group()
	for _, auctionID := range due {
		auctionID := auctionID
		group.Submit(func() {
			if s.endAuction(ctx, auctionID) {
				mu.Lock()
				closed++
				mu.Unlock()
			}
		})
	}
	group.Wait()

	return closed
}

// endAuction settles a single auction; failures stay local to it
func (s *AuctionScheduler) endAuction(ctx context.Context, auctionID uuid.UUID) bool {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error().Interface("panic", p).Str("auction_id", auctionID.String()).Msg("Auction close panicked")
		}
	}()

	result, err := s.closer.CloseIfDue(ctx, auctionID)
	switch {
	case err == nil:
		return result.Closed
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrIntegrityViolation):
		// held auctions are rescheduled when the hold is released
		s.logger.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("Dropping auction from expiry schedule")
		if err := s.index.Remove(ctx, auctionID); err != nil {
			s.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to remove auction from expiry index")
		}
	case errors.Is(err, shared.ErrBusy):
		s.logger.Debug().Str("auction_id", auctionID.String()).Msg("Auction busy, retrying next tick")
	default:
		s.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to end auction")
	}
	return false
}
