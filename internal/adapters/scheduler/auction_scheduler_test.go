package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"troffee-auction-engine/internal/domain/shared"
	inmocks "troffee-auction-engine/internal/ports/inbound/mocks"
	"troffee-auction-engine/internal/ports/outbound/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestScheduler(index *mocks.MockExpiryIndex, closer AuctionCloser) *AuctionScheduler {
	return NewAuctionScheduler(AuctionSchedulerParams{
		ExpiryIndex: index,
		Closer:      closer,
		Interval:    10 * time.Millisecond,
		BatchSize:   10,
		Workers:     4,
		Clock:       func() time.Time { return fixedNow },
		Logger:      zerolog.Nop(),
	})
}

func TestAuctionScheduler_RunOnceIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockExpiryIndex(ctrl)
	closer := inmocks.NewMockAuctionService(ctrl)
	s := newTestScheduler(index, closer)
	defer s.Stop()

	ok1, ok2, broken, held, busy := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()
	index.EXPECT().Due(gomock.Any(), fixedNow, 10).Return([]uuid.UUID{ok1, broken, ok2, held, busy}, nil)

	closer.EXPECT().CloseIfDue(gomock.Any(), ok1).Return(&shared.AuctionEndResult{AuctionID: ok1, Status: "sold", Closed: true}, nil)
	closer.EXPECT().CloseIfDue(gomock.Any(), ok2).Return(&shared.AuctionEndResult{AuctionID: ok2, Status: "cancelled", Closed: true}, nil)
	closer.EXPECT().CloseIfDue(gomock.Any(), broken).Return(nil, shared.ErrStorageUnavailable)
	closer.EXPECT().CloseIfDue(gomock.Any(), held).Return(nil, &shared.IntegrityError{Field: "bid_count"})
	closer.EXPECT().CloseIfDue(gomock.Any(), busy).Return(nil, shared.ErrBusy)

	// only the held auction leaves the schedule; the others are retried next tick
	index.EXPECT().Remove(gomock.Any(), held).Return(nil)

	require.Equal(t, 2, s.RunOnce(context.Background()))
}

func TestAuctionScheduler_RunOnceIndexFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockExpiryIndex(ctrl)
	closer := inmocks.NewMockAuctionService(ctrl)
	s := newTestScheduler(index, closer)
	defer s.Stop()

	index.EXPECT().Due(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	require.Equal(t, 0, s.RunOnce(context.Background()))
}

type countingCloser struct {
	calls int32
}

func (c *countingCloser) CloseIfDue(ctx context.Context, auctionID uuid.UUID) (*shared.AuctionEndResult, error) {
	atomic.AddInt32(&c.calls, 1)
	return &shared.AuctionEndResult{AuctionID: auctionID, Closed: true}, nil
}

func TestAuctionScheduler_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockExpiryIndex(ctrl)
	closer := &countingCloser{}
	s := newTestScheduler(index, closer)

	due := uuid.New()
	index.EXPECT().Due(gomock.Any(), gomock.Any(), gomock.Any()).Return([]uuid.UUID{due}, nil).MinTimes(1)

	s.Start()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&closer.calls) > 0 }, time.Second, 5*time.Millisecond)
	s.Stop()

	calls := atomic.LoadInt32(&closer.calls)
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, calls, atomic.LoadInt32(&closer.calls), "no ticks after Stop")
}
