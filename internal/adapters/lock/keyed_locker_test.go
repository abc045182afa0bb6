package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newLocker(timeout time.Duration) *KeyedLocker {
	return NewKeyedLocker(KeyedLockerParams{Timeout: timeout, Logger: zerolog.Nop()})
}

func TestKeyedLocker_MutualExclusion(t *testing.T) {
	locker := newLocker(5 * time.Second)
	auctionID := uuid.New()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), auctionID)
			require.NoError(t, err)
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), maxInside)
	require.Equal(t, 0, locker.Len(), "idle entries should be dropped")
}

func TestKeyedLocker_TimeoutIsBusy(t *testing.T) {
	locker := newLocker(20 * time.Millisecond)
	auctionID := uuid.New()

	unlock, err := locker.Lock(context.Background(), auctionID)
	require.NoError(t, err)

	_, err = locker.Lock(context.Background(), auctionID)
	require.True(t, errors.Is(err, shared.ErrBusy))

	unlock()
	unlock() // second release is a no-op

	unlock, err = locker.Lock(context.Background(), auctionID)
	require.NoError(t, err)
	unlock()
	require.Equal(t, 0, locker.Len())
}

func TestKeyedLocker_DifferentAuctionsDoNotBlock(t *testing.T) {
	locker := newLocker(20 * time.Millisecond)

	unlockA, err := locker.Lock(context.Background(), uuid.New())
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := locker.Lock(context.Background(), uuid.New())
	require.NoError(t, err)
	unlockB()
}

func TestKeyedLocker_ContextCancelled(t *testing.T) {
	locker := newLocker(time.Minute)
	auctionID := uuid.New()

	unlock, err := locker.Lock(context.Background(), auctionID)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = locker.Lock(ctx, auctionID)
	require.ErrorIs(t, err, context.Canceled)
}
