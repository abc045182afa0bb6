package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"troffee-auction-engine/internal/adapters/memory"
	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createDueAuction(t *testing.T, store *memory.Store, duration time.Duration) *auction.Auction {
	t.Helper()
	product := &shared.Product{ID: uuid.New(), SellerID: uuid.New(), Status: shared.ProductStatusAvailable}
	a := auction.New(product, auction.Terms{StartingPrice: decimal.RequireFromString("10"), Duration: duration}, fixedNow)
	require.NoError(t, store.Create(context.Background(), a))
	return a
}

func TestSweepingExpiryIndex_MergesStoreSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store := memory.NewStore()
	fast := mocks.NewMockExpiryIndex(ctrl)
	index := NewSweepingExpiryIndex(SweepingExpiryIndexParams{
		Index:         fast,
		Auctions:      store,
		SweepInterval: time.Minute,
		Logger:        zerolog.Nop(),
	})

	scheduled := createDueAuction(t, store, time.Hour)
	missed := createDueAuction(t, store, 2*time.Hour)
	stale := uuid.New()

	first := fixedNow.Add(3 * time.Hour)
	fast.EXPECT().Due(gomock.Any(), first, 10).Return([]uuid.UUID{scheduled.ID, stale}, nil)
	due, err := index.Due(ctx, first, 10)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{scheduled.ID, stale, missed.ID}, due)

	// inside the sweep interval only the fast index is read
	second := first.Add(time.Second)
	fast.EXPECT().Due(gomock.Any(), second, 10).Return([]uuid.UUID{stale}, nil)
	due, err = index.Due(ctx, second, 10)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{stale}, due)

	third := first.Add(time.Minute)
	fast.EXPECT().Due(gomock.Any(), third, 10).Return(nil, nil)
	due, err = index.Due(ctx, third, 10)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{scheduled.ID, missed.ID}, due)
}

func TestSweepingExpiryIndex_FastIndexFailureForcesSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store := memory.NewStore()
	fast := mocks.NewMockExpiryIndex(ctrl)
	index := NewSweepingExpiryIndex(SweepingExpiryIndexParams{
		Index:         fast,
		Auctions:      store,
		SweepInterval: time.Hour,
		Logger:        zerolog.Nop(),
	})

	a := createDueAuction(t, store, time.Hour)
	now := fixedNow.Add(2 * time.Hour)

	fast.EXPECT().Due(gomock.Any(), now, 5).Return(nil, nil)
	_, err := index.Due(ctx, now, 5)
	require.NoError(t, err)

	fast.EXPECT().Due(gomock.Any(), now, 5).Return(nil, errors.New("connection refused"))
	due, err := index.Due(ctx, now, 5)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a.ID}, due)
}

func TestSweepingExpiryIndex_DelegatesScheduleAndRemove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fast := mocks.NewMockExpiryIndex(ctrl)
	index := NewSweepingExpiryIndex(SweepingExpiryIndexParams{Index: fast, Auctions: memory.NewStore(), Logger: zerolog.Nop()})

	id := uuid.New()
	fast.EXPECT().Schedule(gomock.Any(), id, fixedNow).Return(nil)
	fast.EXPECT().Remove(gomock.Any(), id).Return(nil)

	require.NoError(t, index.Schedule(context.Background(), id, fixedNow))
	require.NoError(t, index.Remove(context.Background(), id))
}
