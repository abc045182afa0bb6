package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

// Helper to create an active auction for a fresh product
func newAuction(category string, duration time.Duration) *auction.Auction {
	product := &shared.Product{ID: uuid.New(), SellerID: uuid.New(), CategoryID: category, Status: shared.ProductStatusAvailable}
	return auction.New(product, auction.Terms{StartingPrice: decimal.RequireFromString("10"), Duration: duration}, t0)
}

func TestStore_CreateEnforcesOneActivePerProduct(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := newAuction("art", time.Hour)
	require.NoError(t, store.Create(ctx, first))

	second := newAuction("art", time.Hour)
	second.ProductID = first.ProductID
	err := store.Create(ctx, second)
	require.ErrorIs(t, err, shared.ErrActiveAuctionExists)

	// once the first one is terminal the product can be auctioned again
	require.NoError(t, store.WithinTransaction(ctx, func(tx outbound.Tx) error {
		a, err := tx.GetAuctionForUpdate(ctx, first.ID)
		require.NoError(t, err)
		a.Status = auction.StatusCancelled
		return tx.UpdateAuction(ctx, a)
	}))
	require.NoError(t, store.Create(ctx, second))

	latest, err := store.GetByProductID(ctx, first.ProductID)
	require.NoError(t, err)
	require.Equal(t, second.ID, latest.ID)
}

func TestStore_GetByIDNotFound(t *testing.T) {
	_, err := NewStore().GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStore_ListActive(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	long := newAuction("art", 3*time.Hour)
	short := newAuction("art", time.Hour)
	other := newAuction("toys", 2*time.Hour)
	expired := newAuction("art", time.Minute)
	for _, a := range []*auction.Auction{long, short, other, expired} {
		require.NoError(t, store.Create(ctx, a))
	}

	now := t0.Add(10 * time.Minute)

	all, total, err := store.ListActive(ctx, auction.ListFilter{Page: 1, PageSize: 10, Now: now})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []uuid.UUID{short.ID, other.ID, long.ID}, ids(all))

	art, total, err := store.ListActive(ctx, auction.ListFilter{CategoryID: "art", Page: 1, PageSize: 1, Now: now})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, []uuid.UUID{short.ID}, ids(art))

	beyond, total, err := store.ListActive(ctx, auction.ListFilter{Page: 5, PageSize: 10, Now: now})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Empty(t, beyond)

	due, err := store.ListDue(ctx, now, 10)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{expired.ID}, due)
}

func TestStore_ListDueSkipsHeldAuctions(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	held := newAuction("art", time.Minute)
	normal := newAuction("art", 2*time.Minute)
	require.NoError(t, store.Create(ctx, held))
	require.NoError(t, store.Create(ctx, normal))

	onHold := *held
	onHold.IntegrityHold = true
	store.Put(onHold)

	due, err := store.ListDue(ctx, t0.Add(time.Hour), 1)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{normal.ID}, due)
}

func TestStore_TransactionCommitsAtomically(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newAuction("art", time.Hour)
	require.NoError(t, store.Create(ctx, a))

	bidder := uuid.New()
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(tx outbound.Tx) error {
		current, err := tx.GetAuctionForUpdate(ctx, a.ID)
		require.NoError(t, err)
		current.BidCount = 1
		require.NoError(t, tx.UpdateAuction(ctx, current))
		require.NoError(t, tx.AppendBid(ctx, bid.New(a.ID, bidder, decimal.RequireFromString("10"), 1, t0)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.BidCount)
	bids, err := store.GetByAuctionID(ctx, a.ID, bid.OrderAscending)
	require.NoError(t, err)
	require.Empty(t, bids)

	err = store.WithinTransaction(ctx, func(tx outbound.Tx) error {
		current, err := tx.GetAuctionForUpdate(ctx, a.ID)
		require.NoError(t, err)
		current.BidCount = 1
		require.NoError(t, tx.UpdateAuction(ctx, current))
		require.NoError(t, tx.AppendBid(ctx, bid.New(a.ID, bidder, decimal.RequireFromString("10"), 1, t0)))

		staged, err := tx.ListBids(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, staged, 1)
		return nil
	})
	require.NoError(t, err)

	stored, err = store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.BidCount)
	bids, err = store.GetByAuctionID(ctx, a.ID, bid.OrderDescending)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestStore_RejectsLedgerGap(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newAuction("art", time.Hour)
	require.NoError(t, store.Create(ctx, a))

	err := store.WithinTransaction(ctx, func(tx outbound.Tx) error {
		return tx.AppendBid(ctx, bid.New(a.ID, uuid.New(), decimal.RequireFromString("10"), 2, t0))
	})
	require.ErrorIs(t, err, shared.ErrIntegrityViolation)
}

func TestStore_RowLockSerialisesUnitsOfWork(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newAuction("art", time.Hour)
	require.NoError(t, store.Create(ctx, a))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithinTransaction(ctx, func(tx outbound.Tx) error {
				current, err := tx.GetAuctionForUpdate(ctx, a.ID)
				if err != nil {
					return err
				}
				current.BidCount++
				amount := decimal.NewFromInt(int64(10 + current.BidCount))
				if err := tx.AppendBid(ctx, bid.New(a.ID, uuid.New(), amount, current.BidCount, t0)); err != nil {
					return err
				}
				return tx.UpdateAuction(ctx, current)
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 20, stored.BidCount)

	bids, err := store.GetByAuctionID(ctx, a.ID, bid.OrderAscending)
	require.NoError(t, err)
	state, err := bid.Replay(bids)
	require.NoError(t, err)
	require.Equal(t, 20, state.BidCount)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog()
	product := shared.Product{ID: uuid.New(), SellerID: uuid.New(), Status: shared.ProductStatusAvailable}
	catalog.AddProduct(product)

	require.NoError(t, catalog.SetProductStatus(ctx, product.ID, shared.ProductStatusSold))
	got, err := catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, shared.ProductStatusSold, got.Status)

	_, err = catalog.GetProduct(ctx, uuid.New())
	require.ErrorIs(t, err, shared.ErrProductNotFound)
	require.ErrorIs(t, catalog.SetProductStatus(ctx, uuid.New(), shared.ProductStatusSold), shared.ErrNotFound)
}

func ids(auctions []*auction.Auction) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, a.ID)
	}
	return out
}
