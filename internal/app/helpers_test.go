package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"troffee-auction-engine/internal/adapters/lock"
	"troffee-auction-engine/internal/adapters/memory"
	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store    *memory.Store
	catalog  *memory.Catalog
	notifier *mocks.MockNotifier
	index    *mocks.MockExpiryIndex
	locker   *lock.KeyedLocker
	events   *EventDispatcher
	auctions *AuctionService
	bids     *BidService
	clock    *testClock
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	f := &fixture{
		store:    memory.NewStore(),
		catalog:  memory.NewCatalog(),
		notifier: mocks.NewMockNotifier(ctrl),
		index:    mocks.NewMockExpiryIndex(ctrl),
		locker:   lock.NewKeyedLocker(lock.KeyedLockerParams{Timeout: time.Second, Logger: zerolog.Nop()}),
		clock:    &testClock{now: testStart},
	}
	f.index.EXPECT().Schedule(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.index.EXPECT().Remove(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.events = NewEventDispatcher(EventDispatcherParams{
		Notifier: f.notifier,
		Catalog:  f.catalog,
		Workers:  4,
		Backoff:  time.Millisecond,
		Logger:   zerolog.Nop(),
	})
	f.auctions = NewAuctionService(AuctionServiceParams{
		AuctionRepo: f.store,
		Transactor:  f.store,
		Catalog:     f.catalog,
		ExpiryIndex: f.index,
		Locker:      f.locker,
		Events:      f.events,
		Clock:       f.clock.Now,
		Logger:      zerolog.Nop(),
	})
	f.bids = NewBidService(BidServiceParams{
		AuctionRepo:  f.store,
		BidRepo:      f.store,
		Transactor:   f.store,
		ExpiryIndex:  f.index,
		Locker:       f.locker,
		Events:       f.events,
		MinIncrement: decimal.RequireFromString("50"),
		Clock:        f.clock.Now,
		Logger:       zerolog.Nop(),
	})
	return f
}

// flush waits for every queued notification
func (f *fixture) flush() {
	f.events.Close()
}

func (f *fixture) product(category string) shared.Product {
	p := shared.Product{
		ID:         uuid.New(),
		SellerID:   uuid.New(),
		CategoryID: category,
		Status:     shared.ProductStatusAvailable,
	}
	f.catalog.AddProduct(p)
	return p
}

func (f *fixture) createAuction(t *testing.T, starting string, reserve, buyNow string) *auction.Auction {
	t.Helper()

	p := f.product("watches")
	a, err := f.auctions.CreateAuction(context.Background(), inbound.CreateAuctionRequest{
		ProductID:     p.ID,
		SellerID:      p.SellerID,
		StartingPrice: decimal.RequireFromString(starting),
		ReservePrice:  nullDecimal(reserve),
		BuyNowPrice:   nullDecimal(buyNow),
		Duration:      24 * time.Hour,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) placeBid(auctionID, bidderID uuid.UUID, amount string) (*inbound.PlaceBidResult, error) {
	return f.bids.PlaceBid(context.Background(), inbound.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    decimal.RequireFromString(amount),
	})
}

func nullDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func requireMoney(t *testing.T, expected string, actual decimal.NullDecimal) {
	t.Helper()
	require.True(t, actual.Valid, "expected an amount")
	require.True(t, decimal.RequireFromString(expected).Equal(actual.Decimal), "expected %s, got %s", expected, actual.Decimal)
}
