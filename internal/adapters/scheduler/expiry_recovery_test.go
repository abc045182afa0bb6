package scheduler

import (
	"context"
	"testing"
	"time"

	"troffee-auction-engine/internal/adapters/lock"
	"troffee-auction-engine/internal/adapters/memory"
	"troffee-auction-engine/internal/adapters/redis"
	"troffee-auction-engine/internal/app"
	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound"
	"troffee-auction-engine/internal/ports/outbound/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type closingHarness struct {
	store    *memory.Store
	catalog  *memory.Catalog
	notifier *mocks.MockNotifier
	events   *app.EventDispatcher
	service  *app.AuctionService
	now      time.Time
}

func newClosingHarness(t *testing.T, ctrl *gomock.Controller, index func(store *memory.Store) outbound.ExpiryIndex) *closingHarness {
	t.Helper()

	h := &closingHarness{
		store:    memory.NewStore(),
		catalog:  memory.NewCatalog(),
		notifier: mocks.NewMockNotifier(ctrl),
		now:      fixedNow,
	}
	h.events = app.NewEventDispatcher(app.EventDispatcherParams{
		Notifier: h.notifier,
		Catalog:  h.catalog,
		Workers:  2,
		Backoff:  time.Millisecond,
		Logger:   zerolog.Nop(),
	})
	h.service = app.NewAuctionService(app.AuctionServiceParams{
		AuctionRepo: h.store,
		Transactor:  h.store,
		Catalog:     h.catalog,
		ExpiryIndex: index(h.store),
		Locker:      lock.NewKeyedLocker(lock.KeyedLockerParams{Timeout: time.Second, Logger: zerolog.Nop()}),
		Events:      h.events,
		Clock:       h.clock,
		Logger:      zerolog.Nop(),
	})
	return h
}

func (h *closingHarness) clock() time.Time {
	return h.now
}

func (h *closingHarness) scheduler(index outbound.ExpiryIndex, batchSize int) *AuctionScheduler {
	return NewAuctionScheduler(AuctionSchedulerParams{
		ExpiryIndex: index,
		Closer:      h.service,
		Interval:    time.Hour,
		BatchSize:   batchSize,
		Workers:     2,
		Clock:       h.clock,
		Logger:      zerolog.Nop(),
	})
}

func (h *closingHarness) status(t *testing.T, id uuid.UUID) auction.Status {
	t.Helper()
	a, err := h.store.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a.Status
}

// an auction whose end time never reached Redis is still closed by the sweep
func TestAuctionScheduler_ClosesAuctionMissingFromRedis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	fast := redis.NewExpiryIndex(redis.ExpiryIndexParams{RedisClient: client, Logger: zerolog.Nop()})

	var index *SweepingExpiryIndex
	h := newClosingHarness(t, ctrl, func(store *memory.Store) outbound.ExpiryIndex {
		index = NewSweepingExpiryIndex(SweepingExpiryIndexParams{
			Index:         fast,
			Auctions:      store,
			SweepInterval: time.Hour,
			Logger:        zerolog.Nop(),
		})
		return index
	})

	product := shared.Product{ID: uuid.New(), SellerID: uuid.New(), Status: shared.ProductStatusAvailable}
	h.catalog.AddProduct(product)

	mr.SetError("ERR server unavailable")
	created, err := h.service.CreateAuction(context.Background(), inbound.CreateAuctionRequest{
		ProductID:     product.ID,
		SellerID:      product.SellerID,
		StartingPrice: decimal.RequireFromString("10"),
		Duration:      24 * time.Hour,
	})
	require.NoError(t, err)
	mr.SetError("")

	scheduled, err := fast.Due(context.Background(), created.EndTime.Add(time.Hour), 10)
	require.NoError(t, err)
	require.Empty(t, scheduled)

	s := h.scheduler(index, 10)
	defer s.Stop()

	require.Zero(t, s.RunOnce(context.Background()))

	h.notifier.EXPECT().AuctionEnded(gomock.Any(), created.ID, string(auction.StatusCancelled)).Return(nil)
	h.now = h.now.Add(48 * time.Hour)
	require.Equal(t, 1, s.RunOnce(context.Background()))
	h.events.Close()

	require.Equal(t, auction.StatusCancelled, h.status(t, created.ID))
	p, err := h.catalog.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, shared.ProductStatusAvailable, p.Status)
}

// held auctions stay due but must not crowd later auctions out of the batch
func TestAuctionScheduler_HeldAuctionDoesNotStarveBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newClosingHarness(t, ctrl, func(store *memory.Store) outbound.ExpiryIndex {
		return NewStoreExpiryIndex(store)
	})

	newListed := func(duration time.Duration) *auction.Auction {
		product := shared.Product{ID: uuid.New(), SellerID: uuid.New(), Status: shared.ProductStatusAvailable}
		h.catalog.AddProduct(product)
		a := auction.New(&product, auction.Terms{StartingPrice: decimal.RequireFromString("10"), Duration: duration}, fixedNow)
		require.NoError(t, h.store.Create(context.Background(), a))
		return a
	}

	held := newListed(24*time.Hour - time.Minute)
	normal := newListed(24 * time.Hour)

	onHold := *held
	onHold.IntegrityHold = true
	h.store.Put(onHold)

	s := h.scheduler(NewStoreExpiryIndex(h.store), 1)
	defer s.Stop()

	h.notifier.EXPECT().AuctionEnded(gomock.Any(), normal.ID, string(auction.StatusCancelled)).Return(nil)
	h.now = h.now.Add(48 * time.Hour)

	closed := 0
	for i := 0; i < 5; i++ {
		closed += s.RunOnce(context.Background())
	}
	h.events.Close()

	require.Equal(t, 1, closed)
	require.Equal(t, auction.StatusCancelled, h.status(t, normal.ID))
	require.Equal(t, auction.StatusActive, h.status(t, held.ID))
}
