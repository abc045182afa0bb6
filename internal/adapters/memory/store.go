package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
)

// Store is a concurrency-safe in-memory auction store. It implements the
// auction and bid repositories and the Transactor.
type Store struct {
	mu       sync.RWMutex
	auctions map[uuid.UUID]auction.Auction // key: auctionID
	bids     map[uuid.UUID][]bid.Bid       // key: auctionID -> ledger in sequence order
	active   map[uuid.UUID]uuid.UUID       // key: productID -> active auctionID
	rows     map[uuid.UUID]*sync.Mutex     // key: auctionID -> row lock held by a unit of work
}

// NewStore creates a new in-memory store
func NewStore() *Store {
	return &Store{
		auctions: make(map[uuid.UUID]auction.Auction),
		bids:     make(map[uuid.UUID][]bid.Bid),
		active:   make(map[uuid.UUID]uuid.UUID),
		rows:     make(map[uuid.UUID]*sync.Mutex),
	}
}

// Create stores a new auction, enforcing one active auction per product
func (s *Store) Create(ctx context.Context, a *auction.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auctions[a.ID]; exists {
		return fmt.Errorf("create auction %s: duplicate id", a.ID)
	}
	if a.IsActive() {
		if _, exists := s.active[a.ProductID]; exists {
			return fmt.Errorf("create auction for product %s: %w", a.ProductID, shared.ErrActiveAuctionExists)
		}
		s.active[a.ProductID] = a.ID
	}

	s.auctions[a.ID] = *a
	s.rows[a.ID] = &sync.Mutex{}
	return nil
}

// GetByID retrieves an auction by ID
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[id]
	if !ok {
		return nil, shared.ErrAuctionNotFound
	}
	return &a, nil
}

// GetByProductID retrieves the most recently created auction of a product
func (s *Store) GetByProductID(ctx context.Context, productID uuid.UUID) (*auction.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *auction.Auction
	for _, a := range s.auctions {
		if a.ProductID != productID {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			found := a
			latest = &found
		}
	}
	if latest == nil {
		return nil, shared.ErrAuctionNotFound
	}
	return latest, nil
}

// GetActiveByProductID retrieves the active auction of a product
func (s *Store) GetActiveByProductID(ctx context.Context, productID uuid.UUID) (*auction.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.active[productID]
	if !ok {
		return nil, shared.ErrAuctionNotFound
	}
	a := s.auctions[id]
	return &a, nil
}

// ListActive returns active auctions that are not yet due, soonest ending first
func (s *Store) ListActive(ctx context.Context, filter auction.ListFilter) ([]*auction.Auction, int, error) {
	s.mu.RLock()
	matches := make([]auction.Auction, 0)
	for _, id := range s.active {
		a := s.auctions[id]
		if !filter.Now.Before(a.EndTime) {
			continue
		}
		if filter.CategoryID != "" && a.CategoryID != filter.CategoryID {
			continue
		}
		matches = append(matches, a)
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].EndTime.Equal(matches[j].EndTime) {
			return matches[i].ID.String() < matches[j].ID.String()
		}
		return matches[i].EndTime.Before(matches[j].EndTime)
	})

	total := len(matches)
	start := filter.Offset()
	if start >= total {
		return []*auction.Auction{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	page := make([]*auction.Auction, 0, end-start)
	for i := start; i < end; i++ {
		a := matches[i]
		page = append(page, &a)
	}
	return page, total, nil
}

// ListDue returns IDs of active auctions whose end time is at or before now,
// skipping auctions on integrity hold
func (s *Store) ListDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	s.mu.RLock()
	due := make([]auction.Auction, 0)
	for _, id := range s.active {
		if a := s.auctions[id]; a.IsDue(now) && !a.IntegrityHold {
			due = append(due, a)
		}
	}
	s.mu.RUnlock()

	sort.Slice(due, func(i, j int) bool { return due[i].EndTime.Before(due[j].EndTime) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	ids := make([]uuid.UUID, 0, len(due))
	for _, a := range due {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// GetByAuctionID returns the ledger of an auction
func (s *Store) GetByAuctionID(ctx context.Context, auctionID uuid.UUID, order bid.Order) ([]*bid.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger := s.bids[auctionID]
	out := make([]*bid.Bid, 0, len(ledger))
	for i := range ledger {
		b := ledger[i]
		out = append(out, &b)
	}
	if order == bid.OrderDescending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// WithinTransaction runs fn against a staged view of the store. Writes become
// visible together when fn returns nil and are discarded otherwise.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx outbound.Tx) error) error {
	tx := &storeTx{
		store:   s,
		updates: make(map[uuid.UUID]auction.Auction),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

type storeTx struct {
	store   *Store
	held    []*sync.Mutex
	updates map[uuid.UUID]auction.Auction
	appends []bid.Bid
}

func (tx *storeTx) GetAuctionForUpdate(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	if staged, ok := tx.updates[id]; ok {
		return &staged, nil
	}

	tx.store.mu.RLock()
	row, ok := tx.store.rows[id]
	tx.store.mu.RUnlock()
	if !ok {
		return nil, shared.ErrAuctionNotFound
	}

	if !tx.holds(row) {
		row.Lock()
		tx.held = append(tx.held, row)
	}

	tx.store.mu.RLock()
	a := tx.store.auctions[id]
	tx.store.mu.RUnlock()
	return &a, nil
}

func (tx *storeTx) UpdateAuction(ctx context.Context, a *auction.Auction) error {
	tx.store.mu.RLock()
	_, ok := tx.store.auctions[a.ID]
	tx.store.mu.RUnlock()
	if !ok {
		return shared.ErrAuctionNotFound
	}
	tx.updates[a.ID] = *a
	return nil
}

func (tx *storeTx) AppendBid(ctx context.Context, b *bid.Bid) error {
	tx.appends = append(tx.appends, *b)
	return nil
}

func (tx *storeTx) ListBids(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	bids, err := tx.store.GetByAuctionID(ctx, auctionID, bid.OrderAscending)
	if err != nil {
		return nil, err
	}
	for i := range tx.appends {
		if tx.appends[i].AuctionID == auctionID {
			b := tx.appends[i]
			bids = append(bids, &b)
		}
	}
	return bids, nil
}

func (tx *storeTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	lengths := make(map[uuid.UUID]int)
	for _, b := range tx.appends {
		n, ok := lengths[b.AuctionID]
		if !ok {
			n = len(s.bids[b.AuctionID])
		}
		if n != b.Sequence-1 {
			return fmt.Errorf("append bid %d to auction %s: %w", b.Sequence, b.AuctionID, shared.ErrIntegrityViolation)
		}
		lengths[b.AuctionID] = n + 1
	}

	for id, a := range tx.updates {
		if a.IsActive() {
			s.active[a.ProductID] = id
		} else if s.active[a.ProductID] == id {
			delete(s.active, a.ProductID)
		}
		s.auctions[id] = a
	}
	for _, b := range tx.appends {
		s.bids[b.AuctionID] = append(s.bids[b.AuctionID], b)
	}
	return nil
}

func (tx *storeTx) holds(row *sync.Mutex) bool {
	for _, h := range tx.held {
		if h == row {
			return true
		}
	}
	return false
}

func (tx *storeTx) release() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
	tx.held = nil
}

// Put overwrites an auction row without touching the ledger. This method is intended for tests only.
func (s *Store) Put(a auction.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[a.ID]; !ok {
		s.rows[a.ID] = &sync.Mutex{}
	}
	s.auctions[a.ID] = a
}
