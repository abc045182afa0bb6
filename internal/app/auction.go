package app

import (
	"context"
	"errors"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var _ inbound.AuctionService = (*AuctionService)(nil)

// AuctionService implements the auction lifecycle use cases
type AuctionService struct {
	auctionRepo outbound.AuctionRepository
	transactor  outbound.Transactor
	catalog     outbound.ProductCatalog
	expiryIndex outbound.ExpiryIndex
	locker      outbound.AuctionLocker
	events      *EventDispatcher
	durations   []time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}
type AuctionServiceParams struct {
	AuctionRepo outbound.AuctionRepository
	Transactor  outbound.Transactor
	Catalog     outbound.ProductCatalog
	ExpiryIndex outbound.ExpiryIndex
	Locker      outbound.AuctionLocker
	Events      *EventDispatcher
	// Durations is the supported set of auction lengths
	Durations []time.Duration
	Clock     func() time.Time
	Logger    zerolog.Logger
}

// NewAuctionService creates a new auction service
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	durations := params.Durations
	if len(durations) == 0 {
		durations = auction.DefaultDurations
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	return &AuctionService{
		auctionRepo: params.AuctionRepo,
		transactor:  params.Transactor,
		catalog:     params.Catalog,
		expiryIndex: params.ExpiryIndex,
		locker:      params.Locker,
		events:      params.Events,
		durations:   durations,
		now:         clock,
		logger:      params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// CreateAuction converts a product listing into an active auction
func (service *AuctionService) CreateAuction(ctx context.Context, req inbound.CreateAuctionRequest) (*auction.Auction, error) {
	service.logger.Info().
		Str("product_id", req.ProductID.String()).
		Str("seller_id", req.SellerID.String()).
		Str("starting_price", req.StartingPrice.String()).
		Dur("duration", req.Duration).
		Msg("Attempting to create auction")

	terms := auction.Terms{
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		BuyNowPrice:   req.BuyNowPrice,
		Duration:      req.Duration,
	}
	if err := terms.Validate(service.durations); err != nil {
		service.logger.Warn().Err(err).Str("product_id", req.ProductID.String()).Msg("Invalid auction terms")
		return nil, err
	}

	product, err := service.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		service.logger.Warn().Err(err).Str("product_id", req.ProductID.String()).Msg("Product lookup failed")
		return nil, err
	}

	if !product.Sellable() {
		service.logger.Warn().
			Str("product_id", product.ID.String()).
			Str("product_status", string(product.Status)).
			Msg("Product is not available for auction")
		return nil, shared.ErrProductNotAvailable
	}

	if product.SellerID != req.SellerID {
		service.logger.Warn().
			Str("product_id", product.ID.String()).
			Str("seller_id", req.SellerID.String()).
			Msg("Only the product seller can create an auction")
		return nil, shared.ErrForbidden
	}

	if err := service.ensureNoActiveAuction(ctx, product.ID); err != nil {
		return nil, err
	}

	newAuction := auction.New(product, terms, service.now())
	if err := service.auctionRepo.Create(ctx, newAuction); err != nil {
		service.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("Failed to create auction")
		return nil, err
	}

	if err := service.expiryIndex.Schedule(ctx, newAuction.ID, newAuction.EndTime); err != nil {
		// the store sweep behind the index still finds it
		service.logger.Error().Err(err).Str("auction_id", newAuction.ID.String()).Msg("Failed to schedule auction expiry")
	}

	service.logger.Info().
		Str("auction_id", newAuction.ID.String()).
		Str("product_id", product.ID.String()).
		Time("end_time", newAuction.EndTime).
		Msg("Auction created successfully")

	return newAuction, nil
}

// ensureNoActiveAuction settles a due auction of the product before refusing a second one
func (service *AuctionService) ensureNoActiveAuction(ctx context.Context, productID uuid.UUID) error {
	existing, err := service.auctionRepo.GetActiveByProductID(ctx, productID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		service.logger.Error().Err(err).Str("product_id", productID.String()).Msg("Failed to check for active auctions")
		return err
	}

	if existing.IsDue(service.now()) {
		result, err := service.CloseIfDue(ctx, existing.ID)
		if err != nil {
			return err
		}
		if result.Status != string(auction.StatusActive) {
			return nil
		}
	}

	service.logger.Warn().
		Str("product_id", productID.String()).
		Str("auction_id", existing.ID.String()).
		Msg("Product is already in an active auction")
	return shared.ErrActiveAuctionExists
}

// GetAuction retrieves an auction, settling it first when it is past its end time
func (service *AuctionService) GetAuction(ctx context.Context, auctionID uuid.UUID) (*auction.Auction, error) {
	a, err := service.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	return service.settle(ctx, a)
}

// GetAuctionByProduct retrieves the latest auction of a product
func (service *AuctionService) GetAuctionByProduct(ctx context.Context, productID uuid.UUID) (*auction.Auction, error) {
	a, err := service.auctionRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return service.settle(ctx, a)
}

// settle lazily closes a due auction so callers never observe a stale active state
func (service *AuctionService) settle(ctx context.Context, a *auction.Auction) (*auction.Auction, error) {
	if !a.IsDue(service.now()) {
		return a, nil
	}

	if _, err := service.CloseIfDue(ctx, a.ID); err != nil && !errors.Is(err, shared.ErrIntegrityViolation) {
		return nil, err
	}

	return service.auctionRepo.GetByID(ctx, a.ID)
}

// ListActiveAuctions retrieves active auctions ending soonest first
func (service *AuctionService) ListActiveAuctions(ctx context.Context, req inbound.ListAuctionsRequest) (*inbound.AuctionPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	auctions, total, err := service.auctionRepo.ListActive(ctx, auction.ListFilter{
		CategoryID: req.CategoryID,
		Page:       page,
		PageSize:   pageSize,
		Now:        service.now(),
	})
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to list auctions")
		return nil, err
	}

	return &inbound.AuctionPage{
		Auctions: auctions,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// CancelAuction withdraws an auction that has no bids
func (service *AuctionService) CancelAuction(ctx context.Context, auctionID, requesterID uuid.UUID) (*auction.Auction, error) {
	unlock, err := service.locker.Lock(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	var cancelled *auction.Auction
	err = service.transactor.WithinTransaction(ctx, func(tx outbound.Tx) error {
		a, err := tx.GetAuctionForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if a.IntegrityHold {
			return shared.ErrIntegrityViolation
		}
		if err := a.Cancel(requesterID, service.now()); err != nil {
			return err
		}
		if err := tx.UpdateAuction(ctx, a); err != nil {
			return err
		}
		cancelled = a
		return nil
	})
	unlock()

	if err != nil {
		service.logger.Warn().Err(err).
			Str("auction_id", auctionID.String()).
			Str("requester_id", requesterID.String()).
			Msg("Failed to cancel auction")
		return nil, err
	}

	service.unschedule(ctx, auctionID)
	service.events.AuctionClosed(cancelled)

	service.logger.Info().Str("auction_id", auctionID.String()).Msg("Auction cancelled by seller")
	return cancelled, nil
}

func (service *AuctionService) unschedule(ctx context.Context, auctionID uuid.UUID) {
	if err := service.expiryIndex.Remove(ctx, auctionID); err != nil {
		service.logger.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to remove auction from expiry index")
	}
}
