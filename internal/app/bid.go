package app

import (
	"context"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var _ inbound.BidService = (*BidService)(nil)

// BidService implements bid placement and bid history
type BidService struct {
	auctionRepo outbound.AuctionRepository
	bidRepo     outbound.BidRepository
	transactor  outbound.Transactor
	expiryIndex outbound.ExpiryIndex
	locker      outbound.AuctionLocker
	events      *EventDispatcher
	rules       auction.Rules
	now         func() time.Time
	logger      zerolog.Logger
}
type BidServiceParams struct {
	AuctionRepo  outbound.AuctionRepository
	BidRepo      outbound.BidRepository
	Transactor   outbound.Transactor
	ExpiryIndex  outbound.ExpiryIndex
	Locker       outbound.AuctionLocker
	Events       *EventDispatcher
	MinIncrement decimal.Decimal
	Clock        func() time.Time
	Logger       zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	return &BidService{
		auctionRepo: params.AuctionRepo,
		bidRepo:     params.BidRepo,
		transactor:  params.Transactor,
		expiryIndex: params.ExpiryIndex,
		locker:      params.Locker,
		events:      params.Events,
		rules:       auction.Rules{MinIncrement: params.MinIncrement},
		now:         clock,
		logger:      params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid validates and records a bid. The auction row and the ledger entry
// are written in one unit of work while the auction is locked; notifications
// are queued once the lock is released.
func (service *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*inbound.PlaceBidResult, error) {
	service.logger.Debug().
		Str("auction_id", req.AuctionID.String()).
		Str("bidder_id", req.BidderID.String()).
		Str("amount", req.Amount.String()).
		Msg("Attempting to place bid")

	if !req.Amount.IsPositive() {
		return nil, shared.ErrBidAmountInvalid
	}
	if err := auction.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}

	unlock, err := service.locker.Lock(ctx, req.AuctionID)
	if err != nil {
		service.logger.Warn().Err(err).Str("auction_id", req.AuctionID.String()).Msg("Auction lock not acquired")
		return nil, err
	}

	var (
		decision auction.Decision
		newBid   *bid.Bid
	)
	err = service.transactor.WithinTransaction(ctx, func(tx outbound.Tx) error {
		current, err := tx.GetAuctionForUpdate(ctx, req.AuctionID)
		if err != nil {
			return err
		}
		if current.IntegrityHold {
			return shared.ErrIntegrityViolation
		}

		decision, err = auction.Evaluate(*current, auction.BidRequest{
			BidderID: req.BidderID,
			Amount:   req.Amount,
			PlacedAt: service.now(),
		}, service.rules)
		if err != nil {
			return err
		}

		next := decision.Next
		newBid = bid.New(next.ID, req.BidderID, decision.Amount, next.BidCount, next.UpdatedAt)

		if err := tx.AppendBid(ctx, newBid); err != nil {
			return err
		}
		return tx.UpdateAuction(ctx, &next)
	})
	unlock()

	if err != nil {
		service.logger.Warn().Err(err).
			Str("auction_id", req.AuctionID.String()).
			Str("bidder_id", req.BidderID.String()).
			Str("amount", req.Amount.String()).
			Msg("Bid rejected")
		return nil, err
	}

	updated := decision.Next
	if decision.BoughtOut {
		if err := service.expiryIndex.Remove(ctx, updated.ID); err != nil {
			service.logger.Warn().Err(err).Str("auction_id", updated.ID.String()).Msg("Failed to remove auction from expiry index")
		}
	}
	service.events.BidAccepted(&updated, newBid, decision.PreviousBidderID)

	service.logger.Info().
		Str("bid_id", newBid.ID.String()).
		Str("auction_id", updated.ID.String()).
		Str("bidder_id", newBid.BidderID.String()).
		Str("amount", newBid.Amount.StringFixed(2)).
		Int("bid_count", updated.BidCount).
		Bool("bought_out", decision.BoughtOut).
		Msg("Bid placed successfully")

	return &inbound.PlaceBidResult{Auction: &updated, Bid: newBid}, nil
}

// ListBids retrieves the bid history of an auction
func (service *BidService) ListBids(ctx context.Context, auctionID uuid.UUID, order bid.Order) ([]*bid.Bid, error) {
	if _, err := service.auctionRepo.GetByID(ctx, auctionID); err != nil {
		return nil, err
	}
	return service.bidRepo.GetByAuctionID(ctx, auctionID, order)
}
