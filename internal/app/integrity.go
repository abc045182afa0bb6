package app

import (
	"context"
	"errors"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
)

// verifyLedger replays the auction's bids and compares them with the stored row
func verifyLedger(ctx context.Context, tx outbound.Tx, a *auction.Auction) error {
	bids, err := tx.ListBids(ctx, a.ID)
	if err != nil {
		return err
	}

	state, err := bid.Replay(bids)
	if err != nil {
		return err
	}

	return state.Compare(a.CurrentBid, a.BidCount, a.HighestBidderID)
}

// VerifyLedger replays the ledger and places the auction on hold when it diverges
func (service *AuctionService) VerifyLedger(ctx context.Context, auctionID uuid.UUID) (*inbound.LedgerReport, error) {
	unlock, err := service.locker.Lock(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	var (
		report       *inbound.LedgerReport
		integrityErr error
	)
	err = service.transactor.WithinTransaction(ctx, func(tx outbound.Tx) error {
		a, err := tx.GetAuctionForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}

		if err := verifyLedger(ctx, tx, a); err != nil {
			if !errors.Is(err, shared.ErrIntegrityViolation) {
				return err
			}
			integrityErr = err
			if a.IntegrityHold {
				return nil
			}
			a.IntegrityHold = true
			a.UpdatedAt = service.now()
			return tx.UpdateAuction(ctx, a)
		}

		report = &inbound.LedgerReport{
			AuctionID:       a.ID,
			BidCount:        a.BidCount,
			CurrentBid:      a.CurrentBid,
			HighestBidderID: a.HighestBidderID,
			Consistent:      true,
		}
		return nil
	})
	unlock()

	if err != nil {
		return nil, err
	}

	if integrityErr != nil {
		service.logger.Error().Err(integrityErr).
			Str("auction_id", auctionID.String()).
			Msg("Ledger integrity violation, auction placed on hold")
		return nil, integrityErr
	}

	return report, nil
}

// ReleaseIntegrityHold clears the hold once a fresh replay matches the stored row
func (service *AuctionService) ReleaseIntegrityHold(ctx context.Context, auctionID uuid.UUID) (*auction.Auction, error) {
	unlock, err := service.locker.Lock(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	var released *auction.Auction
	err = service.transactor.WithinTransaction(ctx, func(tx outbound.Tx) error {
		a, err := tx.GetAuctionForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		released = a
		if !a.IntegrityHold {
			return nil
		}

		if err := verifyLedger(ctx, tx, a); err != nil {
			return err
		}

		a.IntegrityHold = false
		a.UpdatedAt = service.now()
		return tx.UpdateAuction(ctx, a)
	})
	unlock()

	if err != nil {
		service.logger.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("Integrity hold not released")
		return nil, err
	}

	// a held auction may have been dropped by the scheduler
	if released.IsActive() {
		if err := service.expiryIndex.Schedule(ctx, released.ID, released.EndTime); err != nil {
			service.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to reschedule auction expiry")
		}
	}

	service.logger.Info().Str("auction_id", auctionID.String()).Msg("Integrity hold released")
	return released, nil
}
