package app

import (
	"context"
	"errors"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
)

// CloseIfDue settles an auction whose end time has passed. It is idempotent:
// terminal and not yet due auctions are returned unchanged with Closed unset.
func (service *AuctionService) CloseIfDue(ctx context.Context, auctionID uuid.UUID) (*shared.AuctionEndResult, error) {
	unlock, err := service.locker.Lock(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	var (
		snapshot     *auction.Auction
		closed       bool
		integrityErr error
	)
	err = service.transactor.WithinTransaction(ctx, func(tx outbound.Tx) error {
		a, err := tx.GetAuctionForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		snapshot = a

		now := service.now()
		if !a.IsDue(now) {
			return nil
		}
		if a.IntegrityHold {
			integrityErr = shared.ErrIntegrityViolation
			return nil
		}

		if err := verifyLedger(ctx, tx, a); err != nil {
			if !errors.Is(err, shared.ErrIntegrityViolation) {
				return err
			}
			integrityErr = err
			a.IntegrityHold = true
			a.UpdatedAt = now
			return tx.UpdateAuction(ctx, a)
		}

		a.Close(now)
		if err := tx.UpdateAuction(ctx, a); err != nil {
			return err
		}
		closed = true
		return nil
	})
	unlock()

	if err != nil {
		service.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to close auction")
		return nil, err
	}

	if integrityErr != nil {
		service.logger.Error().Err(integrityErr).
			Str("auction_id", auctionID.String()).
			Msg("Ledger integrity violation, auction held instead of closed")
		return nil, integrityErr
	}

	result := snapshot.EndResult()
	if !closed {
		if snapshot.Status.IsTerminal() {
			service.unschedule(ctx, auctionID)
		}
		return result, nil
	}
	result.Closed = true

	service.unschedule(ctx, auctionID)
	service.events.AuctionClosed(snapshot)

	logger := service.logger.Info().
		Str("auction_id", auctionID.String()).
		Str("status", result.Status)
	if result.WinnerID != nil {
		logger = logger.Str("winner_id", result.WinnerID.String())
	}
	if result.FinalPrice != nil {
		logger = logger.Str("final_price", result.FinalPrice.StringFixed(2))
	}
	logger.Msg("Auction ended successfully")

	return result, nil
}
