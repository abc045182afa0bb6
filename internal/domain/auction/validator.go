package auction

import (
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rules are the deployment-wide bidding rules
type Rules struct {
	MinIncrement decimal.Decimal
}

// BidRequest is a proposed bid against an auction
type BidRequest struct {
	BidderID uuid.UUID
	Amount   decimal.Decimal
	PlacedAt time.Time
}

// Decision is the outcome of an accepted bid
type Decision struct {
	Next Auction
	// Amount is what gets recorded; buy-now caps it at the buy-now price
	Amount           decimal.Decimal
	BoughtOut        bool
	PreviousBidderID uuid.NullUUID
}

// Evaluate decides whether the bid is accepted and computes the resulting auction.
// It has no side effects.
func Evaluate(current Auction, req BidRequest, rules Rules) (Decision, error) {
	now := req.PlacedAt

	if !current.IsActive() || !now.Before(current.EndTime) {
		return Decision{}, shared.ErrAuctionNotActive
	}

	if req.BidderID == current.SellerID {
		return Decision{}, shared.ErrSelfBid
	}

	floor := current.Floor(rules.MinIncrement)
	if req.Amount.LessThan(floor) {
		return Decision{}, &shared.BidTooLowError{MinimumAmount: floor}
	}

	next := current
	decision := Decision{
		Amount:           req.Amount,
		PreviousBidderID: current.HighestBidderID,
	}

	if current.BuyNowPrice.Valid && req.Amount.GreaterThanOrEqual(current.BuyNowPrice.Decimal) {
		decision.Amount = current.BuyNowPrice.Decimal
		decision.BoughtOut = true
		next.Status = StatusSold
		next.EndTime = now
	}

	next.CurrentBid = decimal.NewNullDecimal(decision.Amount)
	next.HighestBidderID = uuid.NullUUID{UUID: req.BidderID, Valid: true}
	next.BidCount++
	next.UpdatedAt = now

	decision.Next = next
	return decision, nil
}
