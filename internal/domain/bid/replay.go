package bid

import (
	"fmt"
	"strconv"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReplayState is the auction state reconstructed from its ledger
type ReplayState struct {
	CurrentBid      decimal.NullDecimal
	BidCount        int
	HighestBidderID uuid.NullUUID
}

// Replay folds bids in ascending ledger order. Amounts must strictly increase and
// sequence numbers must run 1..n without gaps.
func Replay(bids []*Bid) (ReplayState, error) {
	var state ReplayState

	for i, b := range bids {
		if b.Sequence != i+1 {
			return ReplayState{}, &shared.IntegrityError{
				Field:    "sequence",
				Stored:   strconv.Itoa(b.Sequence),
				Replayed: strconv.Itoa(i + 1),
			}
		}
		if state.CurrentBid.Valid && !b.Amount.GreaterThan(state.CurrentBid.Decimal) {
			return ReplayState{}, &shared.IntegrityError{
				Field:    fmt.Sprintf("amount[%d]", b.Sequence),
				Stored:   b.Amount.StringFixed(2),
				Replayed: "> " + state.CurrentBid.Decimal.StringFixed(2),
			}
		}

		state.CurrentBid = decimal.NewNullDecimal(b.Amount)
		state.HighestBidderID = uuid.NullUUID{UUID: b.BidderID, Valid: true}
		state.BidCount++
	}

	return state, nil
}

// Compare checks a stored auction summary against the replayed state
func (s ReplayState) Compare(currentBid decimal.NullDecimal, bidCount int, highestBidderID uuid.NullUUID) error {
	if s.BidCount != bidCount {
		return &shared.IntegrityError{
			Field:    "bid_count",
			Stored:   strconv.Itoa(bidCount),
			Replayed: strconv.Itoa(s.BidCount),
		}
	}

	if s.CurrentBid.Valid != currentBid.Valid ||
		(currentBid.Valid && !s.CurrentBid.Decimal.Equal(currentBid.Decimal)) {
		return &shared.IntegrityError{
			Field:    "current_bid",
			Stored:   nullDecimalString(currentBid),
			Replayed: nullDecimalString(s.CurrentBid),
		}
	}

	if s.HighestBidderID != highestBidderID {
		return &shared.IntegrityError{
			Field:    "highest_bidder_id",
			Stored:   nullUUIDString(highestBidderID),
			Replayed: nullUUIDString(s.HighestBidderID),
		}
	}

	return nil
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "null"
	}
	return d.Decimal.StringFixed(2)
}

func nullUUIDString(id uuid.NullUUID) string {
	if !id.Valid {
		return "null"
	}
	return id.UUID.String()
}
