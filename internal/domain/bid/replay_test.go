package bid

import (
	"errors"
	"testing"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func ledger(auctionID uuid.UUID, bidders []uuid.UUID, amounts ...string) []*Bid {
	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	bids := make([]*Bid, 0, len(amounts))
	for i, amount := range amounts {
		bids = append(bids, New(auctionID, bidders[i%len(bidders)], decimal.RequireFromString(amount), i+1, start.Add(time.Duration(i)*time.Minute)))
	}
	return bids
}

func TestReplay(t *testing.T) {
	auctionID := uuid.New()
	a, b := uuid.New(), uuid.New()

	state, err := Replay(ledger(auctionID, []uuid.UUID{a, b}, "100", "150", "200"))
	assert.NoError(t, err)
	check.Equal(t, 3, state.BidCount)
	check.Equal(t, "200.00", state.CurrentBid.Decimal.StringFixed(2))
	check.Equal(t, a, state.HighestBidderID.UUID)

	check.NoError(t, state.Compare(decimal.NewNullDecimal(decimal.RequireFromString("200")), 3, uuid.NullUUID{UUID: a, Valid: true}))
}

func TestReplay_Empty(t *testing.T) {
	state, err := Replay(nil)
	assert.NoError(t, err)
	check.Equal(t, 0, state.BidCount)
	check.False(t, state.CurrentBid.Valid)
	check.False(t, state.HighestBidderID.Valid)
	check.NoError(t, state.Compare(decimal.NullDecimal{}, 0, uuid.NullUUID{}))
}

func TestReplay_DetectsBrokenLedger(t *testing.T) {
	auctionID := uuid.New()
	a := uuid.New()

	gap := ledger(auctionID, []uuid.UUID{a}, "100", "150")
	gap[1].Sequence = 3
	_, err := Replay(gap)
	check.True(t, errors.Is(err, shared.ErrIntegrityViolation))

	descending := ledger(auctionID, []uuid.UUID{a}, "150", "100")
	_, err = Replay(descending)
	var integrity *shared.IntegrityError
	check.True(t, errors.As(err, &integrity))
	check.Equal(t, "amount[2]", integrity.Field)
}

func TestReplayState_Compare(t *testing.T) {
	auctionID := uuid.New()
	a, b := uuid.New(), uuid.New()
	state, err := Replay(ledger(auctionID, []uuid.UUID{a, b}, "10", "20"))
	assert.NoError(t, err)

	tests := []struct {
		name      string
		current   decimal.NullDecimal
		count     int
		highest   uuid.NullUUID
		wantField string
	}{
		{"count drift", decimal.NewNullDecimal(decimal.RequireFromString("20")), 3, uuid.NullUUID{UUID: b, Valid: true}, "bid_count"},
		{"price drift", decimal.NewNullDecimal(decimal.RequireFromString("25")), 2, uuid.NullUUID{UUID: b, Valid: true}, "current_bid"},
		{"missing price", decimal.NullDecimal{}, 2, uuid.NullUUID{UUID: b, Valid: true}, "current_bid"},
		{"bidder drift", decimal.NewNullDecimal(decimal.RequireFromString("20")), 2, uuid.NullUUID{UUID: a, Valid: true}, "highest_bidder_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := state.Compare(tt.current, tt.count, tt.highest)
			var integrity *shared.IntegrityError
			check.True(t, errors.As(err, &integrity))
			check.Equal(t, tt.wantField, integrity.Field)
		})
	}
}

func TestParseOrder(t *testing.T) {
	check.Equal(t, OrderDescending, ParseOrder("desc"))
	check.Equal(t, OrderAscending, ParseOrder("asc"))
	check.Equal(t, OrderAscending, ParseOrder(""))
	check.Equal(t, OrderAscending, ParseOrder("sideways"))
}
