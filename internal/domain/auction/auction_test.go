package auction

import (
	"errors"
	"testing"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func TestAuction_Outcome(t *testing.T) {
	withBids := func(current string, count int, reserve string) Auction {
		a := newTestAuction("100")
		if current != "" {
			a.CurrentBid = decimal.NewNullDecimal(dec(current))
			a.HighestBidderID = uuid.NullUUID{UUID: bidderA, Valid: true}
		}
		a.BidCount = count
		if reserve != "" {
			a.ReservePrice = decimal.NewNullDecimal(dec(reserve))
		}
		return a
	}

	tests := []struct {
		name     string
		auction  Auction
		expected Status
	}{
		{"no bids", withBids("", 0, ""), StatusCancelled},
		{"no bids with reserve", withBids("", 0, "300"), StatusCancelled},
		{"reserve not met", withBids("250", 3, "300"), StatusReserveNotMet},
		{"reserve met exactly", withBids("300", 3, "300"), StatusSold},
		{"no reserve", withBids("120", 1, ""), StatusSold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.expected, tt.auction.Outcome())
		})
	}
}

func TestAuction_CloseSetsStatus(t *testing.T) {
	a := newTestAuction("100")
	a.ReservePrice = decimal.NewNullDecimal(dec("300"))
	a.CurrentBid = decimal.NewNullDecimal(dec("250"))
	a.HighestBidderID = uuid.NullUUID{UUID: bidderA, Valid: true}
	a.BidCount = 3

	closedAt := a.EndTime.Add(time.Second)
	check.True(t, a.IsDue(closedAt))
	check.Equal(t, StatusReserveNotMet, a.Close(closedAt))
	check.Equal(t, closedAt, a.UpdatedAt)
	check.False(t, a.IsDue(closedAt))
	check.Nil(t, a.WinnerID())
}

func TestAuction_IsDue(t *testing.T) {
	a := newTestAuction("1")
	check.False(t, a.IsDue(a.EndTime.Add(-time.Millisecond)))
	check.True(t, a.IsDue(a.EndTime))

	a.Status = StatusCancelled
	check.False(t, a.IsDue(a.EndTime.Add(time.Hour)))
}

func TestAuction_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		bidCount  int
		status    Status
		requester uuid.UUID
		wantErr   error
	}{
		{"seller without bids", 0, StatusActive, sellerID, nil},
		{"seller with bids", 2, StatusActive, sellerID, shared.ErrHasBids},
		{"non seller without bids", 0, StatusActive, bidderA, shared.ErrForbidden},
		{"non seller with bids", 1, StatusActive, bidderA, shared.ErrForbidden},
		{"already sold", 1, StatusSold, sellerID, shared.ErrAuctionNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuction("10")
			a.BidCount = tt.bidCount
			a.Status = tt.status

			err := a.Cancel(tt.requester, t0)
			if tt.wantErr == nil {
				check.NoError(t, err)
				check.Equal(t, StatusCancelled, a.Status)
				return
			}
			check.True(t, errors.Is(err, tt.wantErr))
			check.Equal(t, tt.status, a.Status)
		})
	}
}

func TestAuction_EndResult(t *testing.T) {
	a := newTestAuction("10")
	a.CurrentBid = decimal.NewNullDecimal(dec("42.50"))
	a.HighestBidderID = uuid.NullUUID{UUID: bidderB, Valid: true}
	a.BidCount = 4
	a.Status = StatusSold

	result := a.EndResult()
	check.NotNil(t, result.WinnerID)
	check.Equal(t, bidderB, *result.WinnerID)
	check.Equal(t, "42.50", result.FinalPrice.StringFixed(2))
	check.Equal(t, string(StatusSold), result.Status)
}

func TestTerms_Validate(t *testing.T) {
	day := 24 * time.Hour
	null := decimal.NullDecimal{}
	some := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

	tests := []struct {
		name    string
		terms   Terms
		wantErr error
	}{
		{"minimal", Terms{StartingPrice: dec("0"), Duration: day}, nil},
		{"full", Terms{StartingPrice: dec("100"), ReservePrice: some("300"), BuyNowPrice: some("500"), Duration: 7 * day}, nil},
		{"reserve equals starting", Terms{StartingPrice: dec("100"), ReservePrice: some("100"), Duration: day}, nil},
		{"buy now equals reserve", Terms{StartingPrice: dec("100"), ReservePrice: some("300"), BuyNowPrice: some("300"), Duration: day}, nil},
		{"negative starting", Terms{StartingPrice: dec("-1"), Duration: day}, shared.ErrInvalidStartingPrice},
		{"reserve below starting", Terms{StartingPrice: dec("100"), ReservePrice: some("99.99"), Duration: day}, shared.ErrInvalidReservePrice},
		{"buy now equals starting", Terms{StartingPrice: dec("100"), BuyNowPrice: some("100"), Duration: day}, shared.ErrInvalidBuyNowPrice},
		{"buy now below reserve", Terms{StartingPrice: dec("100"), ReservePrice: some("300"), BuyNowPrice: some("200"), Duration: day}, shared.ErrInvalidBuyNowPrice},
		{"three decimals", Terms{StartingPrice: dec("1.005"), ReservePrice: null, Duration: day}, shared.ErrInvalidMoneyScale},
		{"arbitrary duration", Terms{StartingPrice: dec("1"), Duration: 36 * time.Hour}, shared.ErrUnsupportedDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.terms.Validate(DefaultDurations)
			if tt.wantErr == nil {
				check.NoError(t, err)
				return
			}
			check.True(t, errors.Is(err, tt.wantErr))
			check.True(t, errors.Is(err, shared.ErrInvalidParameters))
		})
	}
}

func TestNew_CopiesProduct(t *testing.T) {
	product := &shared.Product{ID: uuid.New(), SellerID: sellerID, CategoryID: "watches", Status: shared.ProductStatusAvailable}
	a := New(product, Terms{StartingPrice: dec("5"), Duration: 3 * 24 * time.Hour}, t0)

	check.Equal(t, product.ID, a.ProductID)
	check.Equal(t, sellerID, a.SellerID)
	check.Equal(t, "watches", a.CategoryID)
	check.Equal(t, t0.Add(72*time.Hour), a.EndTime)
	check.Equal(t, StatusActive, a.Status)
	check.False(t, a.HasBids())
}
