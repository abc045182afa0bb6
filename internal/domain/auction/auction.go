package auction

import (
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the current status of an auction
type Status string

const (
	StatusActive        Status = "active"
	StatusSold          Status = "sold"
	StatusReserveNotMet Status = "reserve_not_met"
	StatusCancelled     Status = "cancelled"
)

// IsTerminal returns true for statuses an auction never leaves
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSold, StatusReserveNotMet, StatusCancelled:
		return true
	}
	return false
}

// Auction represents an auction for a product listing
type Auction struct {
	ID              uuid.UUID           `json:"id" db:"id"`
	ProductID       uuid.UUID           `json:"product_id" db:"product_id"`
	SellerID        uuid.UUID           `json:"seller_id" db:"seller_id"`
	CategoryID      string              `json:"category_id,omitempty" db:"category_id"`
	StartingPrice   decimal.Decimal     `json:"starting_price" db:"starting_price"`
	ReservePrice    decimal.NullDecimal `json:"reserve_price" db:"reserve_price"`
	BuyNowPrice     decimal.NullDecimal `json:"buy_now_price" db:"buy_now_price"`
	CurrentBid      decimal.NullDecimal `json:"current_bid" db:"current_bid"`
	HighestBidderID uuid.NullUUID       `json:"highest_bidder_id" db:"highest_bidder_id"`
	BidCount        int                 `json:"bid_count" db:"bid_count"`
	StartTime       time.Time           `json:"start_time" db:"start_time"`
	EndTime         time.Time           `json:"end_time" db:"end_time"`
	Status          Status              `json:"status" db:"status"`
	IntegrityHold   bool                `json:"integrity_hold" db:"integrity_hold"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// New creates an active auction for the product. Terms must already be validated.
func New(product *shared.Product, terms Terms, now time.Time) *Auction {
	return &Auction{
		ID:            uuid.New(),
		ProductID:     product.ID,
		SellerID:      product.SellerID,
		CategoryID:    product.CategoryID,
		StartingPrice: terms.StartingPrice,
		ReservePrice:  terms.ReservePrice,
		BuyNowPrice:   terms.BuyNowPrice,
		StartTime:     now,
		EndTime:       now.Add(terms.Duration),
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsActive returns true if the auction is currently active
func (a *Auction) IsActive() bool {
	return a.Status == StatusActive
}

// HasBids returns true once a bid has been accepted
func (a *Auction) HasBids() bool {
	return a.BidCount > 0
}

// IsDue reports whether an active auction has reached its end time
func (a *Auction) IsDue(now time.Time) bool {
	return a.IsActive() && !now.Before(a.EndTime)
}

// Floor returns the minimum amount the next bid must reach
func (a *Auction) Floor(minIncrement decimal.Decimal) decimal.Decimal {
	if a.CurrentBid.Valid {
		return a.CurrentBid.Decimal.Add(minIncrement)
	}
	return a.StartingPrice
}

// ReserveMet reports whether the current bid satisfies the reserve, if any
func (a *Auction) ReserveMet() bool {
	if !a.ReservePrice.Valid {
		return true
	}
	return a.CurrentBid.Valid && a.CurrentBid.Decimal.GreaterThanOrEqual(a.ReservePrice.Decimal)
}

// Outcome returns the terminal status the auction settles into at expiry
func (a *Auction) Outcome() Status {
	switch {
	case !a.HasBids():
		return StatusCancelled
	case !a.ReserveMet():
		return StatusReserveNotMet
	default:
		return StatusSold
	}
}

// Close moves a due auction into its terminal status and returns it
func (a *Auction) Close(now time.Time) Status {
	a.Status = a.Outcome()
	a.UpdatedAt = now
	return a.Status
}

// Cancel withdraws the auction on behalf of the seller
func (a *Auction) Cancel(requesterID uuid.UUID, now time.Time) error {
	if requesterID != a.SellerID {
		return shared.ErrForbidden
	}
	if !a.IsActive() {
		return shared.ErrAuctionNotActive
	}
	if a.HasBids() {
		return shared.ErrHasBids
	}
	a.Status = StatusCancelled
	a.UpdatedAt = now
	return nil
}

// WinnerID returns the highest bidder of a sold auction
func (a *Auction) WinnerID() *uuid.UUID {
	if a.Status != StatusSold || !a.HighestBidderID.Valid {
		return nil
	}
	id := a.HighestBidderID.UUID
	return &id
}

// EndResult summarises a closed auction
func (a *Auction) EndResult() *shared.AuctionEndResult {
	result := &shared.AuctionEndResult{
		AuctionID: a.ID,
		WinnerID:  a.WinnerID(),
		Status:    string(a.Status),
	}
	if result.WinnerID != nil {
		price := a.CurrentBid.Decimal
		result.FinalPrice = &price
	}
	return result
}

// ListFilter selects active auctions for listing
type ListFilter struct {
	CategoryID string
	Page       int
	PageSize   int
	Now        time.Time
}

// Offset returns the row offset of the requested page
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
