package shared

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain-specific errors
var (
	// Request errors
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")

	// Auction errors
	ErrAuctionNotFound      = fmt.Errorf("auction %w", ErrNotFound)
	ErrAuctionNotActive     = errors.New("auction is not active")
	ErrActiveAuctionExists  = fmt.Errorf("%w: product already has an active auction", ErrInvalidParameters)
	ErrUnsupportedDuration  = fmt.Errorf("%w: unsupported auction duration", ErrInvalidParameters)
	ErrInvalidStartingPrice = fmt.Errorf("%w: starting price must not be negative", ErrInvalidParameters)
	ErrInvalidReservePrice  = fmt.Errorf("%w: reserve price must be at least the starting price", ErrInvalidParameters)
	ErrInvalidBuyNowPrice   = fmt.Errorf("%w: buy now price must exceed the starting price and be at least the reserve price", ErrInvalidParameters)
	ErrInvalidMoneyScale    = fmt.Errorf("%w: amounts carry at most two decimal places", ErrInvalidParameters)
	ErrHasBids              = errors.New("auction already has bids")

	// Bid errors
	ErrSelfBid          = errors.New("seller cannot bid on own auction")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrBidAmountInvalid = fmt.Errorf("%w: bid amount must be greater than 0", ErrInvalidParameters)

	// Product errors
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrProductNotAvailable = fmt.Errorf("%w: product is not available for auction", ErrInvalidParameters)

	// Concurrency and storage errors
	ErrBusy               = errors.New("auction is busy, retry later")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrIntegrityViolation = errors.New("ledger integrity violation")
)

// BidTooLowError carries the smallest amount the auction would accept.
type BidTooLowError struct {
	MinimumAmount decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%s: minimum acceptable amount is %s", ErrBidTooLow, e.MinimumAmount.StringFixed(2))
}

func (e *BidTooLowError) Unwrap() error {
	return ErrBidTooLow
}

// IntegrityError describes how the ledger replay diverged from the stored auction.
type IntegrityError struct {
	Field    string
	Stored   string
	Replayed string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s stored=%s replayed=%s", ErrIntegrityViolation, e.Field, e.Stored, e.Replayed)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrityViolation
}
