package shared

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionEndResult represents the result of closing an auction
type AuctionEndResult struct {
	AuctionID  uuid.UUID
	WinnerID   *uuid.UUID
	FinalPrice *decimal.Decimal
	Status     string
	// Closed is false when the auction was already terminal or not yet due
	Closed bool
}
