package auction

import (
	"fmt"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 2

// DefaultDurations are the auction lengths offered when none are configured
var DefaultDurations = []time.Duration{
	24 * time.Hour,
	3 * 24 * time.Hour,
	5 * 24 * time.Hour,
	7 * 24 * time.Hour,
	10 * 24 * time.Hour,
}

// Terms are the seller-chosen parameters of a new auction
type Terms struct {
	StartingPrice decimal.Decimal
	ReservePrice  decimal.NullDecimal
	BuyNowPrice   decimal.NullDecimal
	Duration      time.Duration
}

// ValidateAmount checks that a money value fits the engine's precision
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(monetaryPrecision)) {
		return fmt.Errorf("%w: %s", shared.ErrInvalidMoneyScale, amount.String())
	}
	return nil
}

// Validate checks price ordering, precision and the duration policy
func (t Terms) Validate(supported []time.Duration) error {
	if t.StartingPrice.IsNegative() {
		return shared.ErrInvalidStartingPrice
	}
	if err := ValidateAmount(t.StartingPrice); err != nil {
		return err
	}

	if t.ReservePrice.Valid {
		if err := ValidateAmount(t.ReservePrice.Decimal); err != nil {
			return err
		}
		if t.ReservePrice.Decimal.LessThan(t.StartingPrice) {
			return shared.ErrInvalidReservePrice
		}
	}

	if t.BuyNowPrice.Valid {
		if err := ValidateAmount(t.BuyNowPrice.Decimal); err != nil {
			return err
		}
		if !t.BuyNowPrice.Decimal.GreaterThan(t.StartingPrice) {
			return shared.ErrInvalidBuyNowPrice
		}
		if t.ReservePrice.Valid && t.BuyNowPrice.Decimal.LessThan(t.ReservePrice.Decimal) {
			return shared.ErrInvalidBuyNowPrice
		}
	}

	for _, d := range supported {
		if d == t.Duration {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrUnsupportedDuration, t.Duration)
}
