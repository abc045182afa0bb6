package rest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs
type CreateAuctionRequest struct {
	ProductID     uuid.UUID           `json:"product_id" binding:"required"`
	StartingPrice decimal.Decimal     `json:"starting_price"`
	ReservePrice  decimal.NullDecimal `json:"reserve_price"`
	BuyNowPrice   decimal.NullDecimal `json:"buy_now_price"`
	// Duration accepts Go durations ("72h") or whole days ("3d")
	Duration string `json:"duration" binding:"required"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type ListAuctionsQuery struct {
	CategoryID string `form:"category_id"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1"`
}

type ListBidsQuery struct {
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ParseDuration reads an auction length as a Go duration or a number of days
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: invalid duration %q", shared.ErrInvalidParameters, raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid duration %q", shared.ErrInvalidParameters, raw)
	}
	return d, nil
}
