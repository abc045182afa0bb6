package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ExpirationsKey is the sorted set of active auctions scored by end time in milliseconds
const ExpirationsKey = "auction:expirations"

// ExpiryIndex keeps auction end times in a Redis sorted set
type ExpiryIndex struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

type ExpiryIndexParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewExpiryIndex(params ExpiryIndexParams) *ExpiryIndex {
	return &ExpiryIndex{
		client: params.RedisClient,
		key:    ExpirationsKey,
		logger: params.Logger.With().Str("component", "expiry_index").Logger(),
	}
}

// Schedule adds an auction to the expiration schedule
func (i *ExpiryIndex) Schedule(ctx context.Context, auctionID uuid.UUID, endTime time.Time) error {
	err := i.client.ZAdd(ctx, i.key, redis.Z{
		Score:  float64(endTime.UnixMilli()),
		Member: auctionID.String(),
	}).Err()

	if err != nil {
		i.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to schedule auction")
		return fmt.Errorf("failed to schedule auction: %w", err)
	}

	i.logger.Debug().
		Str("auction_id", auctionID.String()).
		Time("end_time", endTime).
		Msg("Auction scheduled for expiration")

	return nil
}

// Due returns up to limit auctions whose end time is at or before now
func (i *ExpiryIndex) Due(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	members, err := i.client.ZRangeByScore(ctx, i.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: int64(limit),
	}).Result()

	if err != nil {
		return nil, fmt.Errorf("failed to get expired auctions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		auctionID, err := uuid.Parse(member)
		if err != nil {
			i.logger.Error().Err(err).Str("auction_id", member).Msg("Invalid auction ID, dropping from schedule")
			i.client.ZRem(ctx, i.key, member)
			continue
		}
		ids = append(ids, auctionID)
	}

	return ids, nil
}

// Remove drops an auction from the schedule
func (i *ExpiryIndex) Remove(ctx context.Context, auctionID uuid.UUID) error {
	if err := i.client.ZRem(ctx, i.key, auctionID.String()).Err(); err != nil {
		return fmt.Errorf("failed to unschedule auction: %w", err)
	}
	return nil
}
