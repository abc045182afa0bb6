package broadcaster

import (
	"context"
	"time"

	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
)

// RedisNotifier turns notification intents into pub/sub events. Auction-wide
// events go to the auction channel, personal ones to the user channel.
type RedisNotifier struct {
	broadcaster *RedisBroadcaster
}

func NewNotifier(broadcaster *RedisBroadcaster) *RedisNotifier {
	return &RedisNotifier{broadcaster: broadcaster}
}

func (n *RedisNotifier) BidAccepted(ctx context.Context, auctionID, bidderID uuid.UUID, amount string, bidCount int) error {
	return n.broadcaster.Publish(ctx, auctionID, newEvent(outbound.EventTypeBidPlaced, auctionID, map[string]interface{}{
		"bidder_id": bidderID.String(),
		"amount":    amount,
		"bid_count": bidCount,
	}))
}

func (n *RedisNotifier) AuctionOutbid(ctx context.Context, auctionID, previousBidderID uuid.UUID) error {
	return n.broadcaster.PublishUser(ctx, previousBidderID, newEvent(outbound.EventTypeAuctionOutbid, auctionID, map[string]interface{}{
		"user_id": previousBidderID.String(),
	}))
}

func (n *RedisNotifier) AuctionWon(ctx context.Context, auctionID, winnerID uuid.UUID) error {
	return n.broadcaster.PublishUser(ctx, winnerID, newEvent(outbound.EventTypeAuctionWon, auctionID, map[string]interface{}{
		"user_id": winnerID.String(),
	}))
}

func (n *RedisNotifier) AuctionEnded(ctx context.Context, auctionID uuid.UUID, outcome string) error {
	return n.broadcaster.Publish(ctx, auctionID, newEvent(outbound.EventTypeAuctionEnded, auctionID, map[string]interface{}{
		"outcome": outcome,
	}))
}

func newEvent(eventType outbound.EventType, auctionID uuid.UUID, data map[string]interface{}) outbound.Event {
	return outbound.Event{
		Type:      eventType,
		AuctionID: auctionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
}
