package outbound

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_broadcaster.go -package=mocks . Notifier

// EventType represents the type of event being broadcasted
type EventType string

const (
	EventTypeBidPlaced     EventType = "bid.placed"
	EventTypeAuctionOutbid EventType = "auction.outbid"
	EventTypeAuctionWon    EventType = "auction.won"
	EventTypeAuctionEnded  EventType = "auction.ended"
	EventTypeError         EventType = "error"
)

// Event represents a broadcast event
type Event struct {
	Type      EventType              `json:"type"`
	AuctionID uuid.UUID              `json:"auction_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// Notifier receives fire-and-forget intents about auction state changes.
// Delivery is at-least-once; implementations must tolerate duplicates.
type Notifier interface {
	// BidAccepted announces the new price to everyone watching the auction
	BidAccepted(ctx context.Context, auctionID, bidderID uuid.UUID, amount string, bidCount int) error

	// AuctionOutbid tells the previous highest bidder they were overtaken
	AuctionOutbid(ctx context.Context, auctionID, previousBidderID uuid.UUID) error

	// AuctionWon tells the winner the auction closed in their favour
	AuctionWon(ctx context.Context, auctionID, winnerID uuid.UUID) error

	// AuctionEnded announces the terminal outcome
	AuctionEnded(ctx context.Context, auctionID uuid.UUID, outcome string) error
}

// Broadcaster defines the interface for live event subscriptions
type Broadcaster interface {
	// Subscribe subscribes a client to events for a specific auction
	// When a client subscribes to multiple auctions, all events are delivered to the same channel
	Subscribe(ctx context.Context, auctionID uuid.UUID, clientID string, eventChan chan Event) error

	// SubscribeUser delivers events addressed to a user (outbid, won) to the client channel
	SubscribeUser(ctx context.Context, userID uuid.UUID, clientID string, eventChan chan Event) error

	// Unsubscribe unsubscribes a client from events for a specific auction
	Unsubscribe(ctx context.Context, auctionID uuid.UUID, clientID string) error

	// Release drops every subscription a client holds
	Release(ctx context.Context, clientID string) error

	// Publish publishes an event to all subscribers of an auction
	Publish(ctx context.Context, auctionID uuid.UUID, event Event) error

	// IsSubscribed checks if a client is subscribed to an auction
	IsSubscribed(ctx context.Context, auctionID uuid.UUID, clientID string) bool
}
