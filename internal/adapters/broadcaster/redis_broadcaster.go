package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AuctionChannel is the pub/sub channel carrying events of one auction
func AuctionChannel(auctionID uuid.UUID) string {
	return fmt.Sprintf("auction:%s", auctionID.String())
}

// UserChannel is the pub/sub channel carrying events addressed to one user
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID.String())
}

// RedisBroadcaster implements the broadcaster interface using Redis pub/sub.
// The event channel passed on subscription stays owned by the caller.
type RedisBroadcaster struct {
	client         *redis.Client
	subscribers    map[string]chan outbound.Event // clientID -> local channel
	pubsubs        map[string]*redis.PubSub       // clientID -> pubsub instance
	clientChannels map[string]map[string]bool     // clientID -> channel name -> subscribed
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	logger         zerolog.Logger
}
type RedisBroadcasterParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewBroadcaster(params RedisBroadcasterParams) *RedisBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	broadcaster := &RedisBroadcaster{
		client:         params.RedisClient,
		subscribers:    make(map[string]chan outbound.Event),
		pubsubs:        make(map[string]*redis.PubSub),
		clientChannels: make(map[string]map[string]bool),
		ctx:            ctx,
		cancel:         cancel,
		logger:         params.Logger.With().Str("component", "redis_broadcaster").Logger(),
	}

	return broadcaster
}

// Subscribe subscribes a client to events for a specific auction
func (r *RedisBroadcaster) Subscribe(ctx context.Context, auctionID uuid.UUID, clientID string, eventChan chan outbound.Event) error {
	return r.subscribe(ctx, clientID, AuctionChannel(auctionID), eventChan)
}

// SubscribeUser subscribes a client to the events addressed to a user
func (r *RedisBroadcaster) SubscribeUser(ctx context.Context, userID uuid.UUID, clientID string, eventChan chan outbound.Event) error {
	return r.subscribe(ctx, clientID, UserChannel(userID), eventChan)
}

func (r *RedisBroadcaster) subscribe(ctx context.Context, clientID, channelName string, eventChan chan outbound.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check if client is already subscribed to this channel
	if r.clientChannels[clientID] != nil && r.clientChannels[clientID][channelName] {
		r.logger.Debug().
			Str("client_id", clientID).
			Str("channel_name", channelName).
			Msg("Client already subscribed to channel")
		return nil
	}

	// Store the event channel if this is the first subscription
	if r.subscribers[clientID] == nil {
		r.subscribers[clientID] = eventChan
	}

	// Get or create pubsub connection for this client
	pubsub, exists := r.pubsubs[clientID]
	if !exists {
		pubsub = r.client.Subscribe(ctx)
		r.pubsubs[clientID] = pubsub

		// Start goroutine to listen for Redis messages and forward to local channel
		go r.listenForRedisMessages(pubsub, clientID, r.subscribers[clientID])
	}

	if err := pubsub.Subscribe(ctx, channelName); err != nil {
		r.logger.Error().Err(err).Str("client_id", clientID).Str("channel_name", channelName).Msg("Failed to subscribe to Redis channel")
		return fmt.Errorf("failed to subscribe to %s: %w", channelName, err)
	}

	if r.clientChannels[clientID] == nil {
		r.clientChannels[clientID] = make(map[string]bool)
	}
	r.clientChannels[clientID][channelName] = true

	r.logger.Info().
		Str("client_id", clientID).
		Str("channel_name", channelName).
		Msg("Client subscribed via Redis")
	return nil
}

// Unsubscribe unsubscribes a client from events for a specific auction
func (r *RedisBroadcaster) Unsubscribe(ctx context.Context, auctionID uuid.UUID, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	channelName := AuctionChannel(auctionID)
	channels, exists := r.clientChannels[clientID]
	if !exists || !channels[channelName] {
		return nil
	}
	delete(channels, channelName)

	// If no more channels, clean up the client entry
	if len(channels) == 0 {
		r.releaseLocked(clientID)
	} else if pubsub, exists := r.pubsubs[clientID]; exists {
		if err := pubsub.Unsubscribe(ctx, channelName); err != nil {
			r.logger.Error().Err(err).Str("client_id", clientID).Str("auction_id", auctionID.String()).Msg("Error unsubscribing from Redis channel")
			return fmt.Errorf("failed to unsubscribe from %s: %w", channelName, err)
		}
	}

	r.logger.Info().
		Str("client_id", clientID).
		Str("auction_id", auctionID.String()).
		Msg("Client unsubscribed from auction")
	return nil
}

// Release drops every subscription of a client
func (r *RedisBroadcaster) Release(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.releaseLocked(clientID)
	return nil
}

func (r *RedisBroadcaster) releaseLocked(clientID string) {
	delete(r.clientChannels, clientID)
	delete(r.subscribers, clientID)

	// Close Redis pubsub connection
	if pubsub, exists := r.pubsubs[clientID]; exists {
		if err := pubsub.Close(); err != nil {
			r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
		}
		delete(r.pubsubs, clientID)
	}
}

// Publish publishes an event to all subscribers of an auction via Redis
func (r *RedisBroadcaster) Publish(ctx context.Context, auctionID uuid.UUID, event outbound.Event) error {
	return r.publish(ctx, AuctionChannel(auctionID), event)
}

// PublishUser publishes an event to the subscribers of a user channel
func (r *RedisBroadcaster) PublishUser(ctx context.Context, userID uuid.UUID, event outbound.Event) error {
	return r.publish(ctx, UserChannel(userID), event)
}

func (r *RedisBroadcaster) publish(ctx context.Context, channelName string, event outbound.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Publish to Redis
	result := r.client.Publish(ctx, channelName, eventJSON)
	if err := result.Err(); err != nil {
		r.logger.Error().Err(err).Str("channel_name", channelName).Msg("Failed to publish to Redis")
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}

	r.logger.Debug().
		Str("event_type", string(event.Type)).
		Str("channel_name", channelName).
		Int64("subscriber_count", result.Val()).
		Msg("Published event")

	return nil
}

// listenForRedisMessages listens for Redis messages and forwards them to the local channel
func (r *RedisBroadcaster) listenForRedisMessages(pubsub *redis.PubSub, clientID string, localChan chan outbound.Event) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error().Interface("panic", err).Str("client_id", clientID).Msg("Redis message listener panic for client")
		}
	}()

	ch := pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				r.logger.Debug().Str("client_id", clientID).Msg("Redis channel closed for client")
				return
			}

			var event outbound.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to unmarshal Redis message for client")
				continue
			}

			select {
			case localChan <- event:
			default:
				r.logger.Warn().Str("client_id", clientID).Msg("Local channel full for client, dropping event")
			}

		case <-r.ctx.Done():
			r.logger.Debug().Str("client_id", clientID).Msg("Redis broadcaster context cancelled for client")
			return
		}
	}
}

// Close stops all listeners. The Redis client is left open for its owner.
func (r *RedisBroadcaster) Close() error {
	r.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	for clientID := range r.pubsubs {
		r.releaseLocked(clientID)
	}

	return nil
}

func (r *RedisBroadcaster) IsSubscribed(ctx context.Context, auctionID uuid.UUID, clientID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels, exists := r.clientChannels[clientID]
	if !exists {
		return false
	}

	return channels[AuctionChannel(auctionID)]
}
