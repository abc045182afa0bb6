package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	requestTimeout   = 10 * time.Second
	eventBufferSize  = 100
	defaultListLimit = 10
)

// WsHandler manages WebSocket connections and message routing
type WsHandler struct {
	clients        map[string]*WsClient // clientID -> Client
	clientsMu      sync.RWMutex
	eventChannels  map[string]chan outbound.Event // clientID -> local event channel
	channelsMu     sync.RWMutex
	upgrader       websocket.Upgrader
	auctionService inbound.AuctionService
	bidService     inbound.BidService
	broadcaster    outbound.Broadcaster
	logger         zerolog.Logger
}
type WsHandlerParams struct {
	Upgrader       websocket.Upgrader
	AuctionService inbound.AuctionService
	BidService     inbound.BidService
	Broadcaster    outbound.Broadcaster
	Logger         zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(params WsHandlerParams) *WsHandler {
	return &WsHandler{
		clients:        make(map[string]*WsClient),
		eventChannels:  make(map[string]chan outbound.Event),
		upgrader:       params.Upgrader,
		auctionService: params.AuctionService,
		bidService:     params.BidService,
		broadcaster:    params.Broadcaster,
		logger:         params.Logger.With().Str("component", "ws_handler").Logger(),
	}
}

// HandleWebSocket handles WebSocket connection upgrades
func (handler *WsHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.URL.Query().Get("user_id")
	if userIDStr == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		http.Error(w, "invalid user_id format", http.StatusBadRequest)
		return
	}

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		handler.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := NewClient(WsClientParams{
		UserID:  userID,
		Conn:    conn,
		Handler: handler,
		Logger:  handler.logger,
	})

	handler.registerClient(client)
	eventChan := handler.createEventChannel(client.id)

	// outbid and won notices follow the user rather than an auction
	if err := handler.broadcaster.SubscribeUser(client.ctx, userID, client.id, eventChan); err != nil {
		handler.logger.Error().Err(err).Str("client_id", client.id).Msg("Failed to subscribe client to user events")
	}

	client.Start()
	go handler.listenForClientEvents(client, eventChan)

	// Wait for client to disconnect
	go func() {
		<-client.ctx.Done()
		handler.unregisterClient(client)
	}()

	handler.logger.Info().Str("client_id", client.id).Str("user_id", client.userID.String()).Msg("WebSocket client connected")
}

// createEventChannel creates a local event channel for a client
func (handler *WsHandler) createEventChannel(clientID string) chan outbound.Event {
	handler.channelsMu.Lock()
	defer handler.channelsMu.Unlock()

	if eventChan, exists := handler.eventChannels[clientID]; exists {
		return eventChan
	}

	eventChan := make(chan outbound.Event, eventBufferSize)
	handler.eventChannels[clientID] = eventChan
	return eventChan
}

func (handler *WsHandler) getEventChannel(clientID string) chan outbound.Event {
	handler.channelsMu.RLock()
	defer handler.channelsMu.RUnlock()

	return handler.eventChannels[clientID]
}

func (handler *WsHandler) registerClient(client *WsClient) {
	handler.clientsMu.Lock()
	defer handler.clientsMu.Unlock()
	handler.clients[client.id] = client
	handler.logger.Debug().Str("client_id", client.id).Int("total_clients", len(handler.clients)).Msg("Client registered")
}

func (handler *WsHandler) unregisterClient(client *WsClient) {
	if err := handler.broadcaster.Release(context.Background(), client.id); err != nil {
		handler.logger.Error().Err(err).Str("client_id", client.id).Msg("Failed to release client subscriptions")
	}

	client.Stop()

	handler.channelsMu.Lock()
	delete(handler.eventChannels, client.id)
	handler.channelsMu.Unlock()

	handler.clientsMu.Lock()
	delete(handler.clients, client.id)
	total := len(handler.clients)
	handler.clientsMu.Unlock()

	handler.logger.Info().Str("client_id", client.id).Str("user_id", client.userID.String()).Int("total_clients", total).Msg("WebSocket client disconnected")
}

// listenForClientEvents forwards broadcast events to the websocket
func (handler *WsHandler) listenForClientEvents(client *WsClient, eventChan chan outbound.Event) {
	for {
		select {
		case event := <-eventChan:
			if err := client.Send(NewEventMessage(event)); err != nil {
				handler.logger.Warn().Err(err).
					Str("client_id", client.id).
					Str("event_type", string(event.Type)).
					Msg("Failed to send event to WebSocket client")
			}
		case <-client.ctx.Done():
			return
		}
	}
}

func (handler *WsHandler) HandleClientMessage(client *WsClient, msg *ClientMessage) error {
	ctx, cancel := context.WithTimeout(client.ctx, requestTimeout)
	defer cancel()

	switch msg.Type {
	case MessageTypeSubscribe:
		return handler.handleSubscribe(ctx, client, msg)
	case MessageTypeUnsubscribe:
		return handler.handleUnsubscribe(ctx, client, msg)
	case MessageTypePlaceBid:
		return handler.handlePlaceBid(ctx, client, msg)
	case MessageTypeGetAuction:
		return handler.handleGetAuction(ctx, client, msg)
	case MessageTypeListAuctions:
		return handler.handleListAuctions(ctx, client, msg)
	default:
		handler.logger.Warn().Str("client_id", client.id).Str("message_type", string(msg.Type)).Msg("Unknown message type from client")
		return ErrUnknownMessageType
	}
}

// GetConnectedClients returns the number of connected clients
func (handler *WsHandler) GetConnectedClients() int {
	handler.clientsMu.RLock()
	defer handler.clientsMu.RUnlock()
	return len(handler.clients)
}

// CloseAll disconnects every client; hijacked connections outlive http.Server.Shutdown
func (handler *WsHandler) CloseAll() {
	handler.clientsMu.RLock()
	clients := make([]*WsClient, 0, len(handler.clients))
	for _, client := range handler.clients {
		clients = append(clients, client)
	}
	handler.clientsMu.RUnlock()

	for _, client := range clients {
		client.Stop()
	}
}

func (handler *WsHandler) handleSubscribe(ctx context.Context, client *WsClient, msg *ClientMessage) error {
	eventChan := handler.getEventChannel(client.id)
	if eventChan == nil {
		return ErrClientEventChannelNotFound
	}

	// reject unknown auctions before holding a redis subscription for them
	current, err := handler.auctionService.GetAuction(ctx, *msg.AuctionID)
	if err != nil {
		return err
	}

	if err := handler.broadcaster.Subscribe(ctx, *msg.AuctionID, client.id, eventChan); err != nil {
		handler.logger.Error().Err(err).Str("client_id", client.id).Str("auction_id", msg.AuctionID.String()).Msg("Failed to subscribe to auction")
		return err
	}

	response := auctionMessage(current)
	response.Data["subscription"] = "subscribed"

	handler.logger.Debug().Str("client_id", client.id).Str("auction_id", msg.AuctionID.String()).Msg("Client subscribed to auction")
	return client.Send(response)
}

func (handler *WsHandler) handleUnsubscribe(ctx context.Context, client *WsClient, msg *ClientMessage) error {
	if err := handler.broadcaster.Unsubscribe(ctx, *msg.AuctionID, client.id); err != nil {
		return err
	}

	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.AuctionID = msg.AuctionID
	response.Data["subscription"] = "unsubscribed"

	handler.logger.Debug().Str("client_id", client.id).Str("auction_id", msg.AuctionID.String()).Msg("Client unsubscribed from auction")
	return client.Send(response)
}

// handlePlaceBid places a bid as the connected user. The accepted bid reaches
// every subscriber, this client included, through the bid_placed event.
func (handler *WsHandler) handlePlaceBid(ctx context.Context, client *WsClient, msg *ClientMessage) error {
	amount, err := msg.Amount()
	if err != nil {
		return err
	}

	result, err := handler.bidService.PlaceBid(ctx, inbound.PlaceBidRequest{
		AuctionID: *msg.AuctionID,
		BidderID:  client.userID,
		Amount:    amount,
	})
	if err != nil {
		return err
	}

	return client.Send(auctionMessage(result.Auction))
}

func (handler *WsHandler) handleGetAuction(ctx context.Context, client *WsClient, msg *ClientMessage) error {
	current, err := handler.auctionService.GetAuction(ctx, *msg.AuctionID)
	if err != nil {
		return err
	}
	return client.Send(auctionMessage(current))
}

func (handler *WsHandler) handleListAuctions(ctx context.Context, client *WsClient, msg *ClientMessage) error {
	limit := msg.intField("limit")
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := msg.intField("offset")
	if offset < 0 {
		offset = 0
	}
	category, _ := msg.Data["category_id"].(string)

	page, err := handler.auctionService.ListActiveAuctions(ctx, inbound.ListAuctionsRequest{
		CategoryID: category,
		Page:       offset/limit + 1,
		PageSize:   limit,
	})
	if err != nil {
		return err
	}

	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.Data["auctions"] = page.Auctions
	response.Data["count"] = len(page.Auctions)
	response.Data["total"] = page.Total
	return client.Send(response)
}

func auctionMessage(a *auction.Auction) *ServerMessage {
	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.AuctionID = &a.ID
	response.Data["auction"] = a
	return response
}
