package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"troffee-auction-engine/internal/config"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 100
)

type WsClient struct {
	id         string
	userID     uuid.UUID
	conn       *websocket.Conn
	sendChan   chan *ServerMessage
	ctx        context.Context
	cancel     context.CancelFunc
	handler    *WsHandler
	workerPool *pond.WorkerPool
	stopped    bool
	mu         sync.Mutex
	logger     zerolog.Logger
}
type WsClientParams struct {
	UserID  uuid.UUID
	Conn    *websocket.Conn
	Handler *WsHandler
	Logger  zerolog.Logger
}

// NewClient creates a new WebSocket client
func NewClient(params WsClientParams) *WsClient {
	ctx, cancel := context.WithCancel(context.Background())

	pool := pond.New(
		config.WSMaxWorkers,
		config.WSMaxCapacity,
		pond.Strategy(pond.Balanced()),
	)
	id := uuid.New().String()
	return &WsClient{
		id:         id,
		userID:     params.UserID,
		conn:       params.Conn,
		sendChan:   make(chan *ServerMessage, sendBufferSize),
		ctx:        ctx,
		cancel:     cancel,
		handler:    params.Handler,
		workerPool: pool,
		logger: params.Logger.With().
			Str("client_id", id).
			Str("user_id", params.UserID.String()).
			Logger(),
	}
}

func (client *WsClient) Start() {
	go client.messageSender()
	go client.messageReceiver()
}

// Stop closes the connection and waits for in-flight requests
func (client *WsClient) Stop() {
	client.mu.Lock()
	if client.stopped {
		client.mu.Unlock()
		return
	}
	client.stopped = true
	client.mu.Unlock()

	client.cancel()
	client.conn.Close()
	client.workerPool.StopAndWait()
}

// Send queues a message for the client
func (client *WsClient) Send(msg *ServerMessage) error {
	client.mu.Lock()
	stopped := client.stopped
	client.mu.Unlock()
	if stopped {
		return ErrClientStopped
	}

	select {
	case client.sendChan <- msg:
		return nil
	case <-client.ctx.Done():
		return ErrClientStopped
	case <-time.After(100 * time.Millisecond):
		return ErrSendBufferFull
	}
}

func (client *WsClient) messageSender() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-client.sendChan:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteJSON(msg); err != nil {
				client.logger.Error().Err(err).Msg("Failed to send message to client")
				client.cancel()
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				client.logger.Debug().Err(err).Msg("Ping failed")
				client.cancel()
				return
			}
		case <-client.ctx.Done():
			return
		}
	}
}

func (client *WsClient) messageReceiver() {
	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				client.logger.Error().Err(err).Msg("WebSocket read error for client")
			} else {
				client.logger.Info().Str("error", err.Error()).Msg("WebSocket connection closed for client")
			}
			// Cancel context to notify handler about disconnection
			client.cancel()
			return
		}

		if !client.workerPool.TrySubmit(func() { client.process(message) }) {
			client.Send(NewErrorMessage(errors.New("too many requests in flight"), nil))
		}
	}
}

func (client *WsClient) process(data []byte) {
	msg, err := ParseClientMessage(data)
	if err == nil {
		err = msg.Validate()
	}
	if err == nil {
		err = client.handleMessage(msg)
	}
	if err != nil {
		client.logger.Warn().Err(err).Msg("Failed to handle client message")
		var auctionID *uuid.UUID
		if msg != nil {
			auctionID = msg.AuctionID
		}
		client.Send(NewErrorMessage(err, auctionID))
	}
}

func (client *WsClient) handleMessage(msg *ClientMessage) error {
	if msg.Type == MessageTypePing {
		return client.Send(NewServerMessage(MessageTypePong))
	}
	return client.handler.HandleClientMessage(client, msg)
}
