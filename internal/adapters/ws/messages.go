package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"troffee-auction-engine/internal/domain/shared"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MessageType string

const (
	// Client to Server message types
	MessageTypeSubscribe    MessageType = "subscribe"
	MessageTypeUnsubscribe  MessageType = "unsubscribe"
	MessageTypePlaceBid     MessageType = "place_bid"
	MessageTypeGetAuction   MessageType = "get_auction"
	MessageTypeListAuctions MessageType = "list_auctions"
	MessageTypePing         MessageType = "ping"

	// Server to Client message types
	MessageTypeAuctionUpdate MessageType = "auction_update"
	MessageTypeBidPlaced     MessageType = "bid_placed"
	MessageTypeAuctionOutbid MessageType = "auction_outbid"
	MessageTypeAuctionWon    MessageType = "auction_won"
	MessageTypeAuctionEnded  MessageType = "auction_ended"
	MessageTypeError         MessageType = "error"
	MessageTypePong          MessageType = "pong"
)

type ClientMessage struct {
	Type      MessageType            `json:"type"`
	AuctionID *uuid.UUID             `json:"auction_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// ServerMessage represents a message sent from server to client
type ServerMessage struct {
	Type      MessageType            `json:"type"`
	AuctionID *uuid.UUID             `json:"auction_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     *string                `json:"error,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

func NewServerMessage(msgType MessageType) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Data:      make(map[string]interface{}),
		Timestamp: time.Now().Unix(),
	}
}

// NewErrorMessage reports a rejected request; bid floors travel in data.minimum_amount
func NewErrorMessage(err error, auctionID *uuid.UUID) *ServerMessage {
	text := err.Error()
	msg := &ServerMessage{
		Type:      MessageTypeError,
		AuctionID: auctionID,
		Data:      make(map[string]interface{}),
		Error:     &text,
		Timestamp: time.Now().Unix(),
	}

	var tooLow *shared.BidTooLowError
	if errors.As(err, &tooLow) {
		msg.Data["minimum_amount"] = tooLow.MinimumAmount.StringFixed(2)
	}
	return msg
}

// NewEventMessage converts a broadcast event into the message a client sees
func NewEventMessage(event outbound.Event) *ServerMessage {
	msgType := MessageTypeAuctionUpdate
	switch event.Type {
	case outbound.EventTypeBidPlaced:
		msgType = MessageTypeBidPlaced
	case outbound.EventTypeAuctionOutbid:
		msgType = MessageTypeAuctionOutbid
	case outbound.EventTypeAuctionWon:
		msgType = MessageTypeAuctionWon
	case outbound.EventTypeAuctionEnded:
		msgType = MessageTypeAuctionEnded
	}

	auctionID := event.AuctionID
	return &ServerMessage{
		Type:      msgType,
		AuctionID: &auctionID,
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}
}

func (m *ClientMessage) validateAuctionID() error {
	if m.AuctionID == nil || *m.AuctionID == uuid.Nil {
		return ErrAuctionIDRequired
	}
	return nil
}

// Amount reads data.amount, given as a JSON number or a decimal string
func (m *ClientMessage) Amount() (decimal.Decimal, error) {
	var raw string
	switch v := m.Data["amount"].(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	default:
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// intField reads an optional integer from data
func (m *ClientMessage) intField(key string) int {
	n, ok := m.Data[key].(json.Number)
	if !ok {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return int(v)
}

// ParseClientMessage parses a JSON message from client
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&msg); err != nil {
		return nil, fmt.Errorf("failed to parse client message: %w", err)
	}

	if msg.Type == "" {
		return nil, ErrMessageTypeRequired
	}

	return &msg, nil
}

// Validate validates a client message
func (m *ClientMessage) Validate() error {
	switch m.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe, MessageTypeGetAuction:
		return m.validateAuctionID()
	case MessageTypePlaceBid:
		if err := m.validateAuctionID(); err != nil {
			return err
		}
		_, err := m.Amount()
		return err
	case MessageTypeListAuctions, MessageTypePing:
		return nil
	default:
		return ErrUnknownMessageType
	}
}
