package ws

import (
	"errors"
	"fmt"

	"troffee-auction-engine/internal/domain/shared"
)

// Protocol errors
var (
	ErrMessageTypeRequired = fmt.Errorf("%w: message type is required", shared.ErrInvalidParameters)
	ErrUnknownMessageType  = fmt.Errorf("%w: unknown message type", shared.ErrInvalidParameters)
	ErrAuctionIDRequired   = fmt.Errorf("%w: auction_id is required", shared.ErrInvalidParameters)
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be a positive decimal", shared.ErrInvalidParameters)

	// Connection errors
	ErrClientStopped              = errors.New("client is stopped")
	ErrSendBufferFull             = errors.New("client send channel is full")
	ErrClientEventChannelNotFound = errors.New("client event channel not found")
)
