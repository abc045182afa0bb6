package ws

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"troffee-auction-engine/internal/adapters/rest"
	"troffee-auction-engine/internal/config"
	"troffee-auction-engine/internal/ports/inbound"
	"troffee-auction-engine/internal/ports/outbound"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Server hosts the REST API and the websocket live feed on one listener
type Server struct {
	handler    *WsHandler
	httpServer *http.Server
	config     *config.Config
	logger     zerolog.Logger
}

type ServerParams struct {
	Config         *config.Config
	AuctionService inbound.AuctionService
	BidService     inbound.BidService
	Broadcaster    outbound.Broadcaster
	Logger         zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	handler := NewHandler(WsHandlerParams{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  params.Config.WebSocket.ReadBufferSize,
			WriteBufferSize: params.Config.WebSocket.WriteBufferSize,
			// identity comes from the gateway in front of the engine
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		AuctionService: params.AuctionService,
		BidService:     params.BidService,
		Broadcaster:    params.Broadcaster,
		Logger:         params.Logger,
	})

	router := rest.NewRouter(rest.RouterParams{
		AuctionService: params.AuctionService,
		BidService:     params.BidService,
		Logger:         params.Logger,
	})
	router.GET("/ws", gin.WrapF(handler.HandleWebSocket))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", params.Config.Server.Host, params.Config.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Minute,
	}

	return &Server{
		handler:    handler,
		httpServer: httpServer,
		config:     params.Config,
		logger:     params.Logger.With().Str("component", "server").Logger(),
	}
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP and WebSocket server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Int("clients", s.handler.GetConnectedClients()).Msg("Stopping server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	s.handler.CloseAll()

	s.logger.Info().Msg("Server stopped")
	return nil
}
