package rest

import (
	"net/http"

	"troffee-auction-engine/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RouterParams struct {
	AuctionService inbound.AuctionService
	BidService     inbound.BidService
	Logger         zerolog.Logger
}

// NewRouter configures the REST routes under /api/v1 plus /health
func NewRouter(params RouterParams) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestLogger(params.Logger.With().Str("component", "http").Logger()))

	router.GET("/health", handleHealth)

	auctionHandler := NewAuctionHandler(params.AuctionService, params.Logger)
	bidHandler := NewBidHandler(params.BidService, params.Logger)

	api := router.Group("/api/v1")
	{
		api.GET("/auctions", auctionHandler.ListAuctions)
		api.GET("/auctions/:id", auctionHandler.GetAuction)
		api.GET("/auctions/:id/bids", bidHandler.ListBids)
		api.GET("/auctions/:id/ledger/verify", auctionHandler.VerifyLedger)
		api.POST("/auctions/:id/ledger/reconcile", auctionHandler.ReconcileLedger)
		api.GET("/products/:product_id/auction", auctionHandler.GetAuctionByProduct)
	}

	authed := api.Group("", RequireCaller())
	{
		authed.POST("/auctions", auctionHandler.CreateAuction)
		authed.POST("/auctions/:id/bids", bidHandler.PlaceBid)
		authed.POST("/auctions/:id/cancel", auctionHandler.CancelAuction)
	}

	return router
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "auction-engine"})
}
