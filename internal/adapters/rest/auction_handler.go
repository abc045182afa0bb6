package rest

import (
	"fmt"
	"net/http"

	"troffee-auction-engine/internal/domain/auction"
	"troffee-auction-engine/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuctionHandler struct {
	auctionService inbound.AuctionService
	logger         zerolog.Logger
}

func NewAuctionHandler(auctionService inbound.AuctionService, logger zerolog.Logger) *AuctionHandler {
	return &AuctionHandler{
		auctionService: auctionService,
		logger:         logger.With().Str("component", "auction_handler").Logger(),
	}
}

// CreateAuction handles POST /auctions
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	var req CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "CreateAuction", err)
		return
	}

	duration, err := ParseDuration(req.Duration)
	if err != nil {
		h.bindError(c, "CreateAuction", err)
		return
	}

	created, err := h.auctionService.CreateAuction(c.Request.Context(), inbound.CreateAuctionRequest{
		ProductID:     req.ProductID,
		SellerID:      callerID(c),
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		BuyNowPrice:   req.BuyNowPrice,
		Duration:      duration,
	})
	if err != nil {
		h.serviceError(c, "CreateAuction", err)
		return
	}

	JSONResponse(c, http.StatusCreated, created, "auction created successfully")
}

// ListAuctions handles GET /auctions
func (h *AuctionHandler) ListAuctions(c *gin.Context) {
	var query ListAuctionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.bindError(c, "ListAuctions", err)
		return
	}

	page, err := h.auctionService.ListActiveAuctions(c.Request.Context(), inbound.ListAuctionsRequest{
		CategoryID: query.CategoryID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		h.serviceError(c, "ListAuctions", err)
		return
	}
	if page.Auctions == nil {
		page.Auctions = []*auction.Auction{}
	}

	JSONResponse(c, http.StatusOK, page, "auctions retrieved successfully")
}

// GetAuction handles GET /auctions/:id
func (h *AuctionHandler) GetAuction(c *gin.Context) {
	auctionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.auctionService.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		h.serviceError(c, "GetAuction", err)
		return
	}

	JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// GetAuctionByProduct handles GET /products/:product_id/auction
func (h *AuctionHandler) GetAuctionByProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "product_id")
	if !ok {
		return
	}

	a, err := h.auctionService.GetAuctionByProduct(c.Request.Context(), productID)
	if err != nil {
		h.serviceError(c, "GetAuctionByProduct", err)
		return
	}

	JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// CancelAuction handles POST /auctions/:id/cancel
func (h *AuctionHandler) CancelAuction(c *gin.Context) {
	auctionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.auctionService.CancelAuction(c.Request.Context(), auctionID, callerID(c))
	if err != nil {
		h.serviceError(c, "CancelAuction", err)
		return
	}

	JSONResponse(c, http.StatusOK, cancelled, "auction cancelled successfully")
}

// VerifyLedger handles GET /auctions/:id/ledger/verify
func (h *AuctionHandler) VerifyLedger(c *gin.Context) {
	auctionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	report, err := h.auctionService.VerifyLedger(c.Request.Context(), auctionID)
	if err != nil {
		h.serviceError(c, "VerifyLedger", err)
		return
	}

	JSONResponse(c, http.StatusOK, report, "ledger is consistent")
}

// ReconcileLedger handles POST /auctions/:id/ledger/reconcile
func (h *AuctionHandler) ReconcileLedger(c *gin.Context) {
	auctionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	released, err := h.auctionService.ReleaseIntegrityHold(c.Request.Context(), auctionID)
	if err != nil {
		h.serviceError(c, "ReconcileLedger", err)
		return
	}

	JSONResponse(c, http.StatusOK, released, "integrity hold released")
}

func (h *AuctionHandler) bindError(c *gin.Context, handlerName string, err error) {
	JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid request payload: %w", err), "invalid request payload")
	h.logger.Warn().Err(err).Str("handler", handlerName).Msg("Binding error")
}

func (h *AuctionHandler) serviceError(c *gin.Context, handlerName string, err error) {
	status, message := MapErrorToHTTP(err)
	JSONError(c, status, err, message)
	h.logger.Warn().Err(err).
		Str("handler", handlerName).
		Int("status", status).
		Str("auction_id", c.Param("id")).
		Msg("Request failed")
}
