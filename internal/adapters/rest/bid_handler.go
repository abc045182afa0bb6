package rest

import (
	"fmt"
	"net/http"

	"troffee-auction-engine/internal/domain/bid"
	"troffee-auction-engine/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BidHandler struct {
	bidService inbound.BidService
	logger     zerolog.Logger
}

func NewBidHandler(bidService inbound.BidService, logger zerolog.Logger) *BidHandler {
	return &BidHandler{
		bidService: bidService,
		logger:     logger.With().Str("component", "bid_handler").Logger(),
	}
}

// PlaceBid handles POST /auctions/:id/bids
func (h *BidHandler) PlaceBid(c *gin.Context) {
	auctionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid request payload: %w", err), "invalid request payload")
		h.logger.Warn().Err(err).Str("handler", "PlaceBid").Msg("Binding error")
		return
	}

	bidderID := callerID(c)
	result, err := h.bidService.PlaceBid(c.Request.Context(), inbound.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    req.Amount,
	})
	if err != nil {
		status, message := MapErrorToHTTP(err)
		JSONError(c, status, err, message)
		h.logger.Warn().Err(err).
			Str("auction_id", auctionID.String()).
			Str("bidder_id", bidderID.String()).
			Str("amount", req.Amount.String()).
			Int("status", status).
			Msg("Bid rejected")
		return
	}

	JSONResponse(c, http.StatusCreated, result, "bid placed successfully")
}

// ListBids handles GET /auctions/:id/bids
func (h *BidHandler) ListBids(c *gin.Context) {
	auctionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var query ListBidsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid request payload: %w", err), "invalid request payload")
		return
	}

	bids, err := h.bidService.ListBids(c.Request.Context(), auctionID, bid.ParseOrder(query.Order))
	if err != nil {
		status, message := MapErrorToHTTP(err)
		JSONError(c, status, err, message)
		h.logger.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to list bids")
		return
	}
	if bids == nil {
		bids = []*bid.Bid{}
	}

	JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}
