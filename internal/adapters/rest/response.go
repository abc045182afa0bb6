package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is advertised to callers that hit a busy auction
const retryAfterSeconds = 1

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}

	var tooLow *shared.BidTooLowError
	if errors.As(err, &tooLow) {
		body["minimum_amount"] = tooLow.MinimumAmount.StringFixed(2)
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	}

	c.AbortWithStatusJSON(status, body)
}

// MapErrorToHTTP maps domain and service errors to an HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrActiveAuctionExists):
		return http.StatusConflict, "product already has an active auction"
	case errors.Is(err, shared.ErrBidTooLow):
		return http.StatusUnprocessableEntity, "bid amount too low"
	case errors.Is(err, shared.ErrInvalidParameters):
		return http.StatusBadRequest, "invalid parameters"
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, shared.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not active"
	case errors.Is(err, shared.ErrHasBids):
		return http.StatusConflict, "auction already has bids"
	case errors.Is(err, shared.ErrSelfBid):
		return http.StatusForbidden, "seller cannot bid on own auction"
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, shared.ErrIntegrityViolation):
		return http.StatusLocked, "auction is on integrity hold"
	case errors.Is(err, shared.ErrBusy), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "auction is busy, retry later"
	case errors.Is(err, shared.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
