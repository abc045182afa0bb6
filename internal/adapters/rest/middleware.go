package rest

import (
	"fmt"
	"net/http"
	"time"

	"troffee-auction-engine/internal/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// UserIDHeader carries the caller identity set by the upstream gateway
	UserIDHeader = "X-User-ID"

	callerKey = "caller_id"
)

// RequestLogger logs incoming requests with timing
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}

// RequireCaller rejects requests without a valid caller identity
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		callerID, err := uuid.Parse(raw)
		if err != nil {
			JSONError(c, http.StatusUnauthorized,
				fmt.Errorf("%w: %s header must carry a user id", shared.ErrInvalidParameters, UserIDHeader),
				"caller identity required")
			return
		}
		c.Set(callerKey, callerID)
		c.Next()
	}
}

func callerID(c *gin.Context) uuid.UUID {
	return c.MustGet(callerKey).(uuid.UUID)
}

// pathUUID parses a uuid path parameter, writing a 400 response when it is malformed
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		JSONError(c, http.StatusBadRequest, fmt.Errorf("%w: %s must be a uuid", shared.ErrInvalidParameters, name), "invalid parameters")
		return uuid.Nil, false
	}
	return id, true
}
