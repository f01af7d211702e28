package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/insights/internal/integration/requestctx"
)

// maxRequestIDLength bounds ids accepted from clients.
const maxRequestIDLength = 128

// RequestID propagates the inbound X-Request-ID, or assigns a new one, to the
// response header and to the request context so store calls carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestctx.HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(requestctx.HeaderRequestID, id)
		c.Request = c.Request.WithContext(requestctx.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}
