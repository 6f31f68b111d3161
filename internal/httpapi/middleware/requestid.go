package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jujulabs/juju-dashboard/internal/common"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns a ULID to every request unless the client supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			if generated, err := common.NewULID(); err == nil {
				id = generated
			}
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
