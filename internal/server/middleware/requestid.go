// file: internal/server/middleware/requestid.go
// version: 1.0.0
// guid: d6e7f8a9-b0c1-2d3e-4f5a-b6c7d8e9f0a1

package middleware

import (
	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"
)

const RequestIDKey = "request_id"

// RequestID assigns a ULID to every request and echoes it in the
// X-Request-ID response header so gateway logs can be correlated with
// upstream traffic.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
