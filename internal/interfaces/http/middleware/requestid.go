package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the request/response header carrying the request ID.
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID is the gin context key under which the ID is stored.
const contextKeyRequestID = "request_id"

// RequestID propagates the caller's X-Request-ID, generating one when the
// header is absent, and echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request ID assigned by RequestID, empty when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

//Personal.AI order the ending
