package middleware

import (
	"net/http"

	"claim-escrow-engine/pkg/apperror"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps request bodies. Declared oversize bodies are refused up
// front; undeclared ones fail on read and surface as a bind error.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.New(apperror.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
