package middleware

import (
	"net/http"

	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

// MaxBodySize rejects bodies over limit bytes. A declared Content-Length is
// checked up front; chunked bodies are capped by http.MaxBytesReader and
// fail during binding.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			_ = c.Error(apperrors.PayloadTooLarge(limit))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
