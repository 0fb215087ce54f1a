// Package middleware holds the gin middleware chain shared by every route.
package middleware

import (
	"go-gin-catalog/internal/requestctx"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"
	HeaderUserID    = "X-User-Id"
)

// maxHeaderIDLen bounds caller-supplied ids before they reach logs.
const maxHeaderIDLen = 128

// RequestContext stores the trace and user ids on the request context and
// echoes the trace id on the response. A trace id is generated when the
// caller did not send one.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := headerID(c, HeaderTraceID)
		if traceID == "" {
			traceID = headerID(c, HeaderRequestID)
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}
		userID := headerID(c, HeaderUserID)
		if userID == "" {
			userID = requestctx.AnonymousUser
		}

		ctx := requestctx.WithTraceID(c.Request.Context(), traceID)
		ctx = requestctx.WithUserID(ctx, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}

func headerID(c *gin.Context, name string) string {
	v := c.GetHeader(name)
	if len(v) > maxHeaderIDLen {
		return ""
	}
	return v
}
