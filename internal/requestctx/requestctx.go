// Package requestctx carries request-scoped correlation values on a
// context.Context. Values are set once at request entry by middleware and
// read by the service and error-handling layers.
package requestctx

import "context"

// AnonymousUser is reported when the request carried no user identifier.
const AnonymousUser = "anonymous"

type traceIDKey struct{}
type userIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// TraceID returns the trace identifier, or "" outside a request.
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// UserID returns the user identifier, or AnonymousUser when none was set.
func UserID(ctx context.Context) string {
	if ctx == nil {
		return AnonymousUser
	}
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id
	}
	return AnonymousUser
}
