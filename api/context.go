package api

import (
	"context"

	"github.com/google/uuid"
)

type requestIDContextKey struct{}

// WithRequestID attaches a request id to ctx so related calls can be
// correlated in server logs. Without one, each call gets a fresh id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx != nil {
		if id, _ := ctx.Value(requestIDContextKey{}).(string); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
