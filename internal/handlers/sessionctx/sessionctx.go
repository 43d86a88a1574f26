package sessionctx

import (
	"context"

	"github.com/nkiryanov/billboard/internal/repository"
)

type ctxKey string

const sessionKey ctxKey = "session"

// Create a new context with the request database session
func New(ctx context.Context, s repository.Storage) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Extract the request database session from the context
func FromContext(ctx context.Context) (repository.Storage, bool) {
	s, ok := ctx.Value(sessionKey).(repository.Storage)
	return s, ok
}
