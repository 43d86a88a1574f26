package requestid

import (
	"context"
)

const Header = "X-Request-ID"

type ctxKey string

const requestIDKey ctxKey = "request_id"

func New(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Empty string if request has no id
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
