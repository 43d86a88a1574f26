package middleware

import (
	"context"
	"net/http"

	"github.com/nkiryanov/billboard/internal/handlers/render"
	"github.com/nkiryanov/billboard/internal/handlers/sessionctx"
	"github.com/nkiryanov/billboard/internal/repository"
)

type sessions interface {
	// Open database session; release must be called when the session is not needed anymore
	Open(ctx context.Context) (s repository.Storage, release func(), err error)
}

type errorLogger interface {
	Error(msg string, args ...any)
}

// SessionMiddleware opens database session before the handler runs and releases it when handler returns
// Release is deferred, so it happens on panics too
func SessionMiddleware(s sessions, l errorLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storage, release, err := s.Open(r.Context())
			if err != nil {
				l.Error("Failed to open db session", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			defer release()

			next.ServeHTTP(w, r.WithContext(sessionctx.New(r.Context(), storage)))
		})
	}
}
