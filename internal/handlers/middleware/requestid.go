package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nkiryanov/billboard/internal/handlers/requestid"
)

// RequestIDMiddleware assigns an id to every request and echoes it in the response header
// A valid uuid sent by the client in X-Request-ID is kept, so calls may be traced across services
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(requestid.Header))
		if err != nil {
			id = uuid.New()
		}

		w.Header().Set(requestid.Header, id.String())
		next.ServeHTTP(w, r.WithContext(requestid.New(r.Context(), id.String())))
	})
}
