package handlers

import (
	"net/http"
	"strconv"

	"github.com/nkiryanov/billboard/internal/handlers/render"
	"github.com/nkiryanov/billboard/internal/handlers/sessionctx"
	"github.com/nkiryanov/billboard/internal/logger"
	"github.com/nkiryanov/billboard/internal/repository"
)

// Parse digits-only path value
// Anything else (including signs or ids that overflow int64) answers 404 like an unknown route
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")

	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			http.NotFound(w, r)
			return 0, false
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}

	return id, true
}

// Request database session; it is always set by SessionMiddleware
func session(w http.ResponseWriter, r *http.Request, l logger.Logger) (repository.Storage, bool) {
	s, ok := sessionctx.FromContext(r.Context())
	if !ok {
		l.Error("No db session in request context", "uri", r.RequestURI)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
	return s, ok
}
