package handlers

import (
	"errors"
	"net/http"

	"github.com/nkiryanov/billboard/internal/apperrors"
	"github.com/nkiryanov/billboard/internal/handlers/render"
	"github.com/nkiryanov/billboard/internal/logger"
)

type errorRender func(w http.ResponseWriter, message string, code int)

// Well known errors and how they are answered
// Checked in order with errors.Is; anything else is internal server error
var errorTable = []struct {
	err    error
	code   int
	render errorRender
}{
	{apperrors.ErrUserNotFound, http.StatusNotFound, render.Failure},
	{apperrors.ErrArticleNotFound, http.StatusNotFound, render.Failure},
	{apperrors.ErrPasswordTooShort, http.StatusBadRequest, render.Failure},
	{apperrors.ErrUserAlreadyExists, http.StatusConflict, render.Error},
	{apperrors.ErrArticleAlreadyExists, http.StatusConflict, render.Error},
}

func renderError(w http.ResponseWriter, l logger.Logger, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			e.render(w, e.err.Error(), e.code)
			return
		}
	}

	l.Error("Request failed", "error", err)
	render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
}
