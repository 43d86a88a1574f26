package handlers

import (
	"net/http"

	"github.com/nkiryanov/billboard/internal/handlers/render"
	"github.com/nkiryanov/billboard/internal/logger"
	"github.com/nkiryanov/billboard/internal/models"
)

func handleGetArticle(billboardService billboardService, l logger.Logger) http.Handler {
	type response struct {
		ID           int64  `json:"id"`
		Topic        string `json:"topic"`
		Description  string `json:"description"`
		CreationTime int64  `json:"creation_time"` // unix seconds
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s, ok := session(w, r, l)
		if !ok {
			return
		}

		b, err := billboardService.GetArticle(r.Context(), s, id)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, response{
			ID:           b.ID,
			Topic:        b.Topic,
			Description:  b.Description,
			CreationTime: b.CreatedAt.Unix(),
		})
	})
}

func handleCreateArticle(billboardService billboardService, l logger.Logger) http.Handler {
	type request struct {
		Topic       string `json:"topic" validate:"required"`
		Description string `json:"description" validate:"required"`
		// Pointer: only a missing key is invalid, any sent id goes to the owner lookup
		UserID      *int64 `json:"user_id" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		s, ok := session(w, r, l)
		if !ok {
			return
		}

		b, err := billboardService.CreateArticle(r.Context(), s, models.NewBillboard{
			Topic:       data.Topic,
			Description: data.Description,
			UserID:      *data.UserID,
		})
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, createdResponse{ID: b.ID})
	})
}

func handleDeleteArticle(billboardService billboardService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s, ok := session(w, r, l)
		if !ok {
			return
		}

		if err := billboardService.DeleteArticle(r.Context(), s, id); err != nil {
			renderError(w, l, err)
			return
		}

		render.Success(w)
	})
}
