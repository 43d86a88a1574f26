package handlers

import (
	"net/http"

	"github.com/nkiryanov/billboard/internal/handlers/render"
	"github.com/nkiryanov/billboard/internal/logger"
	"github.com/nkiryanov/billboard/internal/models"
)

type userResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	RegistrationTime int64  `json:"registration_time"` // unix seconds
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func handleGetUser(userService userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s, ok := session(w, r, l)
		if !ok {
			return
		}

		user, err := userService.GetUser(r.Context(), s, id)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, userResponse{
			ID:               user.ID,
			Name:             user.Name,
			Email:            user.Email,
			RegistrationTime: user.RegisteredAt.Unix(),
		})
	})
}

func handleCreateUser(userService userService, l logger.Logger) http.Handler {
	type request struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
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

		user, err := userService.CreateUser(r.Context(), s, models.NewUser{
			Name:     data.Name,
			Email:    data.Email,
			Password: data.Password,
		})
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, createdResponse{ID: user.ID})
	})
}

func handleUpdateUser(userService userService, l logger.Logger) http.Handler {
	// Only these fields may be changed, any other key is rejected
	type request struct {
		Name     *string `json:"name" validate:"omitnil,min=1"`
		Email    *string `json:"email" validate:"omitnil,email"`
		Password *string `json:"password"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		s, ok := session(w, r, l)
		if !ok {
			return
		}

		_, err = userService.UpdateUser(r.Context(), s, id, models.UserPatch{
			Name:     data.Name,
			Email:    data.Email,
			Password: data.Password,
		})
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.Success(w)
	})
}

func handleDeleteUser(userService userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s, ok := session(w, r, l)
		if !ok {
			return
		}

		if err := userService.DeleteUser(r.Context(), s, id); err != nil {
			renderError(w, l, err)
			return
		}

		render.Success(w)
	})
}
