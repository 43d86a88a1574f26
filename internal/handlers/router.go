package handlers

import (
	"context"
	"net/http"

	"github.com/nkiryanov/billboard/internal/handlers/middleware"
	"github.com/nkiryanov/billboard/internal/logger"
	"github.com/nkiryanov/billboard/internal/models"
	"github.com/nkiryanov/billboard/internal/repository"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	userService userService,
	billboardService billboardService,
	sessions sessions,
	logger logger.Logger,
) http.Handler {
	withSession := middleware.SessionMiddleware(sessions, logger)

	mux := http.NewServeMux()

	mux.Handle("GET /user/{id}", withSession(handleGetUser(userService, logger)))
	mux.Handle("POST /user/{$}", withSession(handleCreateUser(userService, logger)))
	mux.Handle("PATCH /user/{id}", withSession(handleUpdateUser(userService, logger)))
	mux.Handle("DELETE /user/{id}", withSession(handleDeleteUser(userService, logger)))

	mux.Handle("POST /article/{$}", withSession(handleCreateArticle(billboardService, logger)))
	mux.Handle("GET /article/{id}", withSession(handleGetArticle(billboardService, logger)))
	mux.Handle("DELETE /article/{id}", withSession(handleDeleteArticle(billboardService, logger)))

	handler := chain(mux,
		middleware.RequestIDMiddleware,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type sessions interface {
	Open(ctx context.Context) (repository.Storage, func(), error)
}

type userService interface {
	// Has to return apperrors.ErrUserNotFound if user not found
	GetUser(ctx context.Context, s repository.Storage, id int64) (models.User, error)

	// Has to return apperrors.ErrPasswordTooShort or apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, s repository.Storage, u models.NewUser) (models.User, error)

	// Same errors as GetUser and CreateUser
	UpdateUser(ctx context.Context, s repository.Storage, id int64, patch models.UserPatch) (models.User, error)

	DeleteUser(ctx context.Context, s repository.Storage, id int64) error
}

type billboardService interface {
	// Has to return apperrors.ErrArticleNotFound if billboard not found
	GetArticle(ctx context.Context, s repository.Storage, id int64) (models.Billboard, error)

	// Has to return apperrors.ErrUserNotFound if owner not found
	// and apperrors.ErrArticleAlreadyExists if topic or description is taken
	CreateArticle(ctx context.Context, s repository.Storage, b models.NewBillboard) (models.Billboard, error)

	DeleteArticle(ctx context.Context, s repository.Storage, id int64) error
}
