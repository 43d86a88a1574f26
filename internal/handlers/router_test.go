package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/billboard/internal/apperrors"
	"github.com/nkiryanov/billboard/internal/logger"
	"github.com/nkiryanov/billboard/internal/models"
	"github.com/nkiryanov/billboard/internal/repository"
)

type stubStorage struct {
	repository.Storage
}

type stubSessions struct {
	opened, released atomic.Int32
}

func (s *stubSessions) Open(_ context.Context) (repository.Storage, func(), error) {
	s.opened.Add(1)
	return stubStorage{}, func() { s.released.Add(1) }, nil
}

// Services stubs: every test sets only the methods it needs
type stubUsers struct {
	get    func(id int64) (models.User, error)
	create func(u models.NewUser) (models.User, error)
	update func(id int64, p models.UserPatch) (models.User, error)
	delete func(id int64) error
}

func (s stubUsers) GetUser(_ context.Context, _ repository.Storage, id int64) (models.User, error) {
	return s.get(id)
}

func (s stubUsers) CreateUser(_ context.Context, _ repository.Storage, u models.NewUser) (models.User, error) {
	return s.create(u)
}

func (s stubUsers) UpdateUser(_ context.Context, _ repository.Storage, id int64, p models.UserPatch) (models.User, error) {
	return s.update(id, p)
}

func (s stubUsers) DeleteUser(_ context.Context, _ repository.Storage, id int64) error {
	return s.delete(id)
}

type stubBillboards struct {
	get    func(id int64) (models.Billboard, error)
	create func(b models.NewBillboard) (models.Billboard, error)
	delete func(id int64) error
}

func (s stubBillboards) GetArticle(_ context.Context, _ repository.Storage, id int64) (models.Billboard, error) {
	return s.get(id)
}

func (s stubBillboards) CreateArticle(_ context.Context, _ repository.Storage, b models.NewBillboard) (models.Billboard, error) {
	return s.create(b)
}

func (s stubBillboards) DeleteArticle(_ context.Context, _ repository.Storage, id int64) error {
	return s.delete(id)
}

// Serve request in the test goroutine and return status code and body
func do(t *testing.T, h http.Handler, method string, path string, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequestWithContext(t.Context(), method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	return w.Code, w.Body.String()
}

func TestRouter(t *testing.T) {
	registered := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	alice := models.User{ID: 1, Name: "alice", Email: "a@x.com", PasswordHash: "hash", RegisteredAt: registered}

	serve := func(_ *testing.T, users stubUsers, billboards stubBillboards) (http.Handler, *stubSessions) {
		sessions := &stubSessions{}
		return NewRouter(users, billboards, sessions, logger.NewNoOpLogger()), sessions
	}

	t.Run("get user", func(t *testing.T) {
		h, sessions := serve(t, stubUsers{
			get: func(id int64) (models.User, error) {
				if id == 1 {
					return alice, nil
				}
				return models.User{}, apperrors.ErrUserNotFound
			},
		}, stubBillboards{})

		code, body := do(t, h, http.MethodGet, "/user/1", "")
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, fmt.Sprintf(`{"id": 1, "name": "alice", "email": "a@x.com", "registration_time": %d}`, registered.Unix()), body)

		code, body = do(t, h, http.MethodGet, "/user/2", "")
		require.Equal(t, http.StatusNotFound, code)
		require.JSONEq(t, `{"status": "error", "message": "user not found"}`, body)

		require.EqualValues(t, 2, sessions.opened.Load())
		require.EqualValues(t, 2, sessions.released.Load(), "every session must be released")
	})

	t.Run("non digit ids are not routed", func(t *testing.T) {
		h, _ := serve(t, stubUsers{}, stubBillboards{})

		for _, path := range []string{"/user/abc", "/user/-1", "/user/1.5", "/article/x1", "/user/99999999999999999999"} {
			code, _ := do(t, h, http.MethodGet, path, "")
			require.Equal(t, http.StatusNotFound, code, path)
		}
	})

	t.Run("create user", func(t *testing.T) {
		var got models.NewUser
		h, _ := serve(t, stubUsers{
			create: func(u models.NewUser) (models.User, error) {
				got = u
				return models.User{ID: 7}, nil
			},
		}, stubBillboards{})

		code, body := do(t, h, http.MethodPost, "/user/", `{"name":"alice","email":"a@x.com","password":"secret1"}`)

		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `{"id": 7}`, body)
		require.Equal(t, models.NewUser{Name: "alice", Email: "a@x.com", Password: "secret1"}, got)
	})

	t.Run("create user errors", func(t *testing.T) {
		tests := []struct {
			name         string
			body         string
			serviceErr   error
			expectedCode int
			expectedBody string
		}{
			{
				name:         "duplicate",
				body:         `{"name":"alice","email":"a@x.com","password":"secret1"}`,
				serviceErr:   fmt.Errorf("can't create user. Err: %w", apperrors.ErrUserAlreadyExists),
				expectedCode: http.StatusConflict,
				expectedBody: `{"error": "user already exists"}`,
			},
			{
				name:         "short password",
				body:         `{"name":"alice","email":"a@x.com","password":"123"}`,
				serviceErr:   apperrors.ErrPasswordTooShort,
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"status": "error", "message": "password is too short"}`,
			},
			{
				name:         "unexpected error",
				body:         `{"name":"alice","email":"a@x.com","password":"secret1"}`,
				serviceErr:   errors.New("connection reset"),
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"error": "service_error", "message": "Internal server error"}`,
			},
			{
				name:         "unknown field",
				body:         `{"name":"alice","email":"a@x.com","password":"secret1","id":5}`,
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error": "decoding_failed", "message": "Unknown field 'id'"}`,
			},
			{
				name:         "invalid email",
				body:         `{"name":"alice","email":"alice","password":"secret1"}`,
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"email": "Must be a valid email address"}}`,
			},
			{
				name:         "missing name",
				body:         `{"email":"a@x.com","password":"secret1"}`,
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"name": "This field is required"}}`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h, _ := serve(t, stubUsers{
					// Invalid requests never reach the service
					create: func(models.NewUser) (models.User, error) {
						return models.User{}, tt.serviceErr
					},
				}, stubBillboards{})

				code, body := do(t, h, http.MethodPost, "/user/", tt.body)

				require.Equal(t, tt.expectedCode, code)
				require.JSONEq(t, tt.expectedBody, body)
			})
		}
	})

	t.Run("post only on exact path", func(t *testing.T) {
		h, _ := serve(t, stubUsers{}, stubBillboards{})

		code, _ := do(t, h, http.MethodPost, "/user/1", `{}`)
		require.Equal(t, http.StatusMethodNotAllowed, code)

		code, _ = do(t, h, http.MethodPost, "/user/1/extra", `{}`)
		require.Equal(t, http.StatusNotFound, code)
	})

	t.Run("update user", func(t *testing.T) {
		var gotID int64
		var got models.UserPatch
		h, _ := serve(t, stubUsers{
			update: func(id int64, p models.UserPatch) (models.User, error) {
				gotID, got = id, p
				if id != 1 {
					return models.User{}, apperrors.ErrUserNotFound
				}
				return alice, nil
			},
		}, stubBillboards{})

		code, body := do(t, h, http.MethodPatch, "/user/1", `{"name": "new"}`)
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `{"status": "success"}`, body)
		require.Equal(t, int64(1), gotID)
		require.NotNil(t, got.Name)
		require.Equal(t, "new", *got.Name)
		require.Nil(t, got.Email, "not sent fields must stay nil")
		require.Nil(t, got.Password, "not sent fields must stay nil")

		code, body = do(t, h, http.MethodPatch, "/user/2", `{"name": "new"}`)
		require.Equal(t, http.StatusNotFound, code)
		require.JSONEq(t, `{"status": "error", "message": "user not found"}`, body)

		code, body = do(t, h, http.MethodPatch, "/user/1", `{"registration_time": 0}`)
		require.Equal(t, http.StatusBadRequest, code, "only allowed fields may be patched")
		require.JSONEq(t, `{"error": "decoding_failed", "message": "Unknown field 'registration_time'"}`, body)
	})

	t.Run("delete user", func(t *testing.T) {
		h, _ := serve(t, stubUsers{
			delete: func(id int64) error {
				if id != 1 {
					return apperrors.ErrUserNotFound
				}
				return nil
			},
		}, stubBillboards{})

		code, body := do(t, h, http.MethodDelete, "/user/1", "")
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `{"status": "success"}`, body)

		code, body = do(t, h, http.MethodDelete, "/user/2", "")
		require.Equal(t, http.StatusNotFound, code)
		require.JSONEq(t, `{"status": "error", "message": "user not found"}`, body)
	})

	t.Run("articles", func(t *testing.T) {
		created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
		h, _ := serve(t, stubUsers{}, stubBillboards{
			get: func(id int64) (models.Billboard, error) {
				if id != 3 {
					return models.Billboard{}, apperrors.ErrArticleNotFound
				}
				return models.Billboard{ID: 3, Topic: "bike", Description: "red bike", CreatedAt: created}, nil
			},
			create: func(b models.NewBillboard) (models.Billboard, error) {
				switch {
				case b.UserID != 1:
					return models.Billboard{}, apperrors.ErrUserNotFound
				case b.Topic == "taken":
					return models.Billboard{}, apperrors.ErrArticleAlreadyExists
				default:
					return models.Billboard{ID: 3}, nil
				}
			},
			delete: func(id int64) error {
				if id != 3 {
					return apperrors.ErrArticleNotFound
				}
				return nil
			},
		})

		code, body := do(t, h, http.MethodGet, "/article/3", "")
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, fmt.Sprintf(`{"id": 3, "topic": "bike", "description": "red bike", "creation_time": %d}`, created.Unix()), body)

		code, body = do(t, h, http.MethodGet, "/article/4", "")
		require.Equal(t, http.StatusNotFound, code)
		require.JSONEq(t, `{"status": "error", "message": "article not found"}`, body)

		code, body = do(t, h, http.MethodPost, "/article/", `{"topic": "bike", "description": "red bike", "user_id": 1}`)
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `{"id": 3}`, body)

		code, body = do(t, h, http.MethodPost, "/article/", `{"topic": "bike", "description": "red bike", "user_id": 2}`)
		require.Equal(t, http.StatusNotFound, code)
		require.JSONEq(t, `{"status": "error", "message": "user not found"}`, body)

		code, body = do(t, h, http.MethodPost, "/article/", `{"topic": "bike", "description": "red bike", "user_id": 0}`)
		require.Equal(t, http.StatusNotFound, code, "zero id is an unknown owner, not a missing field")
		require.JSONEq(t, `{"status": "error", "message": "user not found"}`, body)

		code, body = do(t, h, http.MethodPost, "/article/", `{"topic": "taken", "description": "red bike", "user_id": 1}`)
		require.Equal(t, http.StatusConflict, code)
		require.JSONEq(t, `{"error": "article already exists"}`, body)

		code, body = do(t, h, http.MethodPost, "/article/", `{"topic": "bike", "description": "red bike"}`)
		require.Equal(t, http.StatusBadRequest, code)
		require.JSONEq(t, `{"error": "validation_failed", "message": "Request validation failed", "fields": {"user_id": "This field is required"}}`, body)

		code, body = do(t, h, http.MethodDelete, "/article/3", "")
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `{"status": "success"}`, body)

		code, body = do(t, h, http.MethodDelete, "/article/4", "")
		require.Equal(t, http.StatusNotFound, code)
		require.JSONEq(t, `{"status": "error", "message": "article not found"}`, body)
	})
}
