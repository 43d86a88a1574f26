package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nkiryanov/billboard/internal/handlers"
	"github.com/nkiryanov/billboard/internal/logger"
	"github.com/nkiryanov/billboard/internal/repository/postgres"
	"github.com/nkiryanov/billboard/internal/service/billboard"
	"github.com/nkiryanov/billboard/internal/service/password"
	"github.com/nkiryanov/billboard/internal/service/user"
	"github.com/nkiryanov/billboard/internal/testutil"
)

type Services struct {
	UserService      *user.UserService
	BillboardService *billboard.BillboardService
	Hasher           password.Hasher
}

// Create db transaction and run server in with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
func ServeInTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		hasher := password.BcryptHasher{Cost: bcrypt.MinCost}
		us := user.NewService(hasher)
		bs := billboard.NewService(us)

		router := handlers.NewRouter(us, bs, postgres.TxSessions{Tx: tx}, logger.NewNoOpLogger())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			UserService:      us,
			BillboardService: bs,
			Hasher:           hasher,
		})
	})
}

// Do request with JSON body and return status code and response body
func Do(t *testing.T, method string, url string, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}
