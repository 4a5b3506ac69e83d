package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hospcare-be/internal/auth"
	"github.com/hongminglow/hospcare-be/internal/config"
	"github.com/hongminglow/hospcare-be/internal/service"
	"github.com/hongminglow/hospcare-be/internal/storage/memory"
	"github.com/hongminglow/hospcare-be/internal/upload"
)

func newTestRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	disk, err := upload.NewDiskStorage(t.TempDir())
	require.NoError(t, err)
	store := memory.New()
	hasher := auth.NewHasher()
	tokens := auth.NewTokenManager("server-test", "", time.Hour)

	return NewRouter(cfg, Deps{
		Registrar:     service.NewRegistrar(store, hasher, tokens, upload.NewAcceptor(disk), nil),
		Authenticator: service.NewAuthenticator(store, hasher, tokens, nil),
		Sessions:      service.NewSessionValidator(tokens),
		Directory:     service.NewDirectory(store, nil),
	})
}

func baseConfig() config.Config {
	return config.Config{
		CORSOrigins:    []string{"*"},
		UploadMaxBytes: 1 << 20,
		RequestTimeout: 5 * time.Second,
	}
}

func TestRouterServesWelcomeWithSecurityHeaders(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the HospCare API!", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouterUnknownRoute(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nurses", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, rec.Body.String())
}

func TestRouterDoctorsEmpty(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/doctors", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouterMountsAuthRoutes(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/user", bytes.NewBufferString(`{"token":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"You have been logged out"}`, rec.Body.String())
}

func TestRouterPreflight(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
