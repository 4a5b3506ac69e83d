package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hospcare-be/internal/auth"
	"github.com/hongminglow/hospcare-be/internal/config"
	"github.com/hongminglow/hospcare-be/internal/storage"
	"github.com/hongminglow/hospcare-be/internal/storage/mongo"
	"github.com/hongminglow/hospcare-be/internal/storage/postgres"
)

// TestAuthIntegration exercises signup, login and session validation against
// the database named by DATABASE_URL.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	cfg, err := config.Load()
	require.NoError(t, err)

	store := openIntegrationStore(t, cfg)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	h := &harness{router: newTestRouter(t, store, t.TempDir(), tokens), tokens: tokens}
	email := fmt.Sprintf("apitest_%d@example.com", time.Now().UnixNano())
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	signup := patientSignup(email)
	signup["password"] = password
	rec := h.postJSON(t, "/api/auth/signup", signup)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)["user"].(map[string]any)

	rec = h.postJSON(t, "/api/auth/login", map[string]string{"email": email, "password": password, "category": "patient"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, strings.TrimSpace(token))
	require.Equal(t, created["id"], body["user"].(map[string]any)["id"])

	rec = h.postJSON(t, "/api/auth/user", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Logf("created patient %s (id=%v) and validated its session", email, created["id"])
}

func openIntegrationStore(t *testing.T, cfg config.Config) storage.UserStore {
	t.Helper()
	ctx := context.Background()
	driver, err := cfg.StoreDriver()
	require.NoError(t, err)

	if driver == config.DriverPostgres {
		s, err := postgres.NewUserStore(ctx, cfg.DatabaseURL)
		require.NoError(t, err)
		t.Cleanup(s.Close)
		return s
	}
	s, err := mongo.NewUserStore(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
