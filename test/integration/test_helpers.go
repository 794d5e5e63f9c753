//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"edudash/internal/auth"
	"edudash/internal/config"
	"edudash/internal/handler"
	"edudash/internal/middleware"
	"edudash/internal/model"
	"edudash/internal/repository"
	"edudash/internal/router"
	"edudash/internal/token"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := repository.NewCSVStore(filepath.Join(t.TempDir(), "users.csv"))
	require.NoError(t, err)

	authService := auth.NewService(store, auth.SHA256Hasher{})
	tokenService := token.NewService("test-secret", 24*time.Hour)

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		TokenTTL:         24 * time.Hour,
		SessionTimeout:   30 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	authHandler := handler.NewAuthHandler(authService, tokenService)
	userHandler := handler.NewUserHandler(authService)

	server := httptest.NewServer(router.New(cfg, authMiddleware, authHandler, userHandler))
	t.Cleanup(server.Close)

	return server
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *model.APIError `json:"error"`
}

func doJSON(t *testing.T, method string, url string, bearer string, payload any) (int, envelope) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))

	return resp.StatusCode, parsed
}

func login(t *testing.T, server *httptest.Server, username string, password string) (string, model.LoginResponse) {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", model.LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, status)

	var parsed model.LoginResponse
	require.NoError(t, json.Unmarshal(body.Data, &parsed))
	require.NotEmpty(t, parsed.Token)

	return parsed.Token, parsed
}
