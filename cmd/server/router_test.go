package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/api"
	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/config"
	"github.com/phrazzld/gate-api/internal/domain"
	"github.com/phrazzld/gate-api/internal/ratelimit"
	"github.com/phrazzld/gate-api/internal/service/auth"
	"github.com/phrazzld/gate-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication wires a full application around the in-memory
// principal store, the way newApplication does minus config loading.
func newTestApplication(t *testing.T, rl ratelimit.Config, exempt []string) (*application, *store.MemoryPrincipalStore) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "info",
			Env:      "production",
		},
		Auth: config.AuthConfig{
			SigningSecret:      "test-signing-secret-that-is-32-chars",
			SigningAlgorithm:   "HS256",
			TokenLifetimeHours: 1,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerMinute: rl.RequestsPerMinute,
			BurstCapacity:     rl.BurstCapacity,
			ExemptPaths:       exempt,
		},
		Security: config.SecurityConfig{CORSAllowedOrigin: "*"},
	}

	principals := store.NewMemoryPrincipalStore()

	authority, err := auth.NewTokenAuthority(cfg.Auth)
	require.NoError(t, err)

	return &application{
		config:     cfg,
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		principals: principals,
		authority:  authority,
		guard:      auth.NewGuard(authority, principals),
		limiter:    ratelimit.NewLimiter(rl),
	}, principals
}

func seedTestPrincipal(t *testing.T, principals *store.MemoryPrincipalStore, email, password string) *domain.Principal {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	p := &domain.Principal{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hash,
		CreatedAt:      time.Now().UTC(),
	}
	principals.Put(p)
	return p
}

func getAs(router http.Handler, client, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("X-Forwarded-For", client)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RateLimitsPerClient(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, ratelimit.Config{
		RequestsPerMinute: 60,
		BurstCapacity:     10,
	}, nil)
	router := app.setupRouter()

	// Client A drains its burst.
	for i := 0; i < 10; i++ {
		rec := getAs(router, "10.0.0.1", "/health", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d should be admitted", i+1)
	}

	// The eleventh is rejected with the full envelope.
	rec := getAs(router, "10.0.0.1", "/health", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body.Error)
	assert.Equal(t, 60, body.RetryAfter)
	assert.NotEmpty(t, body.CorrelationID)

	// A different client is unaffected.
	other := getAs(router, "10.0.0.2", "/health", "")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRouter_RejectionsCarrySecurityHeadersAndCorrelationID(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, ratelimit.Config{
		RequestsPerMinute: 60,
		BurstCapacity:     1,
	}, nil)
	router := app.setupRouter()

	require.Equal(t, http.StatusOK, getAs(router, "10.0.0.1", "/health", "").Code)

	rec := getAs(router, "10.0.0.1", "/health", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestRouter_ExemptPathsBypassRateLimiting(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, ratelimit.Config{
		RequestsPerMinute: 60,
		BurstCapacity:     1,
	}, []string{"/health", "/metrics"})
	router := app.setupRouter()

	for i := 0; i < 5; i++ {
		rec := getAs(router, "10.0.0.1", "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRouter_AuthFlow(t *testing.T) {
	t.Parallel()

	app, principals := newTestApplication(t, ratelimit.Config{
		RequestsPerMinute: 600,
		BurstCapacity:     100,
	}, nil)
	router := app.setupRouter()

	owner := seedTestPrincipal(t, principals, "owner@example.com", "correct horse battery staple")
	other := seedTestPrincipal(t, principals, "other@example.com", "another password entirely")

	login := func(email, password string) *httptest.ResponseRecorder {
		body, err := json.Marshal(api.LoginRequest{Email: email, Password: password})
		require.NoError(t, err)
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := login("owner@example.com", "correct horse battery staple")
	require.Equal(t, http.StatusOK, rec.Code)

	var authResp api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))
	require.NotEmpty(t, authResp.Token)

	t.Run("owner reads own profile", func(t *testing.T) {
		rec := getAs(router, "10.0.0.1", "/api/principals/"+owner.ID.String(), authResp.Token)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.PrincipalResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, owner.ID, resp.ID)
	})

	t.Run("foreign profile is forbidden", func(t *testing.T) {
		rec := getAs(router, "10.0.0.1", "/api/principals/"+other.ID.String(), authResp.Token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec := getAs(router, "10.0.0.1", "/api/principals/"+owner.ID.String(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		rec := getAs(router, "10.0.0.1", "/api/principals/"+owner.ID.String(), "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong credentials are unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, login("owner@example.com", "wrong").Code)
	})
}

func TestRouter_HealthAndReadiness(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, ratelimit.Config{
		RequestsPerMinute: 600,
		BurstCapacity:     100,
	}, nil)
	router := app.setupRouter()

	assert.Equal(t, http.StatusOK, getAs(router, "10.0.0.9", "/health", "").Code)
	// No database configured: readiness trivially passes.
	assert.Equal(t, http.StatusOK, getAs(router, "10.0.0.9", "/readyz", "").Code)
}
