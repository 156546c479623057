package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/domain"
	"github.com/phrazzld/gate-api/internal/service/auth"
	"github.com/phrazzld/gate-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPrincipalRouter mounts the handler the way the server does, with a
// stand-in for the auth middleware that injects the given principal.
func newPrincipalRouter(guard *auth.Guard, caller *domain.Principal) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if caller != nil {
				req = req.WithContext(shared.WithPrincipal(req.Context(), caller))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/principals/{id}", NewPrincipalHandler(guard).Get)
	return r
}

func TestPrincipalHandler_Get(t *testing.T) {
	t.Parallel()

	guard := auth.NewGuard(newTestAuthority(t), store.NewMemoryPrincipalStore())
	caller := &domain.Principal{ID: uuid.New(), Email: "owner@example.com"}

	t.Run("owner reads own profile", func(t *testing.T) {
		router := newPrincipalRouter(guard, caller)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/principals/"+caller.ID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PrincipalResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, caller.ID, resp.ID)
		assert.Equal(t, caller.Email, resp.Email)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		router := newPrincipalRouter(guard, caller)
		otherID := uuid.New()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/principals/"+otherID.String(), nil))

		require.Equal(t, http.StatusForbidden, rec.Code)

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, KindForbidden, body.Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		router := newPrincipalRouter(guard, caller)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/principals/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing principal in context", func(t *testing.T) {
		router := newPrincipalRouter(guard, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/principals/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
