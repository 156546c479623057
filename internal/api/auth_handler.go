package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/platform/logger"
	"github.com/phrazzld/gate-api/internal/platform/metrics"
	"github.com/phrazzld/gate-api/internal/service/auth"
	"github.com/phrazzld/gate-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	principals       store.PrincipalStore
	authority        auth.TokenAuthority
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	principals store.PrincipalStore,
	authority auth.TokenAuthority,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		principals:       principals,
		authority:        authority,
		passwordVerifier: passwordVerifier,
	}
}

// Login handles the /api/auth/login endpoint: it verifies the supplied
// credentials and issues a bearer token for the principal.
//
// Unknown email and wrong password return the same response; which
// check failed is not observable from outside.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"bad_request", "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"bad_request", "Email and password are required")
		return
	}

	principal, err := h.principals.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrPrincipalNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				KindUnauthorized, GetSafeErrorMessage(auth.ErrUnknownPrincipal))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			KindInternalError, "Failed to authenticate", err)
		return
	}

	if err := h.passwordVerifier.Compare(principal.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			KindUnauthorized, GetSafeErrorMessage(auth.ErrUnknownPrincipal))
		return
	}

	token, err := h.authority.IssueToken(r.Context(), principal.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			KindInternalError, "Failed to issue token", err)
		return
	}

	metrics.TokensIssued.Inc()
	logger.FromContext(r.Context()).Info("token issued",
		"principal_id", principal.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		PrincipalID: principal.ID,
		Token:       token,
	})
}
