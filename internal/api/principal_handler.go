package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/service/auth"
)

// PrincipalHandler serves the owner-scoped principal resource. It is
// the reference consumer of the access guard's ownership rule: a
// principal may read exactly one profile, its own.
type PrincipalHandler struct {
	guard *auth.Guard
}

// NewPrincipalHandler creates a new PrincipalHandler.
func NewPrincipalHandler(guard *auth.Guard) *PrincipalHandler {
	return &PrincipalHandler{guard: guard}
}

// Get handles GET /api/principals/{id}. The auth middleware has
// already resolved the caller; this handler only enforces ownership.
func (h *PrincipalHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"bad_request", "Invalid principal id")
		return
	}

	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		// The route is registered behind the auth middleware; reaching
		// here without a principal is a wiring fault.
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			KindUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	if err := h.guard.Authorize(principal, ownerID); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err),
			ErrorKind(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PrincipalResponse{
		ID:    principal.ID,
		Email: principal.Email,
	})
}
