package handler

import (
	"encoding/json"
	"net/http"

	"edudash/internal/auth"
	"edudash/internal/middleware"
	"edudash/internal/model"
	"edudash/internal/rbac"
	"edudash/pkg/apierror"
)

type UserHandler struct {
	auth *auth.Service
}

func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{auth: authService}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.auth.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profiles)
}

func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	var payload model.PreferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := h.auth.UpdatePreferences(claims.Subject, payload); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.auth.GetUser(claims.Subject)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}

// Capabilities reports the caller's role and its capability set, so the
// presentation layer can decide what to render without re-encoding the
// permission table.
func (h *UserHandler) Capabilities(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"role":         claims.Role,
		"capabilities": rbac.Capabilities(claims.Role),
	})
}
