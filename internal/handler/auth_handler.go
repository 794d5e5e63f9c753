package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"edudash/internal/auth"
	"edudash/internal/middleware"
	"edudash/internal/model"
	"edudash/internal/token"
	"edudash/pkg/apierror"
)

type AuthHandler struct {
	auth   *auth.Service
	tokens *token.Service
}

func NewAuthHandler(authService *auth.Service, tokenService *token.Service) *AuthHandler {
	return &AuthHandler{auth: authService, tokens: tokenService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	role, err := h.auth.Authenticate(payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	signed, err := h.tokens.Issue(payload.Username, role)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.auth.GetUser(payload.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.LoginResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
		User:      profile,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := h.auth.Register(payload.Username, payload.Password, model.Role(payload.Role), payload.Email); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.auth.GetUser(strings.TrimSpace(payload.Username))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, profile)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := h.auth.ChangePassword(claims.Subject, payload.CurrentPassword, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"changed": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	profile, err := h.auth.GetUser(claims.Subject)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}
