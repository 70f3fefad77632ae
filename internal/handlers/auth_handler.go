package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"produce-backend/internal/middleware"
	"produce-backend/internal/models"
	"produce-backend/internal/services"
	"produce-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string              `json:"token"`
	User  models.UpstreamUser `json:"user"`
}

// Login proxies the credentials upstream and opens a local session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	token, s, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, LoginResponse{Token: token, User: s.User})
}

// Logout clears the caller's session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.Service.Logout(r.Context(), s)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the logged-in upstream user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromRequest(r)
	utils.JSON(w, http.StatusOK, s.User)
}
