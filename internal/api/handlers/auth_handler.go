package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/auth"
	"github.com/rahulvj/atm-inventory-be/internal/services"
)

// AuthHandler handles the inventory login gate.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles credential authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate JWT")
		writeError(w, err)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
