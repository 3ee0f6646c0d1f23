package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"echome/internal/middleware"
)

type tokenRequest struct {
	UserID string `json:"user_id,omitempty"`
	Plan   string `json:"plan,omitempty"`
	Locale string `json:"locale,omitempty"`
}

type tokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// AuthToken mints a signed token for local development and tests. Disabled
// outside development environments; production callers bring their own
// identity provider.
func (a *App) AuthToken(w http.ResponseWriter, r *http.Request) {
	if a.Config.AppEnv == "production" {
		a.error(w, http.StatusNotFound, "not_found", "not available")
		return
	}
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}
	plan := req.Plan
	if plan == "" {
		plan = "free"
	}
	locale := req.Locale
	if locale == "" {
		locale = a.Config.DefaultLocale
	}
	token, err := middleware.SignJWT(a.Config.JWTSecret, middleware.TokenClaims{
		Sub:      userID,
		Plan:     plan,
		Locale:   locale,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "echome",
		Audience: "echome-clients",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, tokenResponse{Token: token, UserID: userID})
}
