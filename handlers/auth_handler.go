package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"smartrail/config"

	"github.com/golang-jwt/jwt/v5"
)

// AuthHandler issues tokens for the TTE console. This is a thin gate,
// not a passenger account system.
type AuthHandler struct {
	Config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{Config: cfg}
}

const tokenLifetime = 12 * time.Hour

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TTEID    string `json:"tteId"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	idOK := subtle.ConstantTimeCompare([]byte(req.TTEID), []byte(h.Config.TTEID)) == 1
	pwOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Config.TTEPassword)) == 1
	if !idOK || !pwOK {
		sendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.TTEID,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Config.JWTSecret))
	if err != nil {
		log.Printf("Login: signing error: %v", err)
		sendErrorResponse(w, "Could not issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     signed,
		"expiresIn": int(tokenLifetime.Seconds()),
	})
}
