package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/naruebet/teachshare/pkg/config"
)

// tokenTTL bounds how long an issued token is accepted.
const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	username  string
	password  string
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthHandler(cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		username:  cfg.AdminUsername,
		password:  cfg.AdminPassword,
		jwtSecret: []byte(cfg.JWTSecret),
		logger:    logger,
	}
}

// LoginRequest payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the configured credential pair and issues a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username != h.username || req.Password != h.password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		h.logger.Error("failed to sign token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("login successful", zap.String("user", req.Username))
	writeJSON(w, http.StatusOK, map[string]string{"token": signed})
}
