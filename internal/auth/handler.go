package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/internal/repository"
)

type Handler struct {
	admins repository.AdminRepository
	tokens *TokenManager
	logger *logrus.Logger
}

func NewHandler(admins repository.AdminRepository, tokens *TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		admins: admins,
		tokens: tokens,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, err := h.admins.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.WithError(err).Error("Failed to look up admin")
		httpx.RespondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WithField("username", req.Username).Warn("Failed admin login attempt")
		httpx.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(admin.Username, admin.ID, admin.Role)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate token")
		httpx.RespondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.logger.WithField("username", admin.Username).Info("Admin logged in")

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}
