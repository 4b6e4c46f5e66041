package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/auth"
	"example.com/cleanslate/backend/internal/state"
)

type AuthHandler struct {
	Store        *state.Store
	PasscodeHash string
	TokenManager *auth.TokenManager
}

// NewAuthHandler создает обработчик выдачи токенов.
func NewAuthHandler(store *state.Store, passcodeHash string, manager *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		Store:        store,
		PasscodeHash: passcodeHash,
		TokenManager: manager,
	}
}

type TokenRequest struct {
	Passcode string `json:"passcode" validate:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token проверяет код доступа и выдает access-токен владельцу дашборда.
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if err := auth.ComparePassword(h.PasscodeHash, strings.TrimSpace(req.Passcode)); err != nil {
		return unauthorized(c)
	}

	subject := h.Store.State().User.Email
	if subject == "" {
		subject = "owner"
	}

	token, err := h.TokenManager.NewAccessToken(subject)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
	})
}
