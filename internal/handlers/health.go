package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/state"
)

type HealthHandler struct {
	Store   *state.Store
	Storage string
}

type HealthResponse struct {
	Status       string `json:"status"`
	Storage      string `json:"storage,omitempty"`
	StateVersion uint64 `json:"stateVersion"`
}

// NewHealthHandler создает обработчик проверки состояния сервиса.
func NewHealthHandler(store *state.Store, storage string) *HealthHandler {
	return &HealthHandler{Store: store, Storage: storage}
}

// Health возвращает статус сервиса и текущую версию состояния.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		Storage:      h.Storage,
		StateVersion: h.Store.Version(),
	})
}
