package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/state"
)

type InsightHandler struct {
	Store *state.Store
}

// NewInsightHandler создает обработчик подсказок.
func NewInsightHandler(store *state.Store) *InsightHandler {
	return &InsightHandler{Store: store}
}

// Dismiss скрывает подсказку. Неизвестный идентификатор игнорируется.
func (h *InsightHandler) Dismiss(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid insight id")
	}

	h.Store.DismissInsight(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
