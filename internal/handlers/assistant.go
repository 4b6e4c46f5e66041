package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/state"
)

type AssistantHandler struct {
	Store *state.Store
}

// NewAssistantHandler создает обработчик AI-ассистента дашборда.
func NewAssistantHandler(store *state.Store) *AssistantHandler {
	return &AssistantHandler{Store: store}
}

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
	Type   string `json:"type" validate:"omitempty,max=32"`
}

// Generate запрашивает текст у ассистента. Ошибки генерации заменяются резервным текстом.
func (h *AssistantHandler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	result := h.Store.Generate(c.Request().Context(), req.Prompt, ai.ParseUseCase(req.Type))
	return c.JSON(http.StatusOK, result)
}

// Last возвращает последний ответ ассистента.
func (h *AssistantHandler) Last(c echo.Context) error {
	result, ok := h.Store.LastResult()
	if !ok {
		return notFound(c, "no result yet")
	}

	return c.JSON(http.StatusOK, result)
}
