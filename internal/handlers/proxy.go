package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/ai"
)

// ProxyHandler отдает генерацию текста как самостоятельный HTTP-эндпоинт
// для браузерных клиентов. В отличие от ассистента ошибки возвращаются как есть.
type ProxyHandler struct {
	Service *ai.Service
	Logger  *slog.Logger
}

// NewProxyHandler создает обработчик прокси к языковой модели.
func NewProxyHandler(service *ai.Service, logger *slog.Logger) *ProxyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProxyHandler{Service: service, Logger: logger}
}

type ProxyRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"maxTokens"`
	Type      string `json:"type"`
}

type ProxyResponse struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type proxyUpstreamError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type proxyServerError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handle принимает POST с промптом, отвечает на preflight и отклоняет прочие методы.
func (h *ProxyHandler) Handle(c echo.Context) error {
	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	header.Set(echo.HeaderAccessControlAllowMethods, http.MethodPost)
	header.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)

	switch c.Request().Method {
	case http.MethodOptions:
		return c.NoContent(http.StatusOK)
	case http.MethodPost:
	default:
		return c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	}

	var req ProxyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return badRequest(c, "Missing prompt")
	}

	result, _, err := h.Service.Generate(c.Request().Context(), ai.GenerateInput{
		Prompt:    req.Prompt,
		Type:      ai.ParseUseCase(req.Type),
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, ProxyResponse{
		Content:   result.Content,
		Timestamp: result.Timestamp.UTC().Format(time.RFC3339Nano),
	})
}

func (h *ProxyHandler) fail(c echo.Context, err error) error {
	if errors.Is(err, ai.ErrMissingAPIKey) {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "API key not configured"})
	}

	var apiErr *ai.APIError
	if errors.As(err, &apiErr) {
		h.Logger.Warn("upstream model error", slog.String("provider", apiErr.Provider), slog.Int("status", apiErr.StatusCode), slog.String("error", apiErr.Message))
		return c.JSON(http.StatusBadGateway, proxyUpstreamError{Error: "Upstream API error", Status: apiErr.StatusCode})
	}

	h.Logger.Error("text generation failed", slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, proxyServerError{Error: "Internal server error", Message: err.Error()})
}
