package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
)

type DashboardHandler struct {
	Store *state.Store
}

// NewDashboardHandler создает обработчик сводных данных дашборда.
func NewDashboardHandler(store *state.Store) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

type DashboardResponse struct {
	User       models.UserProfile `json:"user"`
	Analytics  analytics.Snapshot `json:"analytics"`
	Insights   []models.Insight   `json:"insights"`
	LastResult *ai.GenerateResult `json:"lastResult"`
	Version    uint64             `json:"version"`
}

// State возвращает полное состояние.
func (h *DashboardHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.State())
}

// Dashboard возвращает профиль, показатели, подсказки и последний ответ ассистента.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	current, snapshot, version := h.Store.Snapshot()

	response := DashboardResponse{
		User:      current.User,
		Analytics: snapshot,
		Insights:  current.Insights,
		Version:   version,
	}
	if response.Insights == nil {
		response.Insights = []models.Insight{}
	}
	if result, ok := h.Store.LastResult(); ok {
		response.LastResult = &result
	}

	return c.JSON(http.StatusOK, response)
}

// Analytics возвращает показатели текущего состояния.
func (h *DashboardHandler) Analytics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Analytics())
}
