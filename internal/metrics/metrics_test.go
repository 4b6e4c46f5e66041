package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/cleanslate/backend/internal/analytics"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/items/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Contains(t, scrape(t, m), `http_requests_total{code="204",method="GET",path="/items/:id"} 2`)
}

func TestMiddlewareRecordsErrorStatus(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "nope")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, scrape(t, m), `http_requests_total{code="400",method="GET",path="/fail"} 1`)
}

func TestObserveAnalytics(t *testing.T) {
	m := New()
	m.ObserveAnalytics(analytics.Snapshot{MonthlySpend: 42.5, ActiveSubscriptions: 3, ProgressToGoal: 82.6})
	m.ObserveGeneration("analysis", true)

	body := scrape(t, m)
	assert.Contains(t, body, "cleanslate_monthly_spend 42.5")
	assert.Contains(t, body, `cleanslate_subscriptions{status="active"} 3`)
	assert.Contains(t, body, `cleanslate_generations_total{outcome="fallback",use_case="analysis"} 1`)
}
