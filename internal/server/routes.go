package server

import (
	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/handlers"
	"example.com/cleanslate/backend/internal/metrics"
)

const proxyPath = "/api/openai"

type routes struct {
	health        *handlers.HealthHandler
	auth          *handlers.AuthHandler
	dashboard     *handlers.DashboardHandler
	subscriptions *handlers.SubscriptionHandler
	emails        *handlers.EmailHandler
	insights      *handlers.InsightHandler
	assistant     *handlers.AssistantHandler
	exports       *handlers.ExportHandler
	notifications *handlers.NotificationHandler
	proxy         *handlers.ProxyHandler
	metrics       *metrics.Metrics

	authMiddleware  echo.MiddlewareFunc
	authRateLimiter echo.MiddlewareFunc
	aiRateLimiter   echo.MiddlewareFunc
}

func registerRoutes(e *echo.Echo, r routes) {
	e.GET("/health", r.health.Health)
	if r.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	e.Any(proxyPath, r.proxy.Handle, r.aiRateLimiter)

	api := e.Group("/api/v1")

	var protected []echo.MiddlewareFunc
	if r.auth != nil {
		api.POST("/auth/token", r.auth.Token, r.authRateLimiter)
		protected = append(protected, r.authMiddleware)
	}

	app := api.Group("", protected...)
	app.GET("/state", r.dashboard.State)
	app.GET("/dashboard", r.dashboard.Dashboard)
	app.GET("/analytics", r.dashboard.Analytics)

	app.GET("/subscriptions", r.subscriptions.List)
	app.POST("/subscriptions/:id/cancel", r.subscriptions.Cancel)
	app.POST("/subscriptions/:id/pause", r.subscriptions.Pause)
	app.POST("/subscriptions/:id/activate", r.subscriptions.Activate)

	app.GET("/emails", r.emails.List)
	app.POST("/emails/:id/unsubscribe", r.emails.Unsubscribe)
	app.POST("/emails/:id/resubscribe", r.emails.Resubscribe)

	app.DELETE("/insights/:id", r.insights.Dismiss)

	app.POST("/assistant/generate", r.assistant.Generate, r.aiRateLimiter)
	app.GET("/assistant/last", r.assistant.Last)

	app.GET("/export/json", r.exports.ExportJSON)
	app.GET("/export/csv", r.exports.ExportCSV)

	app.GET("/notifications/stream", r.notifications.Stream)
}
