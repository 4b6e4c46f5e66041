package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/auth"
	"example.com/cleanslate/backend/internal/config"
	"example.com/cleanslate/backend/internal/handlers"
	"example.com/cleanslate/backend/internal/metrics"
	"example.com/cleanslate/backend/internal/notifications"
	"example.com/cleanslate/backend/internal/state"
)

// Deps собирает долгоживущие зависимости, создаваемые в main.
type Deps struct {
	Store     *state.Store
	Hub       *notifications.Hub
	AIService *ai.Service
	Metrics   *metrics.Metrics
	Storage   string
}

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, deps Deps) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(corsMiddleware(cfg.CORS))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}

	var authMiddleware echo.MiddlewareFunc
	var authHandler *handlers.AuthHandler
	if cfg.Auth.Enabled() {
		tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
		authMiddleware = auth.JWTMiddleware(tokenManager)
		authHandler = handlers.NewAuthHandler(deps.Store, cfg.Auth.PasscodeHash, tokenManager)
	}

	registerRoutes(e, routes{
		health:        handlers.NewHealthHandler(deps.Store, deps.Storage),
		auth:          authHandler,
		dashboard:     handlers.NewDashboardHandler(deps.Store),
		subscriptions: handlers.NewSubscriptionHandler(deps.Store),
		emails:        handlers.NewEmailHandler(deps.Store),
		insights:      handlers.NewInsightHandler(deps.Store),
		assistant:     handlers.NewAssistantHandler(deps.Store),
		exports:       handlers.NewExportHandler(deps.Store),
		notifications: handlers.NewNotificationHandler(deps.Hub, deps.Store),
		proxy:         handlers.NewProxyHandler(deps.AIService, logger),
		metrics:       deps.Metrics,

		authMiddleware:  authMiddleware,
		authRateLimiter: rateLimiter(cfg.Auth.RateLimitPerMinute, cfg.Auth.RateLimitBurst),
		aiRateLimiter:   rateLimiter(cfg.AI.RateLimitPerMinute, cfg.AI.RateLimitBurst),
	})

	if cfg.Server.StaticDir != "" {
		e.Static("/", cfg.Server.StaticDir)
	}

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func corsMiddleware(cfg config.CORSConfig) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		// Прокси выставляет свои заголовки и отвечает на preflight сам.
		Skipper: func(c echo.Context) bool {
			return c.Path() == proxyPath
		},
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	})
}

func rateLimiter(perMinute, burst int) echo.MiddlewareFunc {
	limit := rate.Limit(float64(perMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     burst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
