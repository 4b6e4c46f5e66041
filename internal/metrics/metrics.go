package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/cleanslate/backend/internal/analytics"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec

	monthlySpend     prometheus.Gauge
	potentialSavings prometheus.Gauge
	progressToGoal   prometheus.Gauge
	emailsPerWeek    prometheus.Gauge
	subscriptions    *prometheus.GaugeVec
}

// New регистрирует метрики приложения в отдельном реестре.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)
	return &Metrics{
		gatherer: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanslate_generations_total",
				Help: "Text generation requests by use case and outcome.",
			},
			[]string{"use_case", "outcome"},
		),
		monthlySpend: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cleanslate_monthly_spend",
			Help: "Monthly spend over non-cancelled subscriptions.",
		}),
		potentialSavings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cleanslate_potential_savings",
			Help: "Monthly amount of unused, forgotten and paused subscriptions.",
		}),
		progressToGoal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cleanslate_progress_to_goal_percent",
			Help: "Saved amount relative to the savings goal.",
		}),
		emailsPerWeek: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cleanslate_emails_per_week",
			Help: "Weekly emails from subscribed senders.",
		}),
		subscriptions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cleanslate_subscriptions",
				Help: "Subscriptions by status.",
			},
			[]string{"status"},
		),
	}
}

// Middleware считает запросы и их длительность по шаблону маршрута.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			code := strconv.Itoa(c.Response().Status)

			m.requestsTotal.WithLabelValues(c.Request().Method, path, code).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, path, code).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ObserveAnalytics обновляет доменные показатели.
func (m *Metrics) ObserveAnalytics(snapshot analytics.Snapshot) {
	m.monthlySpend.Set(snapshot.MonthlySpend)
	m.potentialSavings.Set(snapshot.PotentialSavings)
	m.progressToGoal.Set(snapshot.ProgressToGoal)
	m.emailsPerWeek.Set(float64(snapshot.EmailsPerWeek))

	m.subscriptions.WithLabelValues("active").Set(float64(snapshot.ActiveSubscriptions))
	m.subscriptions.WithLabelValues("unused").Set(float64(snapshot.UnusedSubscriptions))
	m.subscriptions.WithLabelValues("forgotten").Set(float64(snapshot.ForgottenSubscriptions))
	m.subscriptions.WithLabelValues("paused").Set(float64(snapshot.PausedSubscriptions))
	m.subscriptions.WithLabelValues("cancelled").Set(float64(snapshot.CancelledSubscriptions))
}

// ObserveGeneration считает запрос генерации текста.
func (m *Metrics) ObserveGeneration(useCase string, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "fallback"
	}
	m.generations.WithLabelValues(useCase, outcome).Inc()
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
