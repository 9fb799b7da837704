// Package metrics provides Prometheus instrumentation for the YaadMind platform.
package metrics

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yaadmind",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AnalysesTotal counts completed journal/message analyses by risk level.
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "analyses_total",
			Help:      "Total text analyses completed, by resulting risk level.",
		},
		[]string{"risk_level"},
	)

	// CrisisFlagsTotal counts raised crisis flags by flag type.
	CrisisFlagsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "crisis_flags_total",
			Help:      "Total crisis flags raised during analysis, by flag.",
		},
		[]string{"flag"},
	)

	// ReportsTotal counts submitted violence reports by type.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "reports_total",
			Help:      "Total violence reports submitted, by report type.",
		},
		[]string{"type"},
	)

	// ReportRoutingsTotal counts agency routings by agency.
	ReportRoutingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "report_routings_total",
			Help:      "Total report routings, by destination agency.",
		},
		[]string{"agency"},
	)

	// ReportEscalationsTotal counts reports flagged for escalation at intake.
	ReportEscalationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "yaadmind",
		Name:      "report_escalations_total",
		Help:      "Total reports flagged for escalation at intake.",
	})

	// AlertsTotal counts crisis alerts created.
	AlertsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "yaadmind",
		Name:      "crisis_alerts_total",
		Help:      "Total crisis alerts created.",
	})

	// AlertWebhookDeliveriesTotal counts alert webhook delivery attempts by result.
	AlertWebhookDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "alert_webhook_deliveries_total",
			Help:      "Total alert webhook deliveries by result.",
		},
		[]string{"result"},
	)

	// JournalEntriesTotal counts created journal entries.
	JournalEntriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "yaadmind",
		Name:      "journal_entries_total",
		Help:      "Total journal entries created.",
	})

	// ModelServerRequestsTotal counts model server calls by endpoint and result.
	ModelServerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yaadmind",
			Name:      "model_server_requests_total",
			Help:      "Total model server requests by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	// ModelServerRequestDuration observes model server call latency by endpoint.
	ModelServerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yaadmind",
			Name:      "model_server_request_duration_seconds",
			Help:      "Model server request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// ActiveWebSocketClients tracks connected WebSocket clients.
	ActiveWebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yaadmind",
			Name:      "active_websocket_clients",
			Help:      "Number of currently connected WebSocket clients.",
		},
	)

	// DBOpenConnections tracks open database connections.
	DBOpenConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yaadmind", Name: "db_open_connections",
		Help: "Number of open database connections.",
	})
	// DBIdleConnections tracks idle database connections.
	DBIdleConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yaadmind", Name: "db_idle_connections",
		Help: "Number of idle database connections.",
	})
	// DBInUseConnections tracks in-use database connections.
	DBInUseConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yaadmind", Name: "db_in_use_connections",
		Help: "Number of in-use database connections.",
	})
	// DBWaitCount tracks the total number of connections waited for.
	DBWaitCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yaadmind", Name: "db_wait_count_total",
		Help: "Total number of connections waited for.",
	})
	// DBWaitDuration tracks total time waited for connections.
	DBWaitDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yaadmind", Name: "db_wait_duration_seconds_total",
		Help: "Total time waited for connections in seconds.",
	})
	// GoroutineCount tracks the current number of goroutines.
	GoroutineCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "yaadmind", Name: "goroutines",
		Help: "Current number of goroutines.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AnalysesTotal,
		CrisisFlagsTotal,
		ReportsTotal,
		ReportRoutingsTotal,
		ReportEscalationsTotal,
		AlertsTotal,
		AlertWebhookDeliveriesTotal,
		JournalEntriesTotal,
		ModelServerRequestsTotal,
		ModelServerRequestDuration,
		ActiveWebSocketClients,
		DBOpenConnections,
		DBIdleConnections,
		DBInUseConnections,
		DBWaitCount,
		DBWaitDuration,
		GoroutineCount,
	)
}

// StartDBStatsCollector periodically samples sql.DBStats and runtime goroutine
// count into Prometheus gauges. Call in a goroutine; exits when ctx is done.
func StartDBStatsCollector(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := db.Stats()
			DBOpenConnections.Set(float64(stats.OpenConnections))
			DBIdleConnections.Set(float64(stats.Idle))
			DBInUseConnections.Set(float64(stats.InUse))
			DBWaitCount.Set(float64(stats.WaitCount))
			DBWaitDuration.Set(stats.WaitDuration.Seconds())
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

// Middleware returns a gin middleware that records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(), // Uses route pattern, not actual path (avoids cardinality explosion)
		))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
