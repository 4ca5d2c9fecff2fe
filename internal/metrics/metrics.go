package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Scan cycle metrics
	ScansCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_scans_completed_total",
			Help: "Total number of completed scan cycles",
		},
		[]string{"status"}, // success, error
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemfounder_scan_duration_seconds",
			Help:    "Duration of a full scan cycle",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	// Token classification metrics
	TokensClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_tokens_classified_total",
			Help: "Total number of tokens classified",
		},
		[]string{"decision"}, // NOTIFY, REJECTED_BY_FILTER, REJECTED_BY_SECURITY_GATE, BELOW_THRESHOLD
	)

	TokensDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gemfounder_tokens_deduplicated_total",
			Help: "Total number of tokens dropped as duplicates within a scan batch",
		},
	)

	TokensAlreadyNotified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gemfounder_tokens_already_notified_total",
			Help: "Total number of gems skipped because they were notified before",
		},
	)

	// Score distributions (0-100)
	CompositeScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemfounder_composite_scores",
			Help:    "Distribution of composite scores for tokens that passed the filter",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 85, 90, 95, 100},
		},
	)

	SecurityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemfounder_security_scores",
			Help:    "Distribution of security scores for tokens that passed the filter",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 85, 90, 95, 100},
		},
	)

	// Alert metrics
	AlertsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_alerts_triggered_total",
			Help: "Total number of gem alerts triggered",
		},
		[]string{"severity"}, // INFO, WARN, ALERT
	)

	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_alerts_sent_total",
			Help: "Total number of alerts sent",
		},
		[]string{"status", "type"}, // success/error, telegram/discord/log
	)

	// API metrics
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"api", "endpoint", "status"}, // dexscreener/coingecko, /search, success/error
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gemfounder_api_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"api", "endpoint"},
	)

	// Database metrics
	DatabaseQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"}, // get/insert/cleanup, success/error
	)

	// System health
	HealthChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemfounder_health_checks_total",
			Help: "Total number of health check requests",
		},
		[]string{"status"}, // healthy/unhealthy
	)
)

// RecordScan records the outcome of one scan cycle
func RecordScan(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ScansCompleted.WithLabelValues(status).Inc()
	ScanDuration.Observe(duration.Seconds())
}

// RecordClassification records the decision for one classified token
func RecordClassification(decision string) {
	TokensClassified.WithLabelValues(decision).Inc()
}

// RecordScores records the score distributions for one token that passed the
// filter stage.
func RecordScores(securityScore, compositeScore float64) {
	SecurityScores.Observe(securityScore)
	CompositeScores.Observe(compositeScore)
}

// RecordAlert records alert metrics
func RecordAlert(severity, sendStatus, alertType string) {
	AlertsTriggered.WithLabelValues(severity).Inc()
	AlertsSent.WithLabelValues(sendStatus, alertType).Inc()
}

// RecordAPIRequest records API request metrics
func RecordAPIRequest(api, endpoint string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	APIRequests.WithLabelValues(api, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(api, endpoint).Observe(duration.Seconds())
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueries.WithLabelValues(operation, status).Inc()
}

// RecordHealthCheck records health check status
func RecordHealthCheck(healthy bool) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}
	HealthChecks.WithLabelValues(status).Inc()
}
