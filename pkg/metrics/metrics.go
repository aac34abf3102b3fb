// Package metrics содержит Prometheus метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса бронирования
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration     *prometheus.HistogramVec
	DBConnectionsOpen   prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge
	DBConnectionsInUse  prometheus.Gauge
	DBTxRetriesTotal    prometheus.Counter

	// Domain
	BookingsCreatedTotal      prometheus.Counter
	BookingConflictsTotal     prometheus.Counter
	NotificationFailuresTotal prometheus.Counter
}

// New регистрирует и возвращает метрики сервиса
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections.",
			ConstLabels: constLabels,
		}),

		DBConnectionsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections.",
			ConstLabels: constLabels,
		}),

		DBConnectionsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use.",
			ConstLabels: constLabels,
		}),

		DBTxRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Total number of serializable transaction retries.",
			ConstLabels: constLabels,
		}),

		BookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of successfully committed bookings.",
			ConstLabels: constLabels,
		}),

		BookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Total number of booking attempts rejected due to slot conflicts.",
			ConstLabels: constLabels,
		}),

		NotificationFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Total number of failed confirmation email deliveries.",
			ConstLabels: constLabels,
		}),
	}
}

// IncBookingCreated увеличивает счетчик успешных бронирований
func (m *Metrics) IncBookingCreated() {
	m.BookingsCreatedTotal.Inc()
}

// IncBookingConflict увеличивает счетчик отказов из-за занятого слота
func (m *Metrics) IncBookingConflict() {
	m.BookingConflictsTotal.Inc()
}

// IncNotificationFailure увеличивает счетчик неотправленных писем
func (m *Metrics) IncNotificationFailure() {
	m.NotificationFailuresTotal.Inc()
}
