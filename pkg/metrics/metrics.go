// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса бронирования визитов
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Бизнес-метрики
	BookingsTotal     *prometheus.CounterVec // outcome: booked | rejected | failed
	RemindersTotal    *prometheus.CounterVec // result: sent | failed
	OutboxEmailsTotal *prometheus.CounterVec // result: sent | failed
	LeadSyncTotal     *prometheus.CounterVec // result: reverted | skipped | failed
}

// New создает и регистрирует метрики через promauto
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		BookingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "visit_bookings_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		RemindersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "visit_reminders_total",
			Help:        "Reminder emails by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		OutboxEmailsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "email_outbox_total",
			Help:        "Outbox email deliveries by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		LeadSyncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "lead_sync_total",
			Help:        "Lead synchronization events by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// IncBooking инкрементирует счетчик бронирований, безопасно для nil receiver
func (m *Metrics) IncBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

// IncReminder инкрементирует счетчик напоминаний, безопасно для nil receiver
func (m *Metrics) IncReminder(result string) {
	if m == nil {
		return
	}
	m.RemindersTotal.WithLabelValues(result).Inc()
}

// IncOutboxEmail инкрементирует счетчик писем outbox, безопасно для nil receiver
func (m *Metrics) IncOutboxEmail(result string) {
	if m == nil {
		return
	}
	m.OutboxEmailsTotal.WithLabelValues(result).Inc()
}

// IncLeadSync инкрементирует счетчик синхронизаций лидов, безопасно для nil receiver
func (m *Metrics) IncLeadSync(result string) {
	if m == nil {
		return
	}
	m.LeadSyncTotal.WithLabelValues(result).Inc()
}
