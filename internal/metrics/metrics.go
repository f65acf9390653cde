// Package metrics holds the Prometheus instruments of the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for update handling, the approval workflow,
// the notification queue and imports. A nil *Metrics records nothing.
type Metrics struct {
	UpdatesHandled      *prometheus.CounterVec
	UpdateDuration      prometheus.Histogram
	Registrations       prometheus.Counter
	Decisions           *prometheus.CounterVec
	Logins              *prometheus.CounterVec
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	NotificationsDrop   prometheus.Counter
	ImportRows          *prometheus.CounterVec
}

// New registers the instruments with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpdatesHandled: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cargobot_updates_handled_total",
			Help: "Inbound chat updates by kind (message, callback)",
		}, []string{"kind"}),
		UpdateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cargobot_update_duration_seconds",
			Help:    "Time spent handling one inbound update",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		Registrations: f.NewCounter(prometheus.CounterOpts{
			Name: "cargobot_registrations_total",
			Help: "Registration forms submitted for review",
		}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cargobot_staff_decisions_total",
			Help: "Staff decisions on pending customers by outcome",
		}, []string{"outcome"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cargobot_logins_total",
			Help: "Login attempts by result (success, failure)",
		}, []string{"result"}),
		NotificationsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "cargobot_notifications_sent_total",
			Help: "Queued notifications delivered",
		}),
		NotificationsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "cargobot_notifications_failed_total",
			Help: "Queued notifications abandoned after retries",
		}),
		NotificationsDrop: f.NewCounter(prometheus.CounterOpts{
			Name: "cargobot_notifications_dropped_total",
			Help: "Notifications dropped because the queue was full or closed",
		}),
		ImportRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cargobot_import_rows_total",
			Help: "Imported spreadsheet rows by kind and result",
		}, []string{"kind", "result"}),
	}
}

func (m *Metrics) ObserveUpdate(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.UpdatesHandled.WithLabelValues(kind).Inc()
	m.UpdateDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncRegistrations() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}

// IncDecision records a staff decision; outcome is "approved" or "rejected".
func (m *Metrics) IncDecision(outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncLogin(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) IncNotificationSent() {
	if m == nil {
		return
	}
	m.NotificationsSent.Inc()
}

func (m *Metrics) IncNotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationsFailed.Inc()
}

func (m *Metrics) IncNotificationDropped() {
	if m == nil {
		return
	}
	m.NotificationsDrop.Inc()
}

// AddImportRows records n rows of kind ("customers", "shipments") with
// result ("ok", "failed").
func (m *Metrics) AddImportRows(kind, result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ImportRows.WithLabelValues(kind, result).Add(float64(n))
}
