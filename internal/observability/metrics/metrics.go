package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking site.
type BookingMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	cancellationsTotal *prometheus.CounterVec
	storageFallbacks   *prometheus.CounterVec
	artifactDownloads  *prometheus.CounterVec
	emailsTotal        *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "physio",
			Subsystem: "bookings",
			Name:      "submissions_total",
			Help:      "Booking submissions by outcome (accepted or the rejection reason)",
		}, []string{"outcome"}),
		cancellationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "physio",
			Subsystem: "bookings",
			Name:      "cancellations_total",
			Help:      "Cancellation requests by whether a booking was removed",
		}, []string{"removed"}),
		storageFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "physio",
			Subsystem: "state",
			Name:      "storage_fallback_total",
			Help:      "Visitor state reads/writes that fell back to in-process values",
		}, []string{"op", "key"}),
		artifactDownloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "physio",
			Subsystem: "calendar",
			Name:      "artifact_downloads_total",
			Help:      "Calendar artifact download attempts by status",
		}, []string{"status"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "physio",
			Subsystem: "notify",
			Name:      "confirmation_emails_total",
			Help:      "Booking confirmation emails by status",
		}, []string{"status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "physio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.cancellationsTotal, m.storageFallbacks,
		m.artifactDownloads, m.emailsTotal, m.requestLatency)
	return m
}

func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveCancellation(removed bool) {
	if m == nil {
		return
	}
	m.cancellationsTotal.WithLabelValues(boolLabel(removed)).Inc()
}

// ObserveStorageFallback counts a degraded state operation; key is the
// unqualified storage key (no visitor suffix) to keep cardinality bounded.
func (m *BookingMetrics) ObserveStorageFallback(op, key string) {
	if m == nil {
		return
	}
	m.storageFallbacks.WithLabelValues(op, key).Inc()
}

func (m *BookingMetrics) ObserveArtifactDownload(status string) {
	if m == nil {
		return
	}
	m.artifactDownloads.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveRequestLatency(route, method string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(route, method).Observe(seconds)
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
