package metrics

import "github.com/prometheus/client_golang/prometheus"

// WizardMetrics exposes counters/histograms for the registration wizard.
type WizardMetrics struct {
	draftsStarted      prometheus.Counter
	stepAdvances       *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submitLatency      prometheus.Histogram
	geocodeLatency     *prometheus.HistogramVec
}

func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	m := &WizardMetrics{
		draftsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vetfinder",
			Subsystem: "wizard",
			Name:      "drafts_started_total",
			Help:      "Total registration drafts created",
		}),
		stepAdvances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetfinder",
			Subsystem: "wizard",
			Name:      "step_advances_total",
			Help:      "Total successful step advances",
		}, []string{"from_step"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetfinder",
			Subsystem: "wizard",
			Name:      "validation_failures_total",
			Help:      "Total step validation failures",
		}, []string{"step"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetfinder",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Total registration submissions by outcome",
		}, []string{"status"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vetfinder",
			Subsystem: "wizard",
			Name:      "submit_latency_seconds",
			Help:      "Latency of the full submission pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
		geocodeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vetfinder",
			Subsystem: "geo",
			Name:      "geocode_latency_seconds",
			Help:      "Latency of Nominatim geocoding lookups",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.draftsStarted, m.stepAdvances, m.validationFailures,
		m.submissions, m.submitLatency, m.geocodeLatency)
	return m
}

func (m *WizardMetrics) ObserveDraftStarted() {
	if m == nil {
		return
	}
	m.draftsStarted.Inc()
}

func (m *WizardMetrics) ObserveStepAdvance(fromStep string) {
	if m == nil {
		return
	}
	m.stepAdvances.WithLabelValues(fromStep).Inc()
}

func (m *WizardMetrics) ObserveValidationFailure(step string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(step).Inc()
}

func (m *WizardMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(status).Inc()
}

func (m *WizardMetrics) ObserveSubmitLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}

func (m *WizardMetrics) ObserveGeocodeLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.geocodeLatency.WithLabelValues(status).Observe(seconds)
}
