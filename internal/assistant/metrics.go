package assistant

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeMalformed = "malformed"
)

// Metrics records assistant activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	questions     *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	llmCalls      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics registers the assistant collectors on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		questions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animebuddy_questions_total",
				Help: "Total number of questions answered, by classified intent",
			},
			[]string{"intent"},
		),
		fetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animebuddy_metadata_fetch_failures_total",
				Help: "Total number of catalog fetches that degraded to no data",
			},
			[]string{"operation"},
		),
		llmCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animebuddy_llm_calls_total",
				Help: "Total number of LLM gateway calls by pipeline stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animebuddy_question_duration_seconds",
				Help:    "Duration of question handling in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"intent"},
		),
	}
}

func (m *Metrics) observeQuestion(intent Intent, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.questions.WithLabelValues(string(intent)).Inc()
	m.duration.WithLabelValues(string(intent)).Observe(elapsed.Seconds())
}

func (m *Metrics) fetchFailed(operation string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) llmCall(stage, outcome string) {
	if m == nil {
		return
	}
	m.llmCalls.WithLabelValues(stage, outcome).Inc()
}
