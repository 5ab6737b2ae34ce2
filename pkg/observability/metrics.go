package observability

import (
	"errors"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine counters.
type Metrics struct {
	NodeVisits *prometheus.CounterVec
	Redirects  *prometheus.CounterVec
	Backs      prometheus.Counter
	Resets     prometheus.Counter
	Errors     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the counters and registers them with reg.
// When reg is also a prometheus.Gatherer it backs WriteTextfile.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callflow_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node_id", "kind"},
		),
		Redirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callflow_redirects_total",
				Help: "Total number of applied redirection rules",
			},
			[]string{"rule"},
		),
		Backs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "callflow_backs_total",
			Help: "Total number of back navigations",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "callflow_resets_total",
			Help: "Total number of call resets",
		}),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callflow_errors_total",
				Help: "Total number of failed navigation calls",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.NodeVisits, m.Redirects, m.Backs, m.Resets, m.Errors)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Hooks returns lifecycle hooks that record into the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID, string(e.NodeKind)).Inc()
		},
		OnRedirect: func(e *domain.RedirectEvent) {
			m.Redirects.WithLabelValues(e.Rule).Inc()
		},
		OnBack: func(*domain.NodeEvent) {
			m.Backs.Inc()
		},
		OnReset: func(*domain.EventBase) {
			m.Resets.Inc()
		},
		OnError: func(e *domain.ErrorEvent) {
			m.Errors.WithLabelValues(ErrorKind(e.Err)).Inc()
		},
	}
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, for pickup by a node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m.gatherer == nil {
		return errors.New("metrics registerer is not a gatherer")
	}
	return prometheus.WriteToTextfile(path, m.gatherer)
}

// ErrorKind classifies engine errors for metric labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrConfig):
		return "config"
	case errors.Is(err, domain.ErrNodeNotFound):
		return "node_not_found"
	case errors.Is(err, domain.ErrInvalidOption):
		return "invalid_option"
	case errors.Is(err, domain.ErrUnmappedEnum):
		return "unmapped_enum"
	case errors.Is(err, domain.ErrNotStarted):
		return "not_started"
	default:
		return "other"
	}
}
