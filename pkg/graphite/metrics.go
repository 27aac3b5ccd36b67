package graphite

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resolution paths, used as the "path" label.
const (
	pathTemplate = "template"
	pathDirect   = "direct"
)

// Metrics counts what the Builder produces.
type Metrics struct {
	graphs          *prometheus.CounterVec
	templateLookups *prometheus.CounterVec
	emptyResults    *prometheus.CounterVec
}

// NewMetrics creates the Builder counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		graphs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphiteui_graphs_built_total",
			Help: "Graph descriptors returned to the console, by resolution path.",
		}, []string{"path"}),
		templateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphiteui_template_lookups_total",
			Help: "Graph template lookups, by result (hit or miss).",
		}, []string{"result"}),
		emptyResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphiteui_empty_results_total",
			Help: "Requests that produced no graph, by reason.",
		}, []string{"reason"}),
	}

	if reg != nil {
		reg.MustRegister(m.graphs, m.templateLookups, m.emptyResults)
	}
	return m
}

func (m *Metrics) addGraphs(path string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.graphs.WithLabelValues(path).Add(float64(n))
}

func (m *Metrics) lookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.templateLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) empty(reason string) {
	if m == nil {
		return
	}
	m.emptyResults.WithLabelValues(reason).Inc()
}
