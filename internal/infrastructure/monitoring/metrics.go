package monitoring

import (
	"errors"
	"time"

	"github.com/GriffinCanCode/miniapp/internal/persistence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names used as the "op" label
const (
	OpExport = "export"
	OpImport = "import"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Transitions       *prometheus.CounterVec
	Steps             *prometheus.CounterVec
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationBytes    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_lifecycle_transitions_total",
				Help: "Total number of runner lifecycle transitions by target phase",
			},
			[]string{"app", "phase"},
		),
		Steps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_run_steps_total",
				Help: "Total number of run-loop steps executed",
			},
			[]string{"app"},
		),
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_state_operations_total",
				Help: "Total number of state imports and exports",
			},
			[]string{"app", "op", "format", "result"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "miniapp_state_operation_duration_seconds",
				Help:    "State import/export duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"app", "op", "format"},
		),
		OperationBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "miniapp_state_bytes",
				Help: "Size in bytes of the last imported or exported state file",
			},
			[]string{"app", "op", "format"},
		),
	}
}

// RecordTransition counts a lifecycle transition
func (m *Metrics) RecordTransition(app, phase string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(app, phase).Inc()
}

// RecordStep counts one run-loop step
func (m *Metrics) RecordStep(app string) {
	if m == nil {
		return
	}
	m.Steps.WithLabelValues(app).Inc()
}

// RecordBytes sets the size of the last state file handled
func (m *Metrics) RecordBytes(app, op, format string, size int) {
	if m == nil {
		return
	}
	m.OperationBytes.WithLabelValues(app, op, format).Set(float64(size))
}

// Timer measures one import or export
type Timer struct {
	metrics *Metrics
	app     string
	op      string
	format  string
	start   time.Time
}

// StartOperation starts timing an import or export
func (m *Metrics) StartOperation(app, op, format string) *Timer {
	return &Timer{metrics: m, app: app, op: op, format: format, start: time.Now()}
}

// Stop records duration and outcome. The result label is derived from err.
func (t *Timer) Stop(err error) {
	if t == nil || t.metrics == nil {
		return
	}
	t.metrics.OperationDuration.WithLabelValues(t.app, t.op, t.format).Observe(time.Since(t.start).Seconds())
	t.metrics.Operations.WithLabelValues(t.app, t.op, t.format, Result(err)).Inc()
}

// Result maps an operation error onto a low-cardinality label value
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, persistence.ErrNoData):
		return "no_data"
	case errors.Is(err, persistence.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, persistence.ErrFileNotFound):
		return "not_found"
	case errors.Is(err, persistence.ErrParse):
		return "parse_error"
	case errors.Is(err, persistence.ErrIO):
		return "io_error"
	default:
		return "error"
	}
}

// WriteTextfile writes everything gathered by g to path in the text
// exposition format.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}
