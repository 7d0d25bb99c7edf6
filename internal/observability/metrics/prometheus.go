//revive:disable:var-naming
//revive:disable:exported
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exposes application metrics and can be injected into the
// service and transport layers. It implements internal/service.Metrics and
// the gRPC transport's Metrics through method set compatibility, without
// importing those packages.
type Prometheus struct {
	dispatchTotal          *prometheus.CounterVec
	parseDuration          *prometheus.HistogramVec
	executeDuration        *prometheus.HistogramVec
	rpcDuration            *prometheus.HistogramVec
	rpcRequestArgsObserved *prometheus.HistogramVec
}

func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Prometheus{
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "keysmanager",
				Subsystem: "service",
				Name:      "dispatch_total",
				Help:      "Invocation outcomes by decoded action (ok, unknown_command, missing_argument, etc.).",
			},
			[]string{"action", "result"},
		),
		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "keysmanager",
				Subsystem: "service",
				Name:      "parse_duration_seconds",
				Help:      "Time spent decoding invocation arguments into a command.",
				Buckets:   []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025},
			},
			[]string{"result"},
		),
		executeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "keysmanager",
				Subsystem: "service",
				Name:      "execute_duration_seconds",
				Help:      "Time spent in the command executor.",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5},
			},
			[]string{"action", "result"},
		),
		rpcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "keysmanager",
				Subsystem: "grpc",
				Name:      "rpc_duration_seconds",
				Help:      "Server-side gRPC handling time by method and status code.",
				Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.02, 0.05, 0.1},
			},
			[]string{"method", "code"},
		),
		rpcRequestArgsObserved: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "keysmanager",
				Subsystem: "grpc",
				Name:      "request_args",
				Help:      "Number of named arguments carried by a dispatch request.",
				Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 12, 16},
			},
			[]string{"method"},
		),
	}

	if err := m.register(reg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Prometheus) register(reg prometheus.Registerer) error {
	if err := registerOrReuse(reg, &m.dispatchTotal); err != nil {
		return fmt.Errorf("register dispatch counter: %w", err)
	}
	if err := registerOrReuse(reg, &m.parseDuration); err != nil {
		return fmt.Errorf("register parse duration histogram: %w", err)
	}
	if err := registerOrReuse(reg, &m.executeDuration); err != nil {
		return fmt.Errorf("register execute duration histogram: %w", err)
	}
	if err := registerOrReuse(reg, &m.rpcDuration); err != nil {
		return fmt.Errorf("register rpc duration histogram: %w", err)
	}
	if err := registerOrReuse(reg, &m.rpcRequestArgsObserved); err != nil {
		return fmt.Errorf("register rpc request args histogram: %w", err)
	}
	return nil
}

// registerOrReuse registers *c, or points *c at the collector already
// registered under the same descriptor.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return err
	}
	existing, ok := already.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("collector type mismatch: have %T, want %T", already.ExistingCollector, *c)
	}
	*c = existing
	return nil
}

func (m *Prometheus) IncDispatch(action, result string) {
	m.dispatchTotal.WithLabelValues(action, result).Inc()
}

func (m *Prometheus) ObserveParseDuration(d time.Duration, ok bool) {
	m.parseDuration.WithLabelValues(okString(ok)).Observe(d.Seconds())
}

func (m *Prometheus) ObserveExecuteDuration(action string, d time.Duration, ok bool) {
	m.executeDuration.WithLabelValues(action, okString(ok)).Observe(d.Seconds())
}

func (m *Prometheus) ObserveRPCDuration(method, code string, d time.Duration) {
	m.rpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

func (m *Prometheus) ObserveRequestArgs(method string, n int) {
	if n < 0 {
		n = 0
	}
	m.rpcRequestArgsObserved.WithLabelValues(method).Observe(float64(n))
}

func okString(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
