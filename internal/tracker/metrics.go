package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus series a Tracker maintains.
type Metrics struct {
	operations *prometheus.CounterVec
	elapsed    *prometheus.GaugeVec
}

// NewMetrics creates the tracker series and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictoc_operations_total",
				Help: "Timer operations by kind and outcome",
			},
			[]string{"op", "result"},
		),
		elapsed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tictoc_timer_elapsed_seconds",
				Help: "Elapsed time of the most recent stop of each timer",
			},
			[]string{"key"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.elapsed)
	}
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = resultLabel(err)
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) setElapsed(key string, seconds float64) {
	if m == nil {
		return
	}
	m.elapsed.WithLabelValues(key).Set(seconds)
}
