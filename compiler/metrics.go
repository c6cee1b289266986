package compiler

import (
	"errors"

	"github.com/brimdata/arith"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	equations *prometheus.CounterVec
	operators prometheus.Histogram
	cacheHits prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		equations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arith_equations_total",
			Help: "Number of equations compiled, by result.",
		}, []string{"result"}),
		operators: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arith_equation_operators",
			Help:    "Number of operators in successfully compiled equations.",
			Buckets: prometheus.LinearBuckets(0, 1, semanticBuckets),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arith_cache_hits_total",
			Help: "Number of equations served from the cache.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.equations, m.operators, m.cacheHits)
	}
	return m
}

// semanticBuckets covers operator counts up to the default ceiling.
const semanticBuckets = 11

func (m *metrics) observe(eq *Equation, err error) {
	m.equations.WithLabelValues(resultLabel(err)).Inc()
	if eq != nil {
		m.operators.Observe(float64(eq.Operators))
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, arith.ErrParse):
		return "parse_error"
	case errors.Is(err, arith.ErrMaxOperators):
		return "max_operators_error"
	case errors.Is(err, arith.ErrValidation):
		return "validation_error"
	}
	return "error"
}
