package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups Prometheus collectors for RPC observability.
type Metrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
}

// NewMetrics registers and returns RPC metrics collectors. Registering twice
// on the same registry reuses the existing collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Total number of RPC calls handled by the server.",
		}, []string{"procedure", "code"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_request_duration_ms",
			Help:      "RPC latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"procedure"}),
	}
	m.ReqTotal = RegisterCollector(reg, m.ReqTotal)
	m.ReqDur = RegisterCollector(reg, m.ReqDur)
	return m
}

// Interceptor returns a Connect interceptor that records every call.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			m.ReqTotal.WithLabelValues(procedure, codeLabel(err)).Inc()
			m.ReqDur.WithLabelValues(procedure).Observe(float64(time.Since(start)) / float64(time.Millisecond))
			return resp, err
		}
	}
}

// RegisterCollector registers c on reg, returning the collector already
// registered under the same descriptor if there is one.
func RegisterCollector[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
