package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/middleware"
)

// AllocationMetrics counts the work done by the allocation engine.
// A nil *AllocationMetrics records nothing.
type AllocationMetrics struct {
	BillsCalculated *prometheus.CounterVec
	UnassignedItems prometheus.Counter
	AllocatedCents  prometheus.Counter
}

// NewAllocationMetrics registers and returns the allocation collectors.
func NewAllocationMetrics(namespace string, reg prometheus.Registerer) *AllocationMetrics {
	m := &AllocationMetrics{
		BillsCalculated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_calculated_total",
			Help:      "Number of bills run through the allocation engine, by operation.",
		}, []string{"operation"}),
		UnassignedItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unassigned_items_total",
			Help:      "Number of line items left out of a split because nobody was assigned.",
		}),
		AllocatedCents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocated_cents_total",
			Help:      "Sum of all allocated share totals, in cents.",
		}),
	}
	m.BillsCalculated = middleware.RegisterCollector(reg, m.BillsCalculated)
	m.UnassignedItems = middleware.RegisterCollector(reg, m.UnassignedItems)
	m.AllocatedCents = middleware.RegisterCollector(reg, m.AllocatedCents)
	return m
}

func (m *AllocationMetrics) observe(operation string, result calculator.BillResult) {
	if m == nil {
		return
	}
	m.BillsCalculated.WithLabelValues(operation).Inc()
	m.UnassignedItems.Add(float64(len(result.UnassignedItems)))
	if result.TotalCents > 0 {
		m.AllocatedCents.Add(float64(result.TotalCents))
	}
}
