package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutations, mirror health and checkout outcomes.
type CartMetrics struct {
	mutations      *prometheus.CounterVec
	mirrorFailures *prometheus.CounterVec
	checkouts      *prometheus.CounterVec
	draftOrders    prometheus.Histogram
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	mirrorFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mirror_failures_total",
		Help: "Cart mirror reads or writes that failed and were recovered locally.",
	}, []string{"op"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts, by outcome.",
	}, []string{"outcome"})
	draftOrders := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_draft_orders",
		Help:    "Draft orders produced per successful checkout.",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})
	reg.MustRegister(mutations, mirrorFailures, checkouts, draftOrders)
	return &CartMetrics{
		mutations:      mutations,
		mirrorFailures: mirrorFailures,
		checkouts:      checkouts,
		draftOrders:    draftOrders,
	}
}

// IncMutation counts one applied cart mutation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncMirrorFailure counts one swallowed mirror failure.
func (c *CartMetrics) IncMirrorFailure(op string) {
	if c == nil || c.mirrorFailures == nil {
		return
	}
	c.mirrorFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckout counts a checkout attempt by outcome.
func (c *CartMetrics) IncCheckout(outcome string) {
	if c == nil || c.checkouts == nil {
		return
	}
	c.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveDraftOrders records how many supplier orders one checkout produced.
func (c *CartMetrics) ObserveDraftOrders(n int) {
	if c == nil || c.draftOrders == nil {
		return
	}
	c.draftOrders.Observe(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
