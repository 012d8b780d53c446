package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart, shipping and checkout activity.
type StorefrontMetrics struct {
	cartMutations    *prometheus.CounterVec
	shippingQuotes   *prometheus.CounterVec
	artifactDuration *prometheus.HistogramVec
	dispatches       *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutation operations by kind.",
	}, []string{"op"})
	shippingQuotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quotes_total",
		Help: "Shipping quote requests by outcome.",
	}, []string{"outcome"})
	artifactDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_artifact_duration_seconds",
		Help:    "Duration of checkout artifact generation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_dispatches_total",
		Help: "Checkout artifact dispatches by action and outcome.",
	}, []string{"action", "outcome"})
	reg.MustRegister(cartMutations, shippingQuotes, artifactDuration, dispatches)
	return &StorefrontMetrics{
		cartMutations:    cartMutations,
		shippingQuotes:   shippingQuotes,
		artifactDuration: artifactDuration,
		dispatches:       dispatches,
	}
}

// IncCartMutation increments the counter for the named cart operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncShippingQuote increments the quote counter for the given outcome.
func (m *StorefrontMetrics) IncShippingQuote(outcome string) {
	if m == nil || m.shippingQuotes == nil {
		return
	}
	m.shippingQuotes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveArtifactDuration records how long artifact generation took.
func (m *StorefrontMetrics) ObserveArtifactDuration(kind string, duration time.Duration) {
	if m == nil || m.artifactDuration == nil {
		return
	}
	m.artifactDuration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncDispatch increments the dispatch counter for an action/outcome pair.
func (m *StorefrontMetrics) IncDispatch(action, outcome string) {
	if m == nil || m.dispatches == nil {
		return
	}
	m.dispatches.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
