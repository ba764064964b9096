package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics counts degraded paths in the request flow.
type StorefrontMetrics struct {
	providerFallbacks   *prometheus.CounterVec
	cartPersistFailures *prometheus.CounterVec
	imageReleaseFailure prometheus.Counter
}

func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_fallbacks_total",
		Help: "Provider resolutions that fell back to the local provider.",
	}, []string{"requested"})
	cart := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart store reads or writes that failed and degraded to memory.",
	}, []string{"op"})
	images := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_release_failures_total",
		Help: "Product image deletions that failed after the product was removed.",
	})
	reg.MustRegister(fallbacks, cart, images)
	return &StorefrontMetrics{
		providerFallbacks:   fallbacks,
		cartPersistFailures: cart,
		imageReleaseFailure: images,
	}
}

func (s *StorefrontMetrics) IncProviderFallback(requested string) {
	if s == nil || s.providerFallbacks == nil {
		return
	}
	s.providerFallbacks.WithLabelValues(normalizeLabel(requested)).Inc()
}

// IncCartPersistFailure counts a failed cart store op ("load" or "save").
func (s *StorefrontMetrics) IncCartPersistFailure(op string) {
	if s == nil || s.cartPersistFailures == nil {
		return
	}
	s.cartPersistFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

func (s *StorefrontMetrics) AddImageReleaseFailures(n int) {
	if s == nil || s.imageReleaseFailure == nil || n <= 0 {
		return
	}
	s.imageReleaseFailure.Add(float64(n))
}
