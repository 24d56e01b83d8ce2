package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// DiscountRunsTotal counts discount evaluations by outcome.
	DiscountRunsTotal *prometheus.CounterVec
	// DiscountCandidatesTotal counts emitted product discount candidates.
	DiscountCandidatesTotal prometheus.Counter
	// DiscountConfigResolutionsTotal counts configuration resolutions by source.
	DiscountConfigResolutionsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers discount collectors once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		DiscountRunsTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_runs_total",
			Help:      "Count of discount evaluations by outcome.",
		}, []string{"result"}))
		DiscountCandidatesTotal = registerOrReuse(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_candidates_total",
			Help:      "Number of product discount candidates emitted.",
		}))
		DiscountConfigResolutionsTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_config_resolutions_total",
			Help:      "Count of discount configuration resolutions by source.",
		}, []string{"source"}))
	})
}

// RecordDiscountRun updates the discount collectors. It is a no-op until
// MustRegisterDomainMetrics has run. An empty source means configuration was not read.
func RecordDiscountRun(result string, candidates int, source string) {
	if DiscountRunsTotal != nil {
		DiscountRunsTotal.WithLabelValues(result).Inc()
	}
	if DiscountCandidatesTotal != nil && candidates > 0 {
		DiscountCandidatesTotal.Add(float64(candidates))
	}
	if DiscountConfigResolutionsTotal != nil && source != "" {
		DiscountConfigResolutionsTotal.WithLabelValues(source).Inc()
	}
}
