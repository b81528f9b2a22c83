package metrics

import "github.com/prometheus/client_golang/prometheus"

// QuoteMetrics counts estimates by truck tier and tracks their size.
type QuoteMetrics struct {
	estimates *prometheus.CounterVec
	amount    prometheus.Histogram
}

func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_estimates_total",
		Help: "Quote estimates served, by truck tier.",
	}, []string{"tier"})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_estimate_amount_sar",
		Help:    "Estimated quote totals in SAR.",
		Buckets: []float64{120, 200, 300, 500, 1000, 2500, 5000, 10000, 30000},
	})
	reg.MustRegister(estimates, amount)
	return &QuoteMetrics{estimates: estimates, amount: amount}
}

func (q *QuoteMetrics) ObserveEstimate(tier string, amount int) {
	if q == nil || q.estimates == nil {
		return
	}
	q.estimates.WithLabelValues(normalizeLabel(tier)).Inc()
	q.amount.Observe(float64(amount))
}
