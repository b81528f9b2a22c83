package metrics

import "github.com/prometheus/client_golang/prometheus"

// Contact submission outcomes.
const (
	ContactResultAccepted = "accepted"
	ContactResultInvalid  = "invalid"
	ContactResultFailed   = "failed"
)

type ContactMetrics struct {
	submissions *prometheus.CounterVec
}

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	if reg == nil {
		return &ContactMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_submissions_total",
		Help: "Contact form submissions, by outcome.",
	}, []string{"result"})
	reg.MustRegister(submissions)
	return &ContactMetrics{submissions: submissions}
}

func (c *ContactMetrics) IncSubmission(result string) {
	if c == nil || c.submissions == nil {
		return
	}
	c.submissions.WithLabelValues(normalizeLabel(result)).Inc()
}
