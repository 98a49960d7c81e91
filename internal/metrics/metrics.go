package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	RuleMatches  *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	TurnsEvicted prometheus.Counter
	Guides       prometheus.Counter
	Logins       prometheus.Counter
}

// New registers the collectors on reg. A nil reg uses a private registry,
// which keeps tests independent of the global default.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		RuleMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vyapyaar",
			Name:      "rule_matches_total",
			Help:      "Bot replies produced, by rule id.",
		}, []string{"rule"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vyapyaar",
			Name:      "submissions_rejected_total",
			Help:      "Chat submissions refused before reaching the responder, by reason.",
		}, []string{"reason"}),
		TurnsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vyapyaar",
			Name:      "turns_evicted_total",
			Help:      "Turns dropped from bounded conversation logs.",
		}),
		Guides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vyapyaar",
			Name:      "guides_generated_total",
			Help:      "Listing guides generated.",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vyapyaar",
			Name:      "logins_total",
			Help:      "Successful demo logins.",
		}),
	}

	reg.MustRegister(m.RuleMatches, m.Rejections, m.TurnsEvicted, m.Guides, m.Logins)
	return m
}
