package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Admission instruments the chain's admission pipeline: how many blocks made
// it in, how many signatures were turned away, and how long each
// proof-of-work search took.
type Admission struct {
	BlocksAdmitted     prometheus.Counter
	SignaturesRejected prometheus.Counter
	AdmissionDuration  prometheus.Histogram
	PowSolutions       prometheus.Histogram
}

func NewAdmission() *Admission {
	return &Admission{
		BlocksAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "basicchain",
			Subsystem: "blocks",
			Name:      "admitted_total",
			Help:      "Total number of blocks admitted to the chain",
		}),
		SignaturesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "basicchain",
			Subsystem: "admissions",
			Name:      "rejected_signatures_total",
			Help:      "Total number of admissions rejected for an invalid signature",
		}),
		AdmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "basicchain",
			Subsystem: "admissions",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of a full admission, proof-of-work included",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		PowSolutions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "basicchain",
			Subsystem: "pow",
			Name:      "solution_value",
			Help:      "Discovered proof-of-work solutions, a proxy for candidates tested",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 12),
		}),
	}
}

// Collectors returns everything Admission registers, for the metrics server.
func (a *Admission) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		a.BlocksAdmitted,
		a.SignaturesRejected,
		a.AdmissionDuration,
		a.PowSolutions,
	}
}

// ObserveAdmission records one successful admission.
func (a *Admission) ObserveAdmission(elapsed time.Duration, solution uint64) {
	a.BlocksAdmitted.Inc()
	a.AdmissionDuration.Observe(elapsed.Seconds())
	a.PowSolutions.Observe(float64(solution))
}
