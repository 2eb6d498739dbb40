// Package metrics declares the Prometheus series the handle layer updates
// around the commit protocol. None of these are read by the protocol
// itself; they are a pure side channel (SPEC_FULL.md §4.7).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RegionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tl2stm",
		Name:      "regions_created_total",
		Help:      "Number of regions successfully created.",
	})

	CommitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tl2stm",
		Name:      "commits_total",
		Help:      "Number of transactions that committed.",
	})

	AbortsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tl2stm",
		Name:      "aborts_total",
		Help:      "Number of transactions that aborted, by cause.",
	}, []string{"cause"})

	WriteSetSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tl2stm",
		Name:      "commit_write_set_size",
		Help:      "Number of distinct addresses in a committed transaction's write set.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(RegionsCreated, CommitsTotal, AbortsTotal, WriteSetSize)
}
