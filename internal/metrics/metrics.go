// Package metrics registers the prometheus collectors shared by the router
// and the store. The dashboard server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UtterancesClassified counts routed utterances by intent.
	UtterancesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moveline_utterances_classified_total",
		Help: "Utterances classified by the intent router, labeled by intent.",
	}, []string{"intent"})

	// StoreOperations counts store calls by operation and outcome.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moveline_store_operations_total",
		Help: "Record store operations, labeled by operation and outcome.",
	}, []string{"op", "outcome"})
)
