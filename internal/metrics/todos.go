package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameOperations = "operations_total"
	NameStoreUp    = "store_up"

	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var Operations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameOperations,
		Help:      "Total todo operations, by outcome",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelOutcome},
)

var StoreUp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameStoreUp,
		Help:      "Whether the todo store answered its last ping (1) or not (0)",
		Namespace: Namespace,
	},
)
