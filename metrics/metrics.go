package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricNamespace = "functils"

// Counters.
var (
	//nolint:gochecknoglobals
	scriptsEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "scripts_evaluated_total",
		Help:      "Total number of list scripts evaluated.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	scriptsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "scripts_failed_total",
		Help:      "Total number of list scripts that failed.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	opsExecutedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "ops_executed_total",
		Help:      "Total number of list operations executed by kind.",
		Namespace: metricNamespace,
	}, []string{"op"})
)

// Gauges.
var (
	//nolint:gochecknoglobals
	storedLists = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "stored_lists",
		Help:      "Number of named lists in the store.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	lastListLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "last_list_length",
		Help:      "Length of the list produced by the last evaluated script.",
		Namespace: metricNamespace,
	})
)

// Init registers the metrics with reg.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		Namespace: metricNamespace,
	}))

	reg.MustRegister(
		scriptsEvaluatedTotal,
		scriptsFailedTotal,
		opsExecutedTotal,

		storedLists,
		lastListLength,
	)
}

// AddScriptsEvaluated increments the evaluated scripts counter.
func AddScriptsEvaluated(v int) {
	scriptsEvaluatedTotal.Add(float64(v))
}

// AddScriptsFailed increments the failed scripts counter.
func AddScriptsFailed(v int) {
	scriptsFailedTotal.Add(float64(v))
}

// AddOpExecuted increments the counter of executed operations of the given kind.
func AddOpExecuted(op string) {
	opsExecutedTotal.WithLabelValues(op).Inc()
}

// SetStoredLists sets the stored lists gauge.
func SetStoredLists(v int) {
	storedLists.Set(float64(v))
}

// SetLastListLength sets the length of the last produced list.
func SetLastListLength(v int) {
	lastListLength.Set(float64(v))
}
