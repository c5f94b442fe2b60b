package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "payday_"

var (
	registerOnce sync.Once

	gateTicks    prometheus.Counter
	gateBatches  *prometheus.CounterVec
	payoutItems  *prometheus.CounterVec
	batchLatency prometheus.Histogram
)

// Init registers the engine's metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		gateTicks = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "gate_ticks_total",
			Help: "Total auto-approval gate ticks",
		})
		gateBatches = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "gate_batches_total",
			Help: "Gate batch decisions by outcome",
		}, []string{"outcome"})
		payoutItems = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "payout_items_total",
			Help: "Processed payout items by result",
		}, []string{"result"})
		batchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "process_batch_seconds",
			Help:    "Processing batch duration in seconds",
			Buckets: prometheus.DefBuckets,
		})

		prometheus.MustRegister(gateTicks, gateBatches, payoutItems, batchLatency)
	})
}

func IncGateTick() {
	if gateTicks != nil {
		gateTicks.Inc()
	}
}

func IncGateBatch(outcome string) {
	if gateBatches != nil {
		gateBatches.WithLabelValues(outcome).Inc()
	}
}

func IncPayoutItem(result string) {
	if payoutItems != nil {
		payoutItems.WithLabelValues(result).Inc()
	}
}

func ObserveBatchDuration(seconds float64) {
	if batchLatency != nil {
		batchLatency.Observe(seconds)
	}
}
