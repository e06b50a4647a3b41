package metrics

import "github.com/prometheus/client_golang/prometheus"

// RAG Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adeidex",
			Name:      "rag_queries_total",
			Help:      "Total number of answered questions by classified intent",
		},
		[]string{"intent"},
	)

	AnswerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adeidex",
			Name:      "rag_answer_cache_total",
			Help:      "Answer cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	IndexedRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "adeidex",
			Name:      "rag_indexed_records",
			Help:      "Number of records in the in-memory index",
		},
	)
)

var ragMetricsRegistered bool

// RegisterRAGMetrics registers RAG metrics. Must be called once from main.
func RegisterRAGMetrics() {
	if ragMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(AnswerCacheTotal)
	prometheus.MustRegister(IndexedRecords)
	ragMetricsRegistered = true
}
