package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	documentsConverted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layoutmd",
			Name:      "documents_converted_total",
			Help:      "Total documents converted by result (success, error)",
		},
		[]string{"result"},
	)

	pagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layoutmd",
			Name:      "pages_processed_total",
			Help:      "Total pages processed by result (success, error)",
		},
		[]string{"result"},
	)

	analyzeLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "layoutmd",
			Name:      "page_analyze_duration_seconds",
			Help:      "Duration of per-page layout analysis",
			Buckets:   prometheus.DefBuckets,
		},
	)

	regionsDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layoutmd",
			Name:      "regions_detected_total",
			Help:      "Detected layout regions by kind",
		},
		[]string{"kind"},
	)

	tableCells = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "layoutmd",
			Name:      "table_cells_total",
			Help:      "Total synthesized table cells",
		},
	)

	generatorRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layoutmd",
			Name:      "generator_runs_total",
			Help:      "Markdown generator invocations by strategy",
		},
		[]string{"strategy"},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(documentsConverted, pagesProcessed, analyzeLatency, regionsDetected, tableCells, generatorRuns)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func IncDocument(result string) { documentsConverted.WithLabelValues(result).Inc() }
func IncPage(result string)     { pagesProcessed.WithLabelValues(result).Inc() }

func ObserveAnalyze(dur time.Duration) { analyzeLatency.Observe(dur.Seconds()) }

func AddRegions(kind string, n int) { regionsDetected.WithLabelValues(kind).Add(float64(n)) }
func AddCells(n int)                { tableCells.Add(float64(n)) }

func IncGenerator(strategy string) { generatorRuns.WithLabelValues(strategy).Inc() }
