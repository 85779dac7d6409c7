package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "importtree_parsing_seconds",
		Help:    "Time spent extracting specifiers from a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "importtree_analysis_seconds",
		Help:    "Time spent building one import tree.",
		Buckets: prometheus.DefBuckets,
	})

	PagesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importtree_pages_analyzed_total",
		Help: "Total number of pages traversed.",
	})

	FilesVisited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importtree_files_visited_total",
		Help: "Total number of files added to a page's reachability set.",
	})

	TraversalWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importtree_traversal_warnings_total",
		Help: "Recoverable traversal conditions by error code, counted even when warnings are suppressed.",
	}, []string{"code"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importtree_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)

// WriteTextfile dumps every registered metric to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
