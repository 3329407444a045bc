// Package metrics counts the work of a featurize run in a private prometheus
// registry and writes it out in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "featurize"

// Recorder holds the counters of one run. It satisfies dataset.Observer.
type Recorder struct {
	registry *prometheus.Registry

	rowsRead           prometheus.Counter
	rowsSkipped        *prometheus.CounterVec
	recordsWritten     prometheus.Counter
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	gamesParsed        prometheus.Counter
	positionsExtracted prometheus.Counter
}

// NewRecorder registers the run counters. runID is attached as a constant label.
func NewRecorder(runID string) *Recorder {
	labels := prometheus.Labels{"run_id": runID}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	r := &Recorder{
		registry:           prometheus.NewRegistry(),
		rowsRead:           counter("rows_read_total", "Input rows read."),
		recordsWritten:     counter("records_written_total", "Feature records produced."),
		cacheHits:          counter("cache_hits_total", "Feature vectors served from the cache."),
		cacheMisses:        counter("cache_misses_total", "Feature vectors computed after a cache miss."),
		gamesParsed:        counter("games_parsed_total", "Games replayed."),
		positionsExtracted: counter("positions_extracted_total", "Positions emitted by extraction."),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rows_skipped_total",
			Help:        "Input rows or games skipped, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
	}
	r.registry.MustRegister(
		r.rowsRead,
		r.rowsSkipped,
		r.recordsWritten,
		r.cacheHits,
		r.cacheMisses,
		r.gamesParsed,
		r.positionsExtracted,
	)
	return r
}

func (r *Recorder) RowRead()                 { r.rowsRead.Inc() }
func (r *Recorder) RowSkipped(reason string) { r.rowsSkipped.WithLabelValues(reason).Inc() }
func (r *Recorder) RecordWritten()           { r.recordsWritten.Inc() }
func (r *Recorder) CacheHit()                { r.cacheHits.Inc() }
func (r *Recorder) CacheMiss()               { r.cacheMisses.Inc() }
func (r *Recorder) GameParsed()              { r.gamesParsed.Inc() }

func (r *Recorder) PositionsExtracted(n int) {
	if n > 0 {
		r.positionsExtracted.Add(float64(n))
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes all counters to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
