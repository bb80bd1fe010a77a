// Package metrics records batch compile statistics in a Prometheus registry
// that is written out once per run in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ecs-shapegen/internal/compiler"
	"ecs-shapegen/internal/shape"
)

const namespace = "ecs_shapegen"

// Recorder owns a private registry, so runs in one process never share series.
type Recorder struct {
	registry *prometheus.Registry

	documents   prometheus.Gauge
	shapes      *prometheus.GaugeVec
	grafts      prometheus.Gauge
	diagnostics *prometheus.GaugeVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRecorder creates a Recorder with all series registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents_compiled",
			Help:      "Number of distinct schema documents compiled.",
		}),
		shapes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shapes",
			Help:      "Number of indexed shapes by kind.",
		}, []string{"kind"}),
		grafts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reuse_grafts",
			Help:      "Number of members added by reuse resolution.",
		}),
		diagnostics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "diagnostics",
			Help:      "Number of compile diagnostics by severity.",
		}, []string{"severity"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Wall time from first document to finalized model.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last recorded run.",
		}),
	}

	r.registry.MustRegister(r.documents, r.shapes, r.grafts, r.diagnostics, r.duration, r.lastRun)

	return r
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	return r.registry
}

// Observe records the statistics of a finalized model.
func (r *Recorder) Observe(m *compiler.Model, elapsed time.Duration) {
	r.documents.Set(float64(m.Documents))
	r.grafts.Set(float64(m.Grafts))
	r.duration.Set(elapsed.Seconds())
	r.lastRun.SetToCurrentTime()

	counts := m.Index.CountByKind()
	for _, k := range []shape.Kind{
		shape.KindStructure, shape.KindList, shape.KindMap, shape.KindEnum, shape.KindScalar,
	} {
		r.shapes.WithLabelValues(strings.ToLower(k.String())).Set(float64(counts[k]))
	}

	r.diagnostics.WithLabelValues("error").Set(float64(len(m.Diagnostics.Errors)))
	r.diagnostics.WithLabelValues("warning").Set(float64(len(m.Diagnostics.Warnings)))
	r.diagnostics.WithLabelValues("info").Set(float64(len(m.Diagnostics.Infos)))
}

// WriteFile writes every series to filename atomically.
func (r *Recorder) WriteFile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", filename, err)
	}

	return nil
}
