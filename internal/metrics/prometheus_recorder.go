package metrics

import (
	"bytes"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "docindex"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	stageDuration  *prom.HistogramVec
	runDuration    prom.Histogram
	metadata       *prom.CounterVec
	sectionEntries *prom.GaugeVec
	runOutcome     *prom.CounterVec
	lastRun        prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual generation stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total generation duration",
		Buckets:   prom.DefBuckets,
	})
	pr.metadata = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_lookups_total",
		Help:      "Companion metadata lookups by result",
	}, []string{"result"})
	pr.sectionEntries = prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "section_entries",
		Help:      "Entries listed per section in the last run",
	}, []string{"section"})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Generation runs by final status",
	}, []string{"outcome"})
	pr.lastRun = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed run",
	})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.metadata, pr.sectionEntries, pr.runOutcome, pr.lastRun)
	return pr
}

// Registry returns the registry the collectors are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage Stage, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncMetadataResult(result MetadataResult) {
	if p == nil {
		return
	}
	p.metadata.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveSections(entries map[string]int) {
	if p == nil {
		return
	}
	p.sectionEntries.Reset()
	for section, n := range entries {
		p.sectionEntries.WithLabelValues(section).Set(float64(n))
	}
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastRun.SetToCurrentTime()
}

// Textfile renders the registry in the text exposition format read by the
// node_exporter textfile collector.
func (p *PrometheusRecorder) Textfile() ([]byte, error) {
	mfs, err := p.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, fmt.Errorf("encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}
