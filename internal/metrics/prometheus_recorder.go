package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder keeps build metrics in a private registry and writes
// them to a textfile for the node exporter textfile collector.
type PrometheusRecorder struct {
	reg      *prom.Registry
	textfile string

	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	postsParsed   prom.Counter
	pagesWritten  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	lastSuccess   prom.Gauge
}

func NewPrometheusRecorder(reg *prom.Registry, textfile string) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg, textfile: textfile}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "ssg",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "ssg",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.postsParsed = prom.NewCounter(prom.CounterOpts{
		Namespace: "ssg",
		Name:      "posts_parsed_total",
		Help:      "Content files parsed successfully",
	})
	pr.pagesWritten = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "ssg",
		Name:      "pages_written_total",
		Help:      "Output pages written by kind",
	}, []string{"kind"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "ssg",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.lastSuccess = prom.NewGauge(prom.GaugeOpts{
		Namespace: "ssg",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.postsParsed, pr.pagesWritten, pr.buildOutcome, pr.lastSuccess)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPostsParsed(n int) {
	p.postsParsed.Add(float64(n))
}

func (p *PrometheusRecorder) IncPagesWritten(kind string) {
	p.pagesWritten.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome Outcome) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	if outcome == OutcomeSuccess {
		p.lastSuccess.SetToCurrentTime()
	}
}

func (p *PrometheusRecorder) Flush() error {
	if p.textfile == "" {
		return nil
	}
	return prom.WriteToTextfile(p.textfile, p.reg)
}

func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}
