package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	checkDuration *prom.HistogramVec
	buildDuration prom.Histogram
	checkResults  *prom.CounterVec
	runOutcome    *prom.CounterVec
	buildOutcome  *prom.CounterVec
	watchedFiles  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.checkDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "paperbuild",
			Name:      "check_duration_seconds",
			Help:      "Duration of individual validation checks",
			Buckets:   prom.DefBuckets,
		}, []string{"check"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "paperbuild",
			Name:      "build_duration_seconds",
			Help:      "Total PDF build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.checkResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "paperbuild",
			Name:      "check_results_total",
			Help:      "Check result counts by outcome",
		}, []string{"check", "result"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "paperbuild",
			Name:      "run_outcomes_total",
			Help:      "Check pipeline run outcomes by final status",
		}, []string{"outcome"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "paperbuild",
			Name:      "build_outcomes_total",
			Help:      "PDF build outcomes by final status",
		}, []string{"outcome"})
		pr.watchedFiles = prom.NewGauge(prom.GaugeOpts{
			Namespace: "paperbuild",
			Name:      "watched_files",
			Help:      "Number of files currently matched by the watch globs",
		})
		reg.MustRegister(pr.checkDuration, pr.buildDuration, pr.checkResults, pr.runOutcome, pr.buildOutcome, pr.watchedFiles)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveCheckDuration(check string, d time.Duration) {
	if p == nil || p.checkDuration == nil {
		return
	}
	p.checkDuration.WithLabelValues(check).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCheckResult(check string, result ResultLabel) {
	if p == nil || p.checkResults == nil {
		return
	}
	p.checkResults.WithLabelValues(check, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetWatchedFiles(n int) {
	if p == nil || p.watchedFiles == nil {
		return
	}
	p.watchedFiles.Set(float64(n))
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the
// provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
