package metrics

import "time"

// ResultLabel enumerates check result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for build and check metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe on the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveCheckDuration(check string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncCheckResult(check string, result ResultLabel)
	IncRunOutcome(outcome string) // outcome: success|failed|canceled
	IncBuildOutcome(outcome string)
	SetWatchedFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCheckDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncCheckResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) SetWatchedFiles(int)                        {}
