// Package checks implements the validation pipeline run before a paper
// release: a fixed sequence of named checks, each printing a banner, with the
// whole run aborting on the first failure.
package checks

import (
	"context"
	"time"
)

// Check is a single validation step in the pipeline.
type Check interface {
	// Name returns the stable kebab-case identifier of the check.
	Name() string
	// Run executes the check. A non-nil error fails the whole pipeline.
	Run(ctx context.Context) (Result, error)
}

// Result summarizes a completed check.
type Result struct {
	Name      string        `json:"name"`
	Summary   string        `json:"summary"`
	Duration  time.Duration `json:"duration"`
	Artifacts []string      `json:"artifacts,omitempty"` // files written (CSV outputs)
}

// Observer receives pipeline lifecycle notifications. Implementations forward
// to the run ledger, metrics, or an event broker.
type Observer interface {
	CheckStarted(ctx context.Context, name string)
	CheckFinished(ctx context.Context, result Result, err error)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

func (NoopObserver) CheckStarted(context.Context, string)         {}
func (NoopObserver) CheckFinished(context.Context, Result, error) {}
