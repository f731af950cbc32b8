// Package pipeline wires the check runner and the PDF builder to the run
// ledger, metrics, and the optional event broker. Both the CLI and the daemon
// drive their work through it.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/paperbuild/internal/checks"
	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/events"
	"git.home.luguber.info/inful/paperbuild/internal/gitmeta"
	"git.home.luguber.info/inful/paperbuild/internal/latex"
	"git.home.luguber.info/inful/paperbuild/internal/logfields"
	"git.home.luguber.info/inful/paperbuild/internal/metrics"
	"git.home.luguber.info/inful/paperbuild/internal/runstore"
)

// Pipeline executes check runs and builds with shared observability.
type Pipeline struct {
	cfg       *config.Config
	out       io.Writer
	store     runstore.Store
	recorder  metrics.Recorder
	publisher events.Publisher
	builder   *latex.Builder
}

// New creates a pipeline with no ledger, no metrics, and no broker attached.
func New(cfg *config.Config, out io.Writer) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		out:       out,
		recorder:  metrics.NoopRecorder{},
		publisher: events.NoopPublisher{},
		builder:   latex.NewBuilder(cfg.Paper.Latexmk),
	}
}

// WithStore attaches the run ledger.
func (p *Pipeline) WithStore(store runstore.Store) *Pipeline {
	if store != nil {
		p.store = store
	}
	return p
}

// WithRecorder attaches a metrics recorder.
func (p *Pipeline) WithRecorder(rec metrics.Recorder) *Pipeline {
	if rec != nil {
		p.recorder = rec
	}
	return p
}

// WithPublisher attaches an event publisher.
func (p *Pipeline) WithPublisher(pub events.Publisher) *Pipeline {
	if pub != nil {
		p.publisher = pub
	}
	return p
}

// WithBuilder injects a custom builder (for tests).
func (p *Pipeline) WithBuilder(b *latex.Builder) *Pipeline {
	if b != nil {
		p.builder = b
	}
	return p
}

// RunSummary describes a completed check run.
type RunSummary struct {
	RunID    string
	Results  []checks.Result
	Duration time.Duration
}

// RunChecks executes the configured checks. The trigger names what initiated
// the run (cli, watch, schedule) and lands in the ledger metadata.
func (p *Pipeline) RunChecks(ctx context.Context, trigger string) (RunSummary, error) {
	runID := uuid.NewString()
	start := time.Now()
	meta := map[string]string{"trigger": trigger}

	list, err := checks.ForConfig(p.cfg)
	if err != nil {
		return RunSummary{}, err
	}

	p.appendEvent(ctx, runID, runstore.EventRunStarted, map[string]any{"checks": p.cfg.Checks.Order}, meta)
	p.publish(ctx, events.RunEvent{RunID: runID, Type: runstore.EventRunStarted})

	runner := checks.NewRunner(p.out, list...).WithObserver(&runObserver{p: p, runID: runID, meta: meta})
	results, runErr := runner.Run(ctx)
	duration := time.Since(start)

	switch {
	case runErr == nil:
		p.recorder.IncRunOutcome("success")
		p.appendEvent(ctx, runID, runstore.EventRunCompleted, map[string]any{"duration_ms": duration.Milliseconds()}, meta)
		p.publish(ctx, events.RunEvent{RunID: runID, Type: runstore.EventRunCompleted})
	case errors.Is(runErr, context.Canceled):
		p.recorder.IncRunOutcome("canceled")
		p.appendEvent(ctx, runID, runstore.EventRunFailed, map[string]any{"error": runErr.Error()}, meta)
	default:
		p.recorder.IncRunOutcome("failed")
		p.appendEvent(ctx, runID, runstore.EventRunFailed, map[string]any{"error": runErr.Error()}, meta)
		p.publish(ctx, events.RunEvent{RunID: runID, Type: runstore.EventRunFailed, Error: runErr.Error()})
	}

	return RunSummary{RunID: runID, Results: results, Duration: duration}, runErr
}

// RunBuild compiles the paper, stamping the source directory with the current
// git revision first.
func (p *Pipeline) RunBuild(ctx context.Context, trigger string) (latex.BuildResult, error) {
	runID := uuid.NewString()
	meta := map[string]string{"trigger": trigger}

	sourceDir := filepath.Dir(p.cfg.Paper.Source)
	if _, err := gitmeta.WriteStamp(sourceDir, time.Now()); err != nil {
		slog.Warn("Failed to write git stamp", logfields.Error(err))
	}

	job := latex.Job{
		Source:    p.cfg.Paper.Source,
		OutputDir: p.cfg.Paper.OutputDir,
		Latexmk:   p.cfg.Paper.Latexmk,
		ExtraArgs: p.cfg.Paper.ExtraArgs,
	}

	result, err := p.builder.Build(ctx, job)
	if err != nil {
		p.recorder.IncBuildOutcome("failed")
		p.appendEvent(ctx, runID, runstore.EventBuildFailed, map[string]any{"error": err.Error()}, meta)
		p.publish(ctx, events.RunEvent{RunID: runID, Type: runstore.EventBuildFailed, Error: err.Error()})
		return latex.BuildResult{}, err
	}

	p.recorder.IncBuildOutcome("success")
	p.recorder.ObserveBuildDuration(result.Duration)
	p.appendEvent(ctx, runID, runstore.EventBuildFinished, map[string]any{
		"pdf":         result.PDFPath,
		"duration_ms": result.Duration.Milliseconds(),
		"skipped":     result.Skipped,
	}, meta)
	p.publish(ctx, events.RunEvent{RunID: runID, Type: runstore.EventBuildFinished, Summary: result.PDFPath})

	return result, nil
}

func (p *Pipeline) appendEvent(ctx context.Context, runID, eventType string, payload map[string]any, meta map[string]string) {
	if p.store == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to marshal ledger payload", "type", eventType, logfields.Error(err))
		return
	}
	if err := p.store.Append(ctx, runID, eventType, data, meta); err != nil {
		slog.Warn("Failed to append ledger event", "type", eventType, logfields.Error(err))
	}
}

func (p *Pipeline) publish(ctx context.Context, event events.RunEvent) {
	event.Timestamp = time.Now()
	if err := p.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish run event", "type", event.Type, logfields.Error(err))
	}
}

// runObserver forwards check lifecycle into the ledger and metrics.
type runObserver struct {
	p     *Pipeline
	runID string
	meta  map[string]string
}

func (o *runObserver) CheckStarted(_ context.Context, name string) {
	slog.Debug("Check started", logfields.Check(name), logfields.RunID(o.runID))
}

func (o *runObserver) CheckFinished(ctx context.Context, result checks.Result, err error) {
	o.p.recorder.ObserveCheckDuration(result.Name, result.Duration)
	if err != nil {
		o.p.recorder.IncCheckResult(result.Name, metrics.ResultFailed)
		o.p.appendEvent(ctx, o.runID, runstore.EventCheckFailed, map[string]any{
			"check": result.Name,
			"error": err.Error(),
		}, o.meta)
		o.p.publish(ctx, events.RunEvent{RunID: o.runID, Type: runstore.EventCheckFailed, Check: result.Name, Error: err.Error()})
		return
	}
	o.p.recorder.IncCheckResult(result.Name, metrics.ResultSuccess)
	o.p.appendEvent(ctx, o.runID, runstore.EventCheckPassed, map[string]any{
		"check":       result.Name,
		"summary":     result.Summary,
		"duration_ms": result.Duration.Milliseconds(),
		"artifacts":   result.Artifacts,
	}, o.meta)
	o.p.publish(ctx, events.RunEvent{RunID: o.runID, Type: runstore.EventCheckPassed, Check: result.Name, Summary: result.Summary})
}

// FailureExitCode maps a pipeline error to the process exit status, keeping
// the underlying compiler's exit code when one exists.
func FailureExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
