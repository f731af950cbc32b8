// Package daemon implements watch mode: it rebuilds the paper and reruns the
// validation checks when source files change, runs checks on a schedule, and
// exposes status, the rendered report, and metrics over HTTP.
package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/events"
	"git.home.luguber.info/inful/paperbuild/internal/logfields"
	"git.home.luguber.info/inful/paperbuild/internal/metrics"
	"git.home.luguber.info/inful/paperbuild/internal/pipeline"
	"git.home.luguber.info/inful/paperbuild/internal/runstore"
)

// trigger describes why work was requested.
type trigger struct {
	kind   string // watch|schedule|api
	build  bool
	checks bool
}

// Daemon owns the watcher, the scheduler, the HTTP server, and the shared
// pipeline. Construct with New, then Run until the context is canceled.
type Daemon struct {
	cfg      *config.Config
	pipe     *pipeline.Pipeline
	store    runstore.Store
	pub      events.Publisher
	registry *prom.Registry

	watcher   *SourceWatcher
	scheduler *Scheduler
	http      *HTTPServer
	workers   WorkerGroup
	status    *statusTracker

	triggers chan trigger
}

// New wires the daemon from configuration. Check banners go to out. The
// returned daemon owns the run ledger and publisher and closes them on
// shutdown.
func New(cfg *config.Config, out io.Writer) (*Daemon, error) {
	d := &Daemon{
		cfg:      cfg,
		status:   newStatusTracker(),
		triggers: make(chan trigger, 16),
		pub:      events.NoopPublisher{},
	}

	storePath := cfg.Daemon.StorePath
	if storePath == "" {
		storePath = ":memory:"
	}
	store, err := runstore.NewSQLiteStore(storePath)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}
	d.store = store

	recorder := metrics.Recorder(metrics.NoopRecorder{})
	if cfg.Daemon.Metrics {
		d.registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(d.registry)
	}

	if cfg.Daemon.NATS.Enabled {
		pub, err := events.NewNATSPublisher(cfg.Daemon.NATS)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect event broker: %w", err)
		}
		d.pub = pub
	}

	d.pipe = pipeline.New(cfg, out).
		WithStore(d.store).
		WithRecorder(recorder).
		WithPublisher(d.pub)

	watchDir := filepath.Dir(cfg.Paper.Source)
	watcher, err := NewSourceWatcher(watchDir, cfg.Daemon.Watch)
	if err != nil {
		d.closeResources()
		return nil, err
	}
	d.watcher = watcher
	recorder.SetWatchedFiles(watcher.WatchedDirs())

	scheduler, err := NewScheduler()
	if err != nil {
		d.closeResources()
		return nil, err
	}
	d.scheduler = scheduler

	d.http = NewHTTPServer(cfg.Daemon.Listen, d, d.registry, cfg.Report.ResultsDir)
	return d, nil
}

// Status returns the current daemon snapshot.
func (d *Daemon) Status() Status {
	return d.status.snapshot()
}

// RequestBuild queues a rebuild plus a check run.
func (d *Daemon) RequestBuild(kind string) {
	select {
	case d.triggers <- trigger{kind: kind, build: true, checks: true}:
	default:
		slog.Warn("Trigger queue full, dropping build request", "kind", kind)
	}
}

// RequestChecks queues a check-only run.
func (d *Daemon) RequestChecks(kind string) {
	select {
	case d.triggers <- trigger{kind: kind, checks: true}:
	default:
		slog.Warn("Trigger queue full, dropping check request", "kind", kind)
	}
}

// Run starts all components and blocks until ctx is canceled, then shuts
// everything down in reverse order.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.http.Start(ctx); err != nil {
		d.closeResources()
		return err
	}

	if _, err := d.scheduler.ScheduleChecks(d.cfg.Daemon.ParsedCheckInterval, func() {
		d.RequestChecks("schedule")
	}); err != nil {
		d.closeResources()
		return err
	}
	d.scheduler.Start()

	d.workers.Go(func() { d.watcher.Run(ctx) })
	d.workers.Go(func() { d.debounceLoop(ctx) })
	d.workers.Go(func() { d.workLoop(ctx) })

	d.status.setWatched(d.watcher.WatchedDirs())
	d.status.setState("idle")
	slog.Info("Daemon running",
		"watch_dirs", d.watcher.WatchedDirs(),
		"listen", d.http.Addr(),
		"check_interval", d.cfg.Daemon.ParsedCheckInterval)

	<-ctx.Done()
	return d.shutdown()
}

func (d *Daemon) shutdown() error {
	slog.Info("Shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var firstErr error
	if err := d.scheduler.Stop(); err != nil {
		firstErr = err
	}
	if err := d.watcher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := d.workers.StopAndWait(stopCtx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := d.http.Stop(stopCtx); err != nil && firstErr == nil {
		firstErr = err
	}
	d.closeResources()
	return firstErr
}

func (d *Daemon) closeResources() {
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			slog.Error("Failed to close run ledger", "error", err)
		}
	}
	if d.pub != nil {
		d.pub.Close()
	}
}

// debounceLoop coalesces bursts of file changes into single build triggers.
// The quiet window restarts on every change, so a stream of rapid saves
// produces one rebuild after the stream settles.
func (d *Daemon) debounceLoop(ctx context.Context) {
	quiet := d.cfg.Daemon.ParsedDebounce
	if quiet <= 0 {
		quiet = 2 * time.Second
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-d.watcher.Changes():
			if !ok {
				return
			}
			slog.Debug("Debouncing change", "file", path)
			if !timer.Stop() && timerC != nil {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(quiet)
			timerC = timer.C
		case <-timerC:
			timerC = nil
			select {
			case d.triggers <- trigger{kind: "watch", build: true, checks: true}:
			default:
			}
		}
	}
}

// workLoop executes triggers one at a time: build first, then checks.
func (d *Daemon) workLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-d.triggers:
			d.execute(ctx, t)
		}
	}
}

func (d *Daemon) execute(ctx context.Context, t trigger) {
	if t.build {
		d.status.setState("building")
		result, err := d.pipe.RunBuild(ctx, t.kind)
		if err != nil {
			slog.Error("Build failed", logfields.Trigger(t.kind), logfields.Error(err))
			d.status.recordBuild(false, "")
		} else {
			d.status.recordBuild(true, result.PDFPath)
		}
	}

	if t.checks && ctx.Err() == nil {
		d.status.setState("checking")
		summary, err := d.pipe.RunChecks(ctx, t.kind)
		d.status.recordRun(summary.RunID, err == nil)
		if err != nil {
			slog.Error("Check run failed", logfields.Trigger(t.kind), logfields.RunID(summary.RunID), logfields.Error(err))
		}
	}

	d.status.setState("idle")
}
