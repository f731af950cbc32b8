package daemon

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/pipeline"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paper.Source = filepath.Join(dir, "main.tex")
	cfg.Paper.OutputDir = filepath.Join(dir, "out")
	cfg.Checks.DataDir = filepath.Join(dir, "data")
	cfg.Report.ResultsDir = filepath.Join(dir, "results")
	cfg.Daemon.Listen = "127.0.0.1:0"
	cfg.Daemon.StorePath = ""
	require.NoError(t, os.WriteFile(cfg.Paper.Source, []byte(`\documentclass{article}\begin{document}x\end{document}`), 0o644))
	return cfg
}

func TestRelevantEvent(t *testing.T) {
	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"main.tex", fsnotify.Write, true},
		{"refs.bib", fsnotify.Create, true},
		{"style.sty", fsnotify.Rename, true},
		{"main.pdf", fsnotify.Write, false},
		{"main.aux", fsnotify.Write, false},
		{".main.tex.swp", fsnotify.Write, false},
		{"main.tex~", fsnotify.Write, false},
		{"main.tex", fsnotify.Chmod, false},
		{"main.tex", fsnotify.Remove, false},
	}
	for _, tc := range cases {
		got := relevantEvent(fsnotify.Event{Name: "/paper/" + tc.name, Op: tc.op})
		if got != tc.want {
			t.Errorf("relevantEvent(%s, %s) = %v, want %v", tc.name, tc.op, got, tc.want)
		}
	}
}

func TestSourceWatcherDetectsChange(t *testing.T) {
	dir := t.TempDir()
	sw, err := NewSourceWatcher(dir, nil)
	require.NoError(t, err)
	defer sw.Close()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go sw.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tex"), []byte("x"), 0o644))

	select {
	case path := <-sw.Changes():
		require.Equal(t, "main.tex", filepath.Base(path))
	case <-time.After(5 * time.Second):
		t.Fatal("no change event delivered")
	}
}

func TestSourceWatcherIgnoresArtifacts(t *testing.T) {
	dir := t.TempDir()
	sw, err := NewSourceWatcher(dir, nil)
	require.NoError(t, err)
	defer sw.Close()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go sw.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.aux"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.log"), []byte("x"), 0o644))

	select {
	case path := <-sw.Changes():
		t.Fatalf("unexpected change event for %s", path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestStatusTracker(t *testing.T) {
	tr := newStatusTracker()
	s := tr.snapshot()
	require.Equal(t, "starting", s.State)
	require.Nil(t, s.LastBuildAt)
	require.Nil(t, s.LastRunAt)

	tr.setState("idle")
	tr.setWatched(3)
	tr.recordBuild(true, "/out/main.pdf")
	tr.recordRun("run-1", false)

	s = tr.snapshot()
	require.Equal(t, "idle", s.State)
	require.Equal(t, 3, s.WatchedDirs)
	require.Equal(t, 1, s.BuildsTotal)
	require.Equal(t, 1, s.CheckRunTotal)
	require.NotNil(t, s.LastBuildOK)
	require.True(t, *s.LastBuildOK)
	require.Equal(t, "/out/main.pdf", s.LastBuildPDF)
	require.Equal(t, "run-1", s.LastRunID)
	require.NotNil(t, s.LastRunOK)
	require.False(t, *s.LastRunOK)
}

func TestWorkerGroupStopAndWait(t *testing.T) {
	var g WorkerGroup
	done := make(chan struct{})
	require.True(t, g.Go(func() { <-done }))

	close(done)
	require.NoError(t, g.StopAndWait(t.Context()))

	// After stop, no new workers start.
	require.False(t, g.Go(func() {}))
}

func TestSchedulerDisabledInterval(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer s.Stop()

	id, err := s.ScheduleChecks(0, func() {})
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestHTTPServerEndpoints(t *testing.T) {
	cfg := testConfig(t)
	d := &Daemon{
		cfg:      cfg,
		status:   newStatusTracker(),
		triggers: make(chan trigger, 4),
		pipe:     pipeline.New(cfg, io.Discard),
	}
	d.status.setState("idle")

	srv := NewHTTPServer(cfg.Daemon.Listen, d, nil, cfg.Report.ResultsDir)
	require.NoError(t, srv.Start(t.Context()))
	defer srv.Stop(context.Background())

	base := "http://" + srv.Addr()

	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/status")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"state":"idle"`)

	// No check data yet: the report endpoint degrades to 503.
	resp, err = http.Get(base + "/report")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Post(base+"/api/check", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Len(t, d.triggers, 1)

	// Metrics are disabled (nil registry).
	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDaemonWatchToCheckFlow(t *testing.T) {
	t.Setenv("PAPERBUILD_SKIP_LATEX", "1")

	cfg := testConfig(t)
	cfg.Daemon.Debounce = "50ms"
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	d, err := New(cfg, &out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// Wait until the daemon finished starting up.
	require.Eventually(t, func() bool { return d.Status().State != "starting" }, 5*time.Second, 10*time.Millisecond)

	// Touch the source; expect a debounced build+check cycle.
	require.NoError(t, os.WriteFile(cfg.Paper.Source, []byte(`\documentclass{article}\begin{document}y\end{document}`), 0o644))

	require.Eventually(t, func() bool {
		return d.Status().CheckRunTotal >= 1
	}, 15*time.Second, 50*time.Millisecond, "check run never happened")

	s := d.Status()
	require.NotNil(t, s.LastRunOK)
	require.True(t, *s.LastRunOK, "check run failed")
	require.FileExists(t, filepath.Join(cfg.Checks.DataDir, "healthy_band_scan.csv"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}
