package daemon

import (
	"sync"
	"time"
)

// Status is the daemon state snapshot served on /status.
type Status struct {
	State         string     `json:"state"` // starting|idle|building|checking
	StartedAt     time.Time  `json:"started_at"`
	Uptime        string     `json:"uptime"`
	WatchedDirs   int        `json:"watched_dirs"`
	LastBuildAt   *time.Time `json:"last_build_at,omitempty"`
	LastBuildOK   *bool      `json:"last_build_ok,omitempty"`
	LastBuildPDF  string     `json:"last_build_pdf,omitempty"`
	LastRunID     string     `json:"last_run_id,omitempty"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	LastRunOK     *bool      `json:"last_run_ok,omitempty"`
	BuildsTotal   int        `json:"builds_total"`
	CheckRunTotal int        `json:"check_runs_total"`
}

// statusTracker guards the mutable parts of Status.
type statusTracker struct {
	mu        sync.RWMutex
	state     string
	startedAt time.Time
	watched   int

	lastBuildAt  time.Time
	lastBuildOK  bool
	lastBuildPDF string
	buildsTotal  int

	lastRunID    string
	lastRunAt    time.Time
	lastRunOK    bool
	checkRuns    int
}

func newStatusTracker() *statusTracker {
	return &statusTracker{state: "starting", startedAt: time.Now()}
}

func (t *statusTracker) setState(state string) {
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
}

func (t *statusTracker) setWatched(n int) {
	t.mu.Lock()
	t.watched = n
	t.mu.Unlock()
}

func (t *statusTracker) recordBuild(ok bool, pdf string) {
	t.mu.Lock()
	t.lastBuildAt = time.Now()
	t.lastBuildOK = ok
	t.lastBuildPDF = pdf
	t.buildsTotal++
	t.mu.Unlock()
}

func (t *statusTracker) recordRun(runID string, ok bool) {
	t.mu.Lock()
	t.lastRunID = runID
	t.lastRunAt = time.Now()
	t.lastRunOK = ok
	t.checkRuns++
	t.mu.Unlock()
}

func (t *statusTracker) snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Status{
		State:         t.state,
		StartedAt:     t.startedAt,
		Uptime:        time.Since(t.startedAt).Round(time.Second).String(),
		WatchedDirs:   t.watched,
		LastBuildPDF:  t.lastBuildPDF,
		LastRunID:     t.lastRunID,
		BuildsTotal:   t.buildsTotal,
		CheckRunTotal: t.checkRuns,
	}
	if !t.lastBuildAt.IsZero() {
		at, ok := t.lastBuildAt, t.lastBuildOK
		s.LastBuildAt, s.LastBuildOK = &at, &ok
	}
	if !t.lastRunAt.IsZero() {
		at, ok := t.lastRunAt, t.lastRunOK
		s.LastRunAt, s.LastRunOK = &at, &ok
	}
	return s
}
