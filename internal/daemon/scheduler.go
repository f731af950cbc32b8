package daemon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler wraps gocron for periodic full check runs, independent of file
// watching. An interval of zero disables scheduling entirely.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates an idle scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleChecks registers a periodic task. Returns the job ID, or an empty
// string when interval is zero.
func (s *Scheduler) ScheduleChecks(interval time.Duration, task func()) (string, error) {
	if interval <= 0 {
		slog.Info("Scheduled check runs disabled")
		return "", nil
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("scheduled-checks"),
	)
	if err != nil {
		return "", fmt.Errorf("create scheduled check job: %w", err)
	}

	slog.Info("Scheduled periodic check runs", "interval", interval)
	return job.ID().String(), nil
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running task to finish.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
