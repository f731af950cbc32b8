package checks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var bannerCaser = cases.Title(language.English)

// BannerTitle renders a check name for human-facing banners
// ("healthy-band" -> "Healthy Band").
func BannerTitle(name string) string {
	return bannerCaser.String(strings.ReplaceAll(name, "-", " "))
}

// Runner executes checks strictly in order, printing a banner before each and
// halting on the first failure.
type Runner struct {
	out      io.Writer
	checks   []Check
	observer Observer
}

// NewRunner creates a pipeline over the given checks. Banners are written to out.
func NewRunner(out io.Writer, checks ...Check) *Runner {
	return &Runner{out: out, checks: checks, observer: NoopObserver{}}
}

// WithObserver injects a lifecycle observer.
func (r *Runner) WithObserver(o Observer) *Runner {
	if o != nil {
		r.observer = o
	}
	return r
}

// Run executes the pipeline. The first failing check aborts the run and its
// error is returned; subsequent checks do not execute. Cancellation of ctx
// aborts before the next check starts and is surfaced as the context error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	var results []Result
	for _, c := range r.checks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		fmt.Fprintf(r.out, "=== Running %s ===\n", BannerTitle(c.Name()))
		r.observer.CheckStarted(ctx, c.Name())

		start := time.Now()
		result, err := c.Run(ctx)
		result.Name = c.Name()
		result.Duration = time.Since(start)
		r.observer.CheckFinished(ctx, result, err)

		if err != nil {
			slog.Error("Check failed", "check", c.Name(), "error", err)
			return results, fmt.Errorf("check %s: %w", c.Name(), err)
		}

		slog.Info("Check passed", "check", c.Name(), "duration", result.Duration)
		if result.Summary != "" {
			fmt.Fprintln(r.out, result.Summary)
		}
		results = append(results, result)
	}

	fmt.Fprintln(r.out, "All checks completed.")
	return results, nil
}
