package latex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// BuildResult summarizes a completed compilation.
type BuildResult struct {
	PDFPath  string
	Duration time.Duration
	Skipped  bool // true when rendering was skipped (no latexmk, or explicitly disabled)
}

// Builder orchestrates a single-document build: source validation, output
// directory preparation, and rendering.
type Builder struct {
	renderer Renderer
	skipped  bool
}

// NewBuilder selects the binary renderer when latexmk is usable, falling back
// to a no-op render (scaffolding only) otherwise.
func NewBuilder(binary string) *Builder {
	if ShouldRunLatex(binary) {
		return &Builder{renderer: &BinaryRenderer{}}
	}
	slog.Info("latexmk unavailable or skipped, rendering disabled")
	return &Builder{renderer: &NoopRenderer{}, skipped: true}
}

// WithRenderer injects a custom renderer (for tests).
func (b *Builder) WithRenderer(r Renderer) *Builder {
	if r != nil {
		b.renderer = r
		b.skipped = false
	}
	return b
}

// Build compiles the source and verifies the PDF artifact exists.
func (b *Builder) Build(ctx context.Context, job Job) (BuildResult, error) {
	start := time.Now()

	if _, err := os.Stat(job.Source); err != nil {
		return BuildResult{}, fmt.Errorf("%w: %s", ErrSourceNotFound, job.Source)
	}
	if job.OutputDir != "" {
		if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
			return BuildResult{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := b.renderer.Execute(ctx, job); err != nil {
		return BuildResult{}, err
	}

	result := BuildResult{
		PDFPath:  PDFPath(job.Source, job.OutputDir),
		Duration: time.Since(start),
		Skipped:  b.skipped,
	}
	if b.skipped {
		return result, nil
	}

	if _, err := os.Stat(result.PDFPath); err != nil {
		return BuildResult{}, fmt.Errorf("%w: expected %s", ErrNoPDFProduced, result.PDFPath)
	}
	return result, nil
}
