package latex

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Renderer abstracts how the PDF rendering step is performed. This allows
// swapping the external latexmk binary (BinaryRenderer) with alternative
// strategies (no-op for tests) without changing build orchestration.
type Renderer interface {
	Execute(ctx context.Context, job Job) error
}

// Job describes a single compilation of a tex source.
type Job struct {
	Source    string   // path to the main .tex file
	OutputDir string   // latexmk -outdir; empty means the source directory
	Latexmk   string   // binary name/path, default "latexmk"
	ExtraArgs []string // appended after the standard flags
}

// standardFlags select non-interactive, halt-on-error PDF compilation.
var standardFlags = []string{"-pdf", "-interaction=nonstopmode", "-halt-on-error"}

// ShouldRunLatex reports whether the external latexmk binary should be invoked.
// PAPERBUILD_SKIP_LATEX=1 forces a skip regardless of binary availability.
func ShouldRunLatex(binary string) bool {
	if os.Getenv("PAPERBUILD_SKIP_LATEX") == "1" {
		return false
	}
	if binary == "" {
		binary = "latexmk"
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// BinaryRenderer invokes the latexmk binary present on PATH.
type BinaryRenderer struct{}

func (b *BinaryRenderer) Execute(ctx context.Context, job Job) error {
	binary := job.Latexmk
	if binary == "" {
		binary = "latexmk"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%w: %w", ErrLatexmkNotFound, err)
	}

	args := append([]string(nil), standardFlags...)
	if job.OutputDir != "" {
		args = append(args, "-outdir="+job.OutputDir)
	}
	args = append(args, job.ExtraArgs...)
	args = append(args, job.Source)

	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("BinaryRenderer invoking latexmk", "binary", binary, "args", args)

	err := cmd.Run()

	outStr := stdout.String()
	errStr := stderr.String()
	if outStr != "" {
		slog.Debug("latexmk stdout", "output", outStr)
	}
	if errStr != "" {
		slog.Warn("latexmk stderr", "error_output", errStr)
	}

	if err != nil {
		// latexmk reports fatal TeX errors on stdout; include both streams
		// so the failing line is visible in the surfaced error.
		output := errStr
		if output == "" {
			output = outStr
		} else if outStr != "" {
			output = outStr + "\n" + errStr
		}
		if output != "" {
			return fmt.Errorf("%w: %w: %s", ErrLatexExecutionFailed, err, output)
		}
		return fmt.Errorf("%w: %w", ErrLatexExecutionFailed, err)
	}
	return nil
}

// NoopRenderer performs no rendering; useful in tests or when only the
// surrounding orchestration is being exercised.
type NoopRenderer struct{}

func (n *NoopRenderer) Execute(_ context.Context, job Job) error {
	slog.Debug("NoopRenderer skipping render", "source", job.Source)
	return nil
}
