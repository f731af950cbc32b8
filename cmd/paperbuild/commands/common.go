// Package commands defines the paperbuild CLI surface.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// Global carries shared state into subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"paperbuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build     BuildCmd     `cmd:"" help:"Compile the paper to PDF with latexmk"`
	Clean     CleanCmd     `cmd:"" help:"Remove LaTeX intermediate files, keeping the PDF"`
	Veryclean VerycleanCmd `cmd:"" help:"Remove intermediates and the PDF"`
	Check     CheckCmd     `cmd:"" help:"Run the validation checks, halting on the first failure"`
	Report    ReportCmd    `cmd:"" help:"Generate LaTeX tables and summary report from check data"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
	Daemon    DaemonCmd    `cmd:"" help:"Watch sources, rebuilding and rechecking on change"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel resolves the log level from the verbose flag and
// PAPERBUILD_LOG_LEVEL. The env var wins so operators can raise daemon
// verbosity without a restart flag.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("PAPERBUILD_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
