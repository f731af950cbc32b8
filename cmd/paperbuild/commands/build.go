package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/pipeline"
	"git.home.luguber.info/inful/paperbuild/internal/runstore"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override the configured output directory"`
	Store  string `help:"Optional SQLite path recording the build in the ledger"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Output != "" {
		cfg.Paper.OutputDir = b.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(cfg, os.Stdout)
	if b.Store != "" {
		store, err := runstore.NewSQLiteStore(b.Store)
		if err != nil {
			return fmt.Errorf("open run ledger: %w", err)
		}
		defer func() { _ = store.Close() }()
		p = p.WithStore(store)
	}

	result, err := p.RunBuild(ctx, "cli")
	if err != nil {
		return err
	}

	if result.Skipped {
		slog.Warn("Rendering skipped, no PDF produced")
		return nil
	}
	fmt.Printf("Wrote %s\n", result.PDFPath)
	return nil
}
