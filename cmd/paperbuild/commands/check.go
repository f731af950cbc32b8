package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/pipeline"
	"git.home.luguber.info/inful/paperbuild/internal/runstore"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Store string `help:"Optional SQLite path recording the run in the ledger"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(cfg, os.Stdout)
	if c.Store != "" {
		store, err := runstore.NewSQLiteStore(c.Store)
		if err != nil {
			return fmt.Errorf("open run ledger: %w", err)
		}
		defer func() { _ = store.Close() }()
		p = p.WithStore(store)
	}

	_, err = p.RunChecks(ctx, "cli")
	return err
}
