package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/daemon"
)

// DaemonCmd implements watch mode.
type DaemonCmd struct {
	Listen string `help:"Override the configured HTTP listen address"`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if d.Listen != "" {
		cfg.Daemon.Listen = d.Listen
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dm, err := daemon.New(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}

	slog.Info("Daemon starting, press Ctrl-C to stop")
	return dm.Run(ctx)
}
