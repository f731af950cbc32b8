package commands

import (
	"fmt"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/report"
)

// ReportCmd implements the 'report' command.
type ReportCmd struct{}

func (ReportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	written, err := report.Generate(cfg.Checks.DataDir, cfg.Report.ResultsDir)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
