package commands

import (
	"fmt"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/latex"
)

// CleanCmd removes latexmk intermediates but keeps the PDF.
type CleanCmd struct{}

func (CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := latex.Clean(cfg.Paper.Source, cfg.Paper.OutputDir); err != nil {
		return err
	}
	fmt.Println("Removed intermediate files.")
	return nil
}

// VerycleanCmd removes intermediates and the PDF.
type VerycleanCmd struct{}

func (VerycleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := latex.VeryClean(cfg.Paper.Source, cfg.Paper.OutputDir); err != nil {
		return err
	}
	fmt.Println("Removed intermediate files and the PDF.")
	return nil
}
