package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/paperbuild/cmd/paperbuild/commands"
	"git.home.luguber.info/inful/paperbuild/internal/pipeline"
	"git.home.luguber.info/inful/paperbuild/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("paperbuild"),
		kong.Description("Build driver and validation check runner for the paper."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{}); err != nil {
		// kong already routed the error through the command; map it to the
		// process exit status, preserving latexmk's code when present.
		os.Exit(pipeline.FailureExitCode(err))
	}
}
