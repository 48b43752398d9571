package main

import (
	"context"
	"flag"
	"os"
	"path"

	"billfold/cmd"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Shell completion when invoked by bash/zsh/fish through COMP_LINE.
	// Run `COMP_INSTALL=1 bf` once to install it.
	completions(commander).Complete("bf")

	flag.Parse()

	// An unknown subcommand may be provided by an external bf-<name>
	// binary on the PATH.
	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if ran, code := cmd.RunExtension(name, flag.Args()[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a built-in subcommand.
func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completions describes the command line for shell completion.
func completions(commander *subcommands.Commander) *complete.Command {
	sub := make(map[string]*complete.Command)
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		sub[c.Name()] = &complete.Command{Args: predict.Something}
	})
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
			"currency":    predict.Set{"EUR", "USD", "GBP", "CHF"},
			"v":           predict.Nothing,
		},
	}
}
