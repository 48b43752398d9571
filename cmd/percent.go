package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billfold"
	"billfold/renderer"

	"github.com/google/subcommands"
)

// percentCmd holds the flags for the 'percent' subcommand.
type percentCmd struct {
	wallet string
	typ    string
}

func (*percentCmd) Name() string     { return "percent" }
func (*percentCmd) Synopsis() string { return "display the category breakdown of a wallet" }
func (*percentCmd) Usage() string {
	return `percent [-w <wallet>] [-type income|expense]

  Displays per-category totals and their share of the wallet's income
  or expense.
`
}

func (c *percentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to break down (defaults to the current wallet)")
	f.StringVar(&c.typ, "type", "expense", "Direction to break down: income or expense")
}

func (c *percentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir, err := billfold.ParseDirection(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	w, err := requireWallet(m, c.wallet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BreakdownMarkdown(w, dir))
	return subcommands.ExitSuccess
}
