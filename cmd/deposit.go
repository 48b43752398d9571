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

// depositCmd holds the flags for the 'deposit' subcommand.
type depositCmd struct {
	wallet  string
	date    string
	jsonOut bool
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "display the interest state of a deposit wallet" }
func (*depositCmd) Usage() string {
	return `deposit [-w <wallet>] [-d <date>] [-json]

  Displays the deposit terms, the interest accrued so far and the
  projected value at maturity. The wallet must have been created with
  -rate and -term.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Deposit wallet to inspect (defaults to the current wallet)")
	f.StringVar(&c.date, "d", "0d", "Date to value the deposit on (defaults to today)")
	f.BoolVar(&c.jsonOut, "json", false, "Print the deposit state as JSON")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := billfold.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
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

	s, err := w.DepositSummary(asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	deposit := renderer.NewDeposit(s)
	if c.jsonOut {
		return printJSON(deposit)
	}
	printMarkdown(renderer.RenderDeposit(deposit))
	return subcommands.ExitSuccess
}
