package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billfold/renderer"

	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	wallet  string
	jsonOut bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display one transaction in full" }
func (*showCmd) Usage() string {
	return `show [-w <wallet>] [-json] <position|id>

  Displays a single transaction, addressed by its position in the
  sorted list or by its id.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to look in (defaults to the current wallet)")
	f.BoolVar(&c.jsonOut, "json", false, "Print the transaction as JSON")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
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
	t, err := resolveTransaction(w, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	detail := renderer.NewTransactionDetail(m, w, t)
	if c.jsonOut {
		return printJSON(detail)
	}
	printMarkdown(renderer.RenderTransactionDetail(detail))
	return subcommands.ExitSuccess
}
