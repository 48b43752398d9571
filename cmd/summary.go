package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billfold/renderer"

	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	wallet      string
	sort        string
	noBreakdown bool
	noTx        bool
	jsonOut     bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a wallet dashboard" }
func (*summaryCmd) Usage() string {
	return `summary [-w <wallet>] [-sort <key>] [-no-breakdown] [-no-tx] [-json]

  Displays the wallet's balance, income and expense totals, category
  breakdowns and transaction list.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to summarize (defaults to the current wallet)")
	f.StringVar(&c.sort, "sort", "", "Sort order for the transaction list: recent, amount or category")
	f.BoolVar(&c.noBreakdown, "no-breakdown", false, "Skip the category breakdown sections")
	f.BoolVar(&c.noTx, "no-tx", false, "Skip the transaction list")
	f.BoolVar(&c.jsonOut, "json", false, "Print the summary as JSON")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if c.sort != "" && !w.Sorting.SetStrategy(c.sort) {
		fmt.Fprintf(os.Stderr, "Error: unknown sort order %q (valid: recent, amount, category)\n", c.sort)
		return subcommands.ExitUsageError
	}

	summary := renderer.NewWalletSummary(w)
	if c.jsonOut {
		return printJSON(summary)
	}
	opts := renderer.SummaryRenderOptions{SkipBreakdown: c.noBreakdown, SkipTransactions: c.noTx}
	printMarkdown(renderer.RenderWalletSummary(summary, opts))
	return subcommands.ExitSuccess
}
