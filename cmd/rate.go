package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billfold"

	"github.com/google/subcommands"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "fetch the euro reference rate and compare deposits" }
func (*rateCmd) Usage() string {
	return `rate:
  Fetches the latest euro short-term rate from the ECB and compares
  it against the rate of every deposit wallet.
`
}

func (*rateCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, err := billfold.FetchEuroShortTermRate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %.3f%% (as of %s)\n", ref.Name, ref.Rate, ref.On)

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, w := range m.Wallets() {
		terms, ok := w.Deposit()
		if !ok {
			continue
		}
		diff := terms.InterestRate - ref.Rate
		var verdict string
		switch {
		case diff >= 0:
			verdict = fmt.Sprintf("%.2f%% above the reference", diff)
		default:
			verdict = fmt.Sprintf("%.2f%% below the reference", -diff)
		}
		fmt.Printf("  %s: %.2f%% over %d months, %s\n", w.Name(), terms.InterestRate, terms.TermMonths, verdict)
	}
	return subcommands.ExitSuccess
}
