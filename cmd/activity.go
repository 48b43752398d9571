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

// activityCmd holds the flags for the 'activity' subcommand.
type activityCmd struct {
	wallet  string
	period  string
	start   string
	date    string
	jsonOut bool
}

func (*activityCmd) Name() string     { return "activity" }
func (*activityCmd) Synopsis() string { return "display a wallet activity report for a period" }
func (*activityCmd) Usage() string {
	return `activity [-w <wallet>] [-p <period> | -s <start_date>] [-d <end_date>] [-json]

  Displays income, spending and the transactions of the period,
  chronologically. The report ignores the session filters.
`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to report on (defaults to the current wallet)")
	f.StringVar(&c.period, "p", "month", "Predefined period for the report (day, week, month, year)")
	f.StringVar(&c.start, "s", "", "The start date for a custom report range. Overrides -p.")
	f.StringVar(&c.date, "d", "0d", "The end date for the report (defaults to today)")
	f.BoolVar(&c.jsonOut, "json", false, "Print the report as JSON")
}

func (c *activityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	endDate, err := billfold.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var periodRange billfold.Range
	if c.start != "" {
		startDate, err := billfold.ParseDate(c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
		periodRange = billfold.NewRange(startDate, endDate)
	} else {
		period, err := billfold.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		periodRange = period.Range(endDate)
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

	report := renderer.NewActivityReport(w, periodRange)
	if c.jsonOut {
		return printJSON(report)
	}
	printMarkdown(renderer.ActivityMarkdown(report))
	return subcommands.ExitSuccess
}
