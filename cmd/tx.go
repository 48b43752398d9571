package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"billfold"
	"billfold/renderer"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	wallet   string
	preset   string
	start    string
	date     string
	typ      string
	category string
	exclude  bool
	min      string
	max      string
	search   string
	sort     string
	head     int
	tail     int
	jsonOut  bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `tx [-w <wallet>] [-p <preset> | -s <start> [-d <end>]] [-type <kind>] [-category <list>] [-min <amount>] [-max <amount>] [-search <text>] [-sort <key>] [-head n | -tail n] [-json]

  Lists the wallet's transactions, newest first by default. Filter
  flags combine: a transaction must match all of them.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to list (defaults to the current wallet)")
	f.StringVar(&c.preset, "p", "", "Date preset: today, this-week, last-week, this-month, last-month, this-year, last-year")
	f.StringVar(&c.start, "s", "", "Start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "0d", "End date for the custom range (defaults to today)")
	f.StringVar(&c.typ, "type", "", "Kind filter: income, income-only, expense, expense-only, transfers, no-transfers")
	f.StringVar(&c.category, "category", "", "Comma-separated categories to keep")
	f.BoolVar(&c.exclude, "exclude", false, "Invert -category: drop the listed categories instead")
	f.StringVar(&c.min, "min", "", "Keep transactions with amount >= min")
	f.StringVar(&c.max, "max", "", "Keep transactions with amount <= max")
	f.StringVar(&c.search, "search", "", "Keep transactions whose description contains the text")
	f.StringVar(&c.sort, "sort", "", "Sort order: recent, amount or category")
	f.IntVar(&c.head, "head", 0, "Keep only the first n rows")
	f.IntVar(&c.tail, "tail", 0, "Keep only the last n rows")
	f.BoolVar(&c.jsonOut, "json", false, "Print the listing as JSON")
}

// buildFilters translates the flag values into filters on the wallet's
// filtering context.
func (c *txCmd) buildFilters(w *billfold.Wallet) error {
	w.Filtering.Clear()

	if c.start != "" {
		from, err := billfold.ParseDate(c.start)
		if err != nil {
			return fmt.Errorf("parsing start date: %w", err)
		}
		to, err := billfold.ParseDate(c.date)
		if err != nil {
			return fmt.Errorf("parsing end date: %w", err)
		}
		w.Filtering.Add(billfold.NewDateRangeFilter(from, to))
	} else if c.preset != "" {
		f, ok := billfold.NewDatePresetFilter(c.preset)
		if !ok {
			return fmt.Errorf("unknown date preset %q (valid: %s)", c.preset, presetKeys(billfold.DatePresets()))
		}
		w.Filtering.Add(f)
	}

	if c.typ != "" {
		f, ok := billfold.NewTypePresetFilter(c.typ)
		if !ok {
			return fmt.Errorf("unknown type filter %q (valid: %s)", c.typ, presetKeys(billfold.TypePresets()))
		}
		w.Filtering.Add(f)
	}

	if c.category != "" {
		var categories []string
		for _, cat := range strings.Split(c.category, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}
		w.Filtering.Add(billfold.NewCategoryFilter(categories, c.exclude))
	}

	if c.min != "" || c.max != "" {
		var min, max *decimal.Decimal
		if c.min != "" {
			v, err := parseAmount(c.min)
			if err != nil {
				return err
			}
			min = &v
		}
		if c.max != "" {
			v, err := parseAmount(c.max)
			if err != nil {
				return err
			}
			max = &v
		}
		w.Filtering.Add(billfold.NewAmountRangeFilter(min, max))
	}

	if c.search != "" {
		w.Filtering.Add(billfold.NewDescriptionFilter(c.search, false))
	}
	return nil
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := c.buildFilters(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.sort != "" && !w.Sorting.SetStrategy(c.sort) {
		fmt.Fprintf(os.Stderr, "Error: unknown sort order %q (valid: recent, amount, category)\n", c.sort)
		return subcommands.ExitUsageError
	}

	listing := renderer.NewTransactionListing(w)
	if c.head > 0 && c.head < len(listing.Rows) {
		listing.Rows = listing.Rows[:c.head]
		listing.Shown = c.head
	}
	if c.tail > 0 && c.tail < len(listing.Rows) {
		listing.Rows = listing.Rows[len(listing.Rows)-c.tail:]
		listing.Shown = c.tail
	}

	if c.jsonOut {
		return printJSON(listing)
	}
	printMarkdown(renderer.TransactionsMarkdown(listing))
	return subcommands.ExitSuccess
}

// presetKeys joins preset keys for an error message.
func presetKeys(presets []billfold.Preset) string {
	keys := make([]string, len(presets))
	for i, p := range presets {
		keys[i] = p.Key
	}
	return strings.Join(keys, ", ")
}
