// Package cmd implements the CLI application to manage wallets and
// their transactions.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"billfold"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "wallets")
	c.Register(&walletsCmd{}, "wallets")
	c.Register(&switchCmd{}, "wallets")
	c.Register(&editWalletCmd{}, "wallets")
	c.Register(&rmWalletCmd{}, "wallets")

	c.Register(&incomeCmd{}, "transactions")
	c.Register(&expenseCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&showCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&percentCmd{}, "reports")
	c.Register(&activityCmd{}, "reports")
	c.Register(&depositCmd{}, "reports")

	c.Register(&rateCmd{}, "tools")
	c.Register(&fmtCmd{}, "tools")
	c.Register(&topicCmd{}, "tools")
	c.Register(&assistCmd{}, "tools")
	c.Register(&serveCmd{}, "tools")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format). Defaults to $BILLFOLD_LEDGER, then ./billfold.jsonl")
var defaultCurrency = flag.String("currency", "EUR", "Default currency for new wallets")

// Verbose enables extra progress output on stderr.
var Verbose = flag.Bool("v", false, "Enable verbose output")

// ledgerPath resolves the ledger file for this invocation.
func ledgerPath() string { return billfold.ResolveLedgerPath(*ledgerFile) }

// loadManager reads the ledger file into a Manager. A missing file is
// not an error: commands start from an empty ledger and create the file
// on the first save.
func loadManager() (*billfold.Manager, error) {
	return billfold.LoadManager(ledgerPath())
}

// saveManager writes the manager back to the ledger file.
func saveManager(m *billfold.Manager) error {
	return billfold.SaveManager(ledgerPath(), m)
}

// requireWallet selects the wallet a command operates on: the -w flag
// value when given, the current wallet otherwise.
func requireWallet(m *billfold.Manager, name string) (*billfold.Wallet, error) {
	if name != "" {
		w, ok := m.Wallet(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", billfold.ErrUnknownWallet, name)
		}
		return w, nil
	}
	if w := m.Current(); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("no wallet selected: create one with 'create' or pass -w")
}

// resolveTransaction looks a transaction up by list position or by id.
func resolveTransaction(w *billfold.Wallet, ref string) (*billfold.Transaction, error) {
	if pos, err := strconv.Atoi(ref); err == nil {
		t, ok := w.ByPosition(pos)
		if !ok {
			return nil, fmt.Errorf("%w: position %d of %d", billfold.ErrUnknownTransaction, pos, w.Len())
		}
		return t, nil
	}
	t, ok := w.ByID(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %q", billfold.ErrUnknownTransaction, ref)
	}
	return t, nil
}

// parseWhen reads a transaction timestamp from a flag value: a full
// RFC3339 datetime, or a plain date taken at midnight UTC. Empty means
// "now" (the zero time, resolved by the core).
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(billfold.DatetimeFormat, s); err == nil {
		return t, nil
	}
	d, err := billfold.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a datetime or date", s)
	}
	return d.Time(), nil
}

// parseAmount reads a decimal amount from a flag value.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("missing amount")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse amount %q", s)
	}
	return v, nil
}

// printMarkdown renders markdown for the terminal. When rendering
// fails the raw markdown is printed as-is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
