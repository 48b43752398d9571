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
)

// --- Create Command ---

type createCmd struct {
	currency    string
	description string
	initial     string
	rate        float64
	term        int
	capitalize  bool
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new wallet" }
func (*createCmd) Usage() string {
	return `create [-c <currency>] [-m <description>] [-initial <amount>] [-rate <percent> -term <months> [-capitalize]] <name>

  Creates a wallet. With -rate and -term the wallet is a term deposit
  tracking accrued interest until maturity.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Currency code (defaults to the global -currency flag)")
	f.StringVar(&c.description, "m", "", "An optional description for the wallet")
	f.StringVar(&c.initial, "initial", "0", "Starting balance, recorded as an initial-balance income")
	f.Float64Var(&c.rate, "rate", 0, "Annual interest rate in percent, for deposit wallets")
	f.IntVar(&c.term, "term", 0, "Term in months, for deposit wallets")
	f.BoolVar(&c.capitalize, "capitalize", false, "Compound interest monthly instead of simple interest")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args(), " ")
	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}
	initial, err := parseAmount(c.initial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var w *billfold.Wallet
	if c.rate != 0 || c.term != 0 {
		w, err = billfold.NewDepositWallet(name, currency, c.description, initial, c.rate, c.term, c.capitalize)
	} else {
		w, err = billfold.NewWallet(name, currency, c.description, initial)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := m.AddWallet(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if w.IsDeposit() {
		terms, _ := w.Deposit()
		fmt.Printf("Created deposit wallet %q (%s, %.2f%% over %d months).\n", w.Name(), w.Currency(), terms.InterestRate, terms.TermMonths)
	} else {
		fmt.Printf("Created wallet %q (%s).\n", w.Name(), w.Currency())
	}
	return subcommands.ExitSuccess
}

// --- Wallets Command ---

type walletsCmd struct {
	sort    string
	jsonOut bool
}

func (*walletsCmd) Name() string     { return "wallets" }
func (*walletsCmd) Synopsis() string { return "list all wallets" }
func (*walletsCmd) Usage() string {
	return `wallets [-sort <key>] [-json]

  Lists every wallet with its balance. The current wallet is marked
  with a star.
`
}

func (c *walletsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "", "Sort order: created, balance or name")
	f.BoolVar(&c.jsonOut, "json", false, "Print the listing as JSON")
}

func (c *walletsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.sort != "" && !m.Sorting.SetStrategy(c.sort) {
		fmt.Fprintf(os.Stderr, "Error: unknown sort order %q (valid: created, balance, name)\n", c.sort)
		return subcommands.ExitUsageError
	}

	listing := renderer.NewWalletListing(m)
	if c.jsonOut {
		return printJSON(listing)
	}
	printMarkdown(renderer.WalletsMarkdown(listing))
	return subcommands.ExitSuccess
}

// --- Switch Command ---

type switchCmd struct{}

func (*switchCmd) Name() string     { return "switch" }
func (*switchCmd) Synopsis() string { return "select the current wallet" }
func (*switchCmd) Usage() string {
	return `switch <name>

  Makes the named wallet the current one. Commands that take a wallet
  default to it.
`
}

func (*switchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *switchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args(), " ")

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if !m.SetCurrent(name) {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", billfold.ErrUnknownWallet, name)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Current wallet is now %q.\n", m.Current().Name())
	return subcommands.ExitSuccess
}

// --- Edit Wallet Command ---

type editWalletCmd struct {
	newName     string
	currency    string
	description string
}

func (*editWalletCmd) Name() string     { return "edit-wallet" }
func (*editWalletCmd) Synopsis() string { return "rename or edit a wallet" }
func (*editWalletCmd) Usage() string {
	return `edit-wallet [-name <new-name>] [-c <currency>] [-m <description>] <name>

  Changes a wallet's name, currency or description. Only the given
  flags are applied.
`
}

func (c *editWalletCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.newName, "name", "", "New wallet name")
	f.StringVar(&c.currency, "c", "", "New currency code")
	f.StringVar(&c.description, "m", "", "New description")
}

func (c *editWalletCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args(), " ")

	var upd billfold.WalletUpdate
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			upd.Name = &c.newName
		case "c":
			upd.Currency = &c.currency
		case "m":
			upd.Description = &c.description
		}
	})
	if upd.Name == nil && upd.Currency == nil && upd.Description == nil {
		fmt.Fprintln(os.Stderr, "Error: nothing to change, pass -name, -c or -m")
		return subcommands.ExitUsageError
	}

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := m.UpdateWallet(name, upd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if upd.Name != nil {
		fmt.Printf("Updated wallet %q.\n", *upd.Name)
	} else {
		fmt.Printf("Updated wallet %q.\n", name)
	}
	return subcommands.ExitSuccess
}

// --- Remove Wallet Command ---

type rmWalletCmd struct{}

func (*rmWalletCmd) Name() string     { return "rm-wallet" }
func (*rmWalletCmd) Synopsis() string { return "delete a wallet and its transactions" }
func (*rmWalletCmd) Usage() string {
	return `rm-wallet <name>

  Deletes the wallet and every transaction in it. Transfer sides held
  by other wallets are deleted with their counterpart.
`
}

func (*rmWalletCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmWalletCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args(), " ")

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	w, ok := m.Wallet(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", billfold.ErrUnknownWallet, name)
		return subcommands.ExitFailure
	}
	removed := w.Name()
	if err := m.RemoveWallet(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed wallet %q.\n", removed)
	return subcommands.ExitSuccess
}
