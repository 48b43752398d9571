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

// recordTransaction adds a transaction to the selected wallet and saves
// the ledger.
func recordTransaction(dir billfold.Direction, amount, category, description, when, wallet string) subcommands.ExitStatus {
	amt, err := parseAmount(amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	at, err := parseWhen(when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	w, err := requireWallet(m, wallet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	t, err := billfold.NewTransaction(dir, amt, category, description, at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	w.AddTransaction(t)
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s in %q.\n", renderer.Transaction(t, w.Currency()), w.Name())
	return subcommands.ExitSuccess
}

// --- Income Command ---

type incomeCmd struct {
	amount      string
	category    string
	description string
	date        string
	wallet      string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record money received" }
func (*incomeCmd) Usage() string {
	return `income -a <amount> -c <category> [-m <description>] [-d <date>] [-w <wallet>]

  Records an income in the current wallet.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount received, e.g. 2500 or 12.50")
	f.StringVar(&c.category, "c", "", "Category, e.g. Salary")
	f.StringVar(&c.description, "m", "", "An optional note for the transaction")
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD) or RFC3339 datetime (defaults to now)")
	f.StringVar(&c.wallet, "w", "", "Wallet to record into (defaults to the current wallet)")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return recordTransaction(billfold.Income, c.amount, c.category, c.description, c.date, c.wallet)
}

// --- Expense Command ---

type expenseCmd struct {
	amount      string
	category    string
	description string
	date        string
	wallet      string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money spent" }
func (*expenseCmd) Usage() string {
	return `expense -a <amount> -c <category> [-m <description>] [-d <date>] [-w <wallet>]

  Records an expense in the current wallet.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount spent, e.g. 14.90")
	f.StringVar(&c.category, "c", "", "Category, e.g. Food")
	f.StringVar(&c.description, "m", "", "An optional note for the transaction")
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD) or RFC3339 datetime (defaults to now)")
	f.StringVar(&c.wallet, "w", "", "Wallet to record into (defaults to the current wallet)")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return recordTransaction(billfold.Expense, c.amount, c.category, c.description, c.date, c.wallet)
}

// --- Transfer Command ---

type transferCmd struct {
	from        string
	to          string
	amount      string
	description string
	date        string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two wallets" }
func (*transferCmd) Usage() string {
	return `transfer -from <wallet> -to <wallet> -a <amount> [-m <description>] [-d <date>]

  Records a transfer as a linked pair: an expense in the source wallet
  and an income in the target wallet.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source wallet")
	f.StringVar(&c.to, "to", "", "Target wallet")
	f.StringVar(&c.amount, "a", "", "Amount to move")
	f.StringVar(&c.description, "m", "", "An optional note, shared by both sides")
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD) or RFC3339 datetime (defaults to now)")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amt, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	at, err := parseWhen(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := m.Transfer(c.from, c.to, amt, c.description, at); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	from, _ := m.Wallet(c.from)
	to, _ := m.Wallet(c.to)
	fmt.Printf("Transferred %s from %q to %q.\n", billfold.M(amt, from.Currency()), from.Name(), to.Name())
	return subcommands.ExitSuccess
}
