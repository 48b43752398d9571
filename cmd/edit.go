package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billfold"
	"billfold/renderer"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	wallet      string
	amount      string
	category    string
	description string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change fields of a transaction" }
func (*editCmd) Usage() string {
	return `edit [-w <wallet>] [-a <amount>] [-c <category>] [-m <description>] [-d <date>] <position|id>

  Applies the given flags to the transaction. Editing the amount or
  description of a transfer side updates its counterpart too; the
  Transfer category itself cannot be changed.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to look in (defaults to the current wallet)")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.category, "c", "", "New category")
	f.StringVar(&c.description, "m", "", "New description")
	f.StringVar(&c.date, "d", "", "New date (YYYY-MM-DD) or RFC3339 datetime")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var upd billfold.TransactionUpdate
	var amt decimal.Decimal
	var visitErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "a":
			var err error
			if amt, err = parseAmount(c.amount); err != nil {
				visitErr = err
				return
			}
			upd.Amount = &amt
		case "c":
			upd.Category = &c.category
		case "m":
			upd.Description = &c.description
		case "d":
			if c.date == "" {
				visitErr = fmt.Errorf("missing date")
				return
			}
			at, err := parseWhen(c.date)
			if err != nil {
				visitErr = err
				return
			}
			upd.CreatedAt = &at
		}
	})
	if visitErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", visitErr)
		return subcommands.ExitUsageError
	}
	if upd.Amount == nil && upd.Category == nil && upd.Description == nil && upd.CreatedAt == nil {
		fmt.Fprintln(os.Stderr, "Error: nothing to change, pass -a, -c, -m or -d")
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
	if err := w.UpdateTransaction(t.ID(), upd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Updated: %s.\n", renderer.Transaction(t, w.Currency()))
	return subcommands.ExitSuccess
}
