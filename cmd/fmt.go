package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the ledger file into canonical form" }
func (*fmtCmd) Usage() string {
	return `fmt:
  Rewrites the ledger file: stable key order, one record per line,
  wallets before their transactions.
`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := loadManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveManager(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	txs := 0
	for _, w := range m.Wallets() {
		txs += w.Len()
	}
	fmt.Printf("✅ Formatted %d wallets and %d transactions.\n", m.Len(), txs)
	return subcommands.ExitSuccess
}
