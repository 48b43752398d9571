// The migrate tool moves ledger data in and out of billfold: bank CSV
// exports into a wallet, whole ledgers between the JSONL file and the
// SQLite database, and an integrity check over either backend.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"billfold"
	"billfold/sqlstore"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

func main() {
	// The migrate tool needs its own set of flags, independent of the main bf tool.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	commander := subcommands.NewCommander(flag.CommandLine, "migrate")
	commander.Register(&csvCmd{}, "")
	commander.Register(&sqliteCmd{}, "")
	commander.Register(&checkCmd{}, "")
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// --- csvCmd ---

type csvCmd struct {
	in       string
	ledger   string
	wallet   string
	currency string
}

func (*csvCmd) Name() string     { return "csv" }
func (*csvCmd) Synopsis() string { return "imports a bank CSV export into a ledger wallet" }
func (*csvCmd) Usage() string {
	return `migrate csv -in <bank_export.csv> -w <wallet> [-ledger <file>] [-currency <code>]

Appends the rows of a bank CSV export to a wallet as transactions. The
expected columns are date, description, amount and an optional category;
a leading header row is skipped. Negative amounts become expenses,
positive ones income. Rows without a category are categorized by keyword.
`
}
func (c *csvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "The path to the bank CSV export to import.")
	f.StringVar(&c.ledger, "ledger", "", "The ledger file to import into. Defaults to $BILLFOLD_LEDGER, then ./billfold.jsonl.")
	f.StringVar(&c.wallet, "w", "", "The wallet receiving the transactions, created if missing.")
	f.StringVar(&c.currency, "currency", "EUR", "Currency for the wallet when it has to be created.")
}

func (c *csvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" || c.wallet == "" {
		fmt.Fprintln(os.Stderr, "Error: -in and -w flags are required.")
		return subcommands.ExitUsageError
	}

	path := billfold.ResolveLedgerPath(c.ledger)
	m, err := billfold.LoadManager(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	w, ok := m.Wallet(c.wallet)
	if !ok {
		if err := billfold.ValidateCurrency(c.currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		w, err = billfold.NewWallet(c.wallet, c.currency, "", decimal.Zero)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating wallet: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := m.AddWallet(w); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding wallet: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Created wallet %q (%s).\n", w.Name(), w.Currency())
	}

	file, err := os.Open(c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	imported, skipped, err := importRows(file, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", c.in, err)
		return subcommands.ExitFailure
	}

	if err := billfold.SaveManager(path, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions into %q (%d rows skipped).\n", imported, w.Name(), skipped)
	return subcommands.ExitSuccess
}

// importRows reads bank CSV rows into the wallet. The first row may be a
// header; it is detected by its date cell not parsing as a date.
func importRows(r io.Reader, w *billfold.Wallet) (imported, skipped int, _ error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // banks disagree on trailing columns

	rows, err := cr.ReadAll()
	if err != nil {
		return 0, 0, err
	}

	for i, row := range rows {
		if len(row) < 3 {
			return imported, skipped, fmt.Errorf("row %d: want at least date, description and amount, got %d columns", i+1, len(row))
		}
		day, err := billfold.ParseDate(strings.TrimSpace(row[0]))
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return imported, skipped, fmt.Errorf("row %d: %w", i+1, err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			return imported, skipped, fmt.Errorf("row %d: cannot parse amount %q", i+1, row[2])
		}
		if amount.IsZero() {
			skipped++
			continue
		}
		dir := billfold.Income
		if amount.IsNegative() {
			dir = billfold.Expense
		}

		desc := strings.TrimSpace(row[1])
		category := ""
		if len(row) > 3 {
			category = strings.TrimSpace(row[3])
		}
		if category == "" {
			category = guessCategory(desc)
		}

		t, err := billfold.NewTransaction(dir, amount.Abs(), category, desc, day.Time())
		if err != nil {
			return imported, skipped, fmt.Errorf("row %d: %w", i+1, err)
		}
		w.AddTransaction(t)
		imported++
	}
	return imported, skipped, nil
}

// categoryKeywords maps description keywords to a category, for rows whose
// bank export carries no category column.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"salary", "Salary"},
	{"restaurant", "Restaurants"},
	{"cafe", "Restaurants"},
	{"supermarket", "Food"},
	{"grocer", "Food"},
	{"train", "Transport"},
	{"taxi", "Transport"},
	{"fuel", "Transport"},
	{"pharmac", "Health"},
	{"rent", "Housing"},
	{"electric", "Utilities"},
	{"water", "Utilities"},
	{"internet", "Utilities"},
}

func guessCategory(description string) string {
	d := strings.ToLower(description)
	for _, k := range categoryKeywords {
		if strings.Contains(d, k.keyword) {
			return k.category
		}
	}
	return "Other"
}

// --- sqliteCmd ---

type sqliteCmd struct {
	from string
	to   string
}

func (*sqliteCmd) Name() string { return "sqlite" }
func (*sqliteCmd) Synopsis() string {
	return "moves a ledger between the JSONL file and the SQLite database"
}
func (*sqliteCmd) Usage() string {
	return `migrate sqlite -from <source> -to <destination>

Copies the full ledger state between backends. The backend of each side
is picked by extension: .db, .sqlite and .sqlite3 mean the SQLite
database, anything else the JSONL file.
`
}
func (c *sqliteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "The path of the ledger to read.")
	f.StringVar(&c.to, "to", "", "The path of the ledger to write.")
}

func (c *sqliteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: -from and -to flags are required.")
		return subcommands.ExitUsageError
	}
	if c.from == c.to {
		fmt.Fprintln(os.Stderr, "Error: -from and -to must be different files.")
		return subcommands.ExitUsageError
	}

	m, err := loadAny(ctx, c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", c.from, err)
		return subcommands.ExitFailure
	}
	if err := saveAny(ctx, c.to, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.to, err)
		return subcommands.ExitFailure
	}

	txs := 0
	for _, w := range m.Wallets() {
		txs += w.Len()
	}
	fmt.Printf("Copied %d wallets and %d transactions from %s to %s.\n", m.Len(), txs, c.from, c.to)
	return subcommands.ExitSuccess
}

// isSQLite picks the backend for a ledger path by extension.
func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// loadAny reads a ledger from either backend. Unlike the bf commands, a
// missing source file is an error here, not an empty ledger.
func loadAny(ctx context.Context, path string) (*billfold.Manager, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if !isSQLite(path) {
		return billfold.LoadManager(path)
	}
	store, err := sqlstore.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

func saveAny(ctx context.Context, path string, m *billfold.Manager) error {
	if !isSQLite(path) {
		return billfold.SaveManager(path, m)
	}
	store, err := sqlstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, m)
}

// --- checkCmd ---

type checkCmd struct {
	in string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verifies the integrity of a ledger" }
func (*checkCmd) Usage() string {
	return `migrate check -in <ledger>

Loads the ledger (JSONL or SQLite), verifies that every transfer side
links to a matching counterpart and that transaction ids are unique
across wallets, and prints the wallets with their balances.
`
}
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "The path of the ledger to check.")
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in flag is required.")
		return subcommands.ExitUsageError
	}

	m, err := loadAny(ctx, c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := m.VerifyTransferLinks(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	seen := make(map[string]string) // transaction id -> wallet name
	txs := 0
	for _, w := range m.Wallets() {
		for _, t := range w.Transactions() {
			if other, dup := seen[t.ID()]; dup {
				fmt.Fprintf(os.Stderr, "Error: transaction id %s appears in both %q and %q\n", t.ID(), other, w.Name())
				return subcommands.ExitFailure
			}
			seen[t.ID()] = w.Name()
		}
		txs += w.Len()
	}

	fmt.Println("Wallet               | Transactions | Balance")
	fmt.Println("---------------------+--------------+---------------")
	for _, w := range m.Wallets() {
		fmt.Printf("%-20s | %12d | %s\n", w.Name(), w.Len(), billfold.M(w.Balance(), w.Currency()))
	}
	fmt.Printf("\n%s: %d wallets, %d transactions, all transfer links consistent.\n", c.in, m.Len(), txs)
	return subcommands.ExitSuccess
}
