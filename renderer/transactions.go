package renderer

import (
	"bytes"
	"fmt"

	"billfold"
	md "github.com/nao1215/markdown"
)

// TransactionRow is a single transaction prepared for tabular display.
type TransactionRow struct {
	// Position is the row's 1-based index in the active sort order of the
	// whole wallet, so it stays valid for position-addressed commands even
	// when filters hide other rows.
	Position int `json:"position"`
	// ID is the transaction's short identifier.
	ID string `json:"id"`
	// Date is the transaction's civil date.
	Date billfold.Date `json:"date"`
	// Amount is the transaction amount signed by direction.
	Amount billfold.Money `json:"amount"`
	// Category is the transaction's category tag.
	Category string `json:"category"`
	// Description is the optional free-form note.
	Description string `json:"description,omitempty"`
	// Transfer reports whether the row is one side of a transfer pair.
	Transfer bool `json:"transfer,omitempty"`
}

// TransactionListing is a wallet's filtered transaction table.
type TransactionListing struct {
	Wallet        string           `json:"wallet"`
	Currency      string           `json:"currency"`
	Count         int              `json:"transactionCount"`
	Shown         int              `json:"shown"`
	SortOrder     string           `json:"sortOrder"`
	FilterSummary string           `json:"filterSummary,omitempty"`
	Rows          []TransactionRow `json:"rows"`
}

// NewTransactionListing creates a new TransactionListing from a wallet,
// applying its active sort order and filters.
func NewTransactionListing(w *billfold.Wallet) *TransactionListing {
	l := &TransactionListing{
		Wallet:    w.Name(),
		Currency:  w.Currency(),
		Count:     w.Len(),
		SortOrder: w.Sorting.Strategy().Name(),
		Rows:      transactionRows(w),
	}
	l.Shown = len(l.Rows)
	if w.Filtering.HasFilters() {
		l.FilterSummary = w.Filtering.Summary()
	}
	return l
}

// transactionRows prepares the filtered transactions for display. Positions
// are looked up in the unfiltered sort order, the one position-addressed
// commands resolve against.
func transactionRows(w *billfold.Wallet) []TransactionRow {
	positions := make(map[*billfold.Transaction]int)
	for i, t := range w.SortedTransactions() {
		positions[t] = i + 1
	}

	filtered := w.FilteredTransactions()
	rows := make([]TransactionRow, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, TransactionRow{
			Position:    positions[t],
			ID:          t.ID(),
			Date:        t.Date(),
			Amount:      w.Money(t.SignedAmount()),
			Category:    t.Category(),
			Description: t.Description(),
			Transfer:    t.IsTransfer(),
		})
	}
	return rows
}

// TransactionsMarkdown renders the listing as a markdown table.
func TransactionsMarkdown(l *TransactionListing) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transactions of %s", l.Wallet))

	if l.Shown < l.Count {
		doc.PlainText(fmt.Sprintf("Showing %d of %d transactions (%s), sorted by %s.", l.Shown, l.Count, l.FilterSummary, l.SortOrder))
	} else {
		doc.PlainText(fmt.Sprintf("%d transactions, sorted by %s.", l.Count, l.SortOrder))
	}

	if l.Shown == 0 {
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"#", "Date", "Category", "Amount", "Description", "ID"},
		Rows:   [][]string{},
	}
	for _, row := range l.Rows {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", row.Position),
			row.Date.String(),
			row.Category,
			row.Amount.SignedString(),
			row.Description,
			row.ID,
		})
	}
	doc.Table(table)

	return doc.String()
}
