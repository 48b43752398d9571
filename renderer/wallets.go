package renderer

import (
	"bytes"
	"fmt"

	"billfold"
	md "github.com/nao1215/markdown"
)

// WalletRow is a single wallet prepared for tabular display.
type WalletRow struct {
	// Current reports whether the wallet is the manager's current one.
	Current bool `json:"current,omitempty"`
	// Name of the wallet.
	Name string `json:"name"`
	// Type is "deposit" for deposit wallets, empty otherwise.
	Type string `json:"type,omitempty"`
	// Currency is the wallet's ISO 4217 code.
	Currency string `json:"currency"`
	// Balance is total income minus total expense.
	Balance billfold.Money `json:"balance"`
	// Count is the wallet's number of transactions.
	Count int `json:"transactionCount"`
	// CreatedOn is the day the wallet was opened.
	CreatedOn billfold.Date `json:"createdOn"`
	// Description is the optional free-form wallet description.
	Description string `json:"description,omitempty"`
}

// WalletListing is the manager's wallet table in the active sort order.
type WalletListing struct {
	Count     int         `json:"walletCount"`
	SortOrder string      `json:"sortOrder"`
	Rows      []WalletRow `json:"rows"`
}

// NewWalletListing creates a new WalletListing from a manager, applying
// its active wallet sort order.
func NewWalletListing(m *billfold.Manager) *WalletListing {
	l := &WalletListing{
		Count:     m.Len(),
		SortOrder: m.Sorting.Strategy().Name(),
		Rows:      make([]WalletRow, 0, m.Len()),
	}
	current := m.Current()
	for _, w := range m.Wallets() {
		kind := ""
		if w.IsDeposit() {
			kind = "deposit"
		}
		l.Rows = append(l.Rows, WalletRow{
			Current:     w == current,
			Name:        w.Name(),
			Type:        kind,
			Currency:    w.Currency(),
			Balance:     w.Money(w.Balance()),
			Count:       w.Len(),
			CreatedOn:   billfold.DateOf(w.CreatedAt()),
			Description: w.Description(),
		})
	}
	return l
}

// WalletsMarkdown renders the listing as a markdown table. The current
// wallet is marked with an asterisk.
func WalletsMarkdown(l *WalletListing) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Wallets")

	if l.Count == 0 {
		doc.PlainText("No wallets yet. Create one with the create command.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("%d wallets, sorted by %s.", l.Count, l.SortOrder))

	table := md.TableSet{
		Header: []string{"", "Name", "Type", "Balance", "Txs", "Created"},
		Rows:   [][]string{},
	}
	for _, row := range l.Rows {
		marker := ""
		if row.Current {
			marker = "*"
		}
		table.Rows = append(table.Rows, []string{
			marker,
			row.Name,
			row.Type,
			row.Balance.String(),
			fmt.Sprintf("%d", row.Count),
			row.CreatedOn.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
