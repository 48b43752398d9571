package renderer

import (
	"billfold"
)

// WalletSummary is a struct to represent one wallet's dashboard data in json.
// Amounts are handled as billfold.Money values so that they already carry
// their renderers (String, SignedString).
type WalletSummary struct {

	// Name of the wallet.
	Name string `json:"name"`
	// Currency is the wallet's ISO 4217 code.
	Currency string `json:"currency"`
	// Description is the optional free-form wallet description.
	Description string `json:"description,omitempty"`
	// CreatedOn is the day the wallet was opened.
	CreatedOn billfold.Date `json:"createdOn"`
	// Deposit reports whether the wallet carries deposit terms.
	Deposit bool `json:"deposit,omitempty"`

	// Balance is total income minus total expense.
	Balance billfold.Money `json:"balance"`
	// TotalIncome is the sum of all income amounts.
	TotalIncome billfold.Money `json:"totalIncome"`
	// TotalExpense is the sum of all expense amounts.
	TotalExpense billfold.Money `json:"totalExpense"`
	// Count is the total number of transactions, filtered or not.
	Count int `json:"transactionCount"`

	// SortOrder is the display name of the active transaction sort.
	SortOrder string `json:"sortOrder"`
	// FilterSummary describes the active filters, empty when there are none.
	FilterSummary string `json:"filterSummary,omitempty"`

	// IncomeByCategory breaks total income down per category, largest first.
	IncomeByCategory []BreakdownRow `json:"incomeByCategory"`
	// ExpenseByCategory breaks total expense down per category, largest first.
	ExpenseByCategory []BreakdownRow `json:"expenseByCategory"`

	// Transactions is the filtered transaction list in the active sort order.
	Transactions []TransactionRow `json:"transactions"`
}

// BreakdownRow is a single category's share of one direction's total.
type BreakdownRow struct {
	Category string           `json:"category"`
	Total    billfold.Money   `json:"total"`
	Percent  billfold.Percent `json:"percent"`
}

// NewWalletSummary creates a new WalletSummary from a wallet.
// It populates the struct with all the necessary data for rendering a
// wallet dashboard.
func NewWalletSummary(w *billfold.Wallet) *WalletSummary {
	s := &WalletSummary{
		Name:              w.Name(),
		Currency:          w.Currency(),
		Description:       w.Description(),
		CreatedOn:         billfold.DateOf(w.CreatedAt()),
		Deposit:           w.IsDeposit(),
		Balance:           w.Money(w.Balance()),
		TotalIncome:       w.Money(w.TotalIncome()),
		TotalExpense:      w.Money(w.TotalExpense()),
		Count:             w.Len(),
		SortOrder:         w.Sorting.Strategy().Name(),
		IncomeByCategory:  breakdownRows(w, billfold.Income),
		ExpenseByCategory: breakdownRows(w, billfold.Expense),
		Transactions:      transactionRows(w),
	}
	if w.Filtering.HasFilters() {
		s.FilterSummary = w.Filtering.Summary()
	}
	return s
}

func breakdownRows(w *billfold.Wallet, dir billfold.Direction) []BreakdownRow {
	shares := w.CategoryBreakdown(dir)
	rows := make([]BreakdownRow, 0, len(shares))
	for _, share := range shares {
		rows = append(rows, BreakdownRow{
			Category: share.Category,
			Total:    w.Money(share.Total),
			Percent:  billfold.Percent(share.Percent),
		})
	}
	return rows
}
