package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"billfold"
	"github.com/shopspring/decimal"
)

// ActivityReport aggregates one wallet's transactions over a date range.
type ActivityReport struct {
	Wallet   string         `json:"wallet"`
	Currency string         `json:"currency"`
	Range    billfold.Range `json:"range"`
	Income   billfold.Money `json:"income"`
	Expense  billfold.Money `json:"expense"`
	Net      billfold.Money `json:"net"`
	// Spending breaks the period's expenses down per category, largest first.
	Spending []BreakdownRow `json:"spending"`
	// Transactions holds the period's transactions in chronological order.
	Transactions []*billfold.Transaction `json:"-"`
}

// NewActivityReport creates a new ActivityReport from a wallet, keeping
// only the transactions dated within the range. The wallet's active
// filters do not apply here, the range is the only selection.
func NewActivityReport(w *billfold.Wallet, r billfold.Range) *ActivityReport {
	a := &ActivityReport{
		Wallet:   w.Name(),
		Currency: w.Currency(),
		Range:    r,
	}

	income, expense := decimal.Zero, decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, t := range w.Transactions() {
		if !r.Contains(t.Date()) {
			continue
		}
		a.Transactions = append(a.Transactions, t)
		if t.Direction() == billfold.Income {
			income = income.Add(t.Amount())
		} else {
			expense = expense.Add(t.Amount())
			byCategory[t.Category()] = byCategory[t.Category()].Add(t.Amount())
		}
	}
	sort.SliceStable(a.Transactions, func(i, j int) bool {
		return a.Transactions[i].CreatedAt().Before(a.Transactions[j].CreatedAt())
	})

	a.Income = w.Money(income)
	a.Expense = w.Money(expense)
	a.Net = w.Money(income.Sub(expense))

	for category, total := range byCategory {
		share := 0.0
		if !expense.IsZero() {
			share, _ = total.Div(expense).Mul(decimal.NewFromInt(100)).Float64()
		}
		a.Spending = append(a.Spending, BreakdownRow{
			Category: category,
			Total:    w.Money(total),
			Percent:  billfold.Percent(share),
		})
	}
	sort.Slice(a.Spending, func(i, j int) bool {
		if a.Spending[i].Percent == a.Spending[j].Percent {
			return a.Spending[i].Category < a.Spending[j].Category
		}
		return a.Spending[i].Percent > a.Spending[j].Percent
	})

	return a
}

// ActivityMarkdown renders a short, period-focused report for one wallet.
func ActivityMarkdown(a *ActivityReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Activity for %s, %s\n\n", a.Wallet, a.Range)
	fmt.Fprintf(&b, "| Net | **%s** |\n", a.Net.SignedString())
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Income | %s |\n", a.Income)
	fmt.Fprintf(&b, "| Expense | %s |\n", a.Expense)
	ConditionalBlock(&b, func(w io.Writer) bool { return renderSpending(w, a) })
	ConditionalBlock(&b, func(w io.Writer) bool { return renderActivityTransactions(w, a) })
	return b.String()
}

func renderSpending(w io.Writer, a *ActivityReport) bool {
	if len(a.Spending) == 0 {
		return false
	}
	fmt.Fprint(w, "\n## Spending by Category\n\n")
	fmt.Fprintln(w, "| Category | Amount | Share |")
	fmt.Fprintln(w, "|:---|---:|---:|")
	for _, row := range a.Spending {
		fmt.Fprintf(w, "| %s | %s | %s |\n", row.Category, row.Total, row.Percent)
	}
	return true
}

func renderActivityTransactions(w io.Writer, a *ActivityReport) bool {
	if len(a.Transactions) == 0 {
		return false
	}
	fmt.Fprint(w, "\n## Transactions\n\n")
	for i, t := range a.Transactions {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, t.Date(), Transaction(t, a.Currency))
	}
	return true
}
