package renderer

import (
	"fmt"
	"strings"

	"billfold"
)

// BreakdownMarkdown renders one direction's category breakdown for a
// wallet. Shares are normalized against that direction's total, never
// against the mixed total of both.
func BreakdownMarkdown(w *billfold.Wallet, dir billfold.Direction) string {
	title := "Expense"
	total := w.TotalExpense()
	if dir == billfold.Income {
		title = "Income"
		total = w.TotalIncome()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s by Category for %s\n\n", title, w.Name())

	shares := w.CategoryBreakdown(dir)
	if len(shares) == 0 {
		fmt.Fprintf(&b, "No %s recorded.\n", dir)
		return b.String()
	}

	fmt.Fprintln(&b, "| Category | Amount | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, share := range shares {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", share.Category, w.Money(share.Total), billfold.Percent(share.Percent))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | |\n", w.Money(total))

	return b.String()
}
