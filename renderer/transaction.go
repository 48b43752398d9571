package renderer

import (
	"fmt"

	"billfold"
)

// Transaction renders a transaction to a one-line string.
func Transaction(t *billfold.Transaction, currency string) string {
	amount := billfold.M(t.Amount(), currency)
	var line string
	switch {
	case t.IsTransfer() && t.Direction() == billfold.Income:
		line = fmt.Sprintf("Transfer in of %s", amount)
	case t.IsTransfer():
		line = fmt.Sprintf("Transfer out of %s", amount)
	case t.Direction() == billfold.Income:
		line = fmt.Sprintf("Received %s as %s", amount, t.Category())
	default:
		line = fmt.Sprintf("Spent %s on %s", amount, t.Category())
	}
	if desc := t.Description(); desc != "" {
		line += fmt.Sprintf(" (%s)", desc)
	}
	return line
}
