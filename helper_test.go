package billfold

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// amt is a helper for tests to create decimal amounts from const.
func amt(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// at is a helper for tests to create timestamps on a given day.
func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// testWallet returns a wallet attached to a fresh manager, so category
// registration and transfer resolution work as in production.
func testWallet(t *testing.T, name string) (*Manager, *Wallet) {
	t.Helper()
	m := NewManager()
	w, err := NewWallet(name, "EUR", "", decimal.Zero)
	if err != nil {
		t.Fatalf("NewWallet(%q) error = %v", name, err)
	}
	if err := m.AddWallet(w); err != nil {
		t.Fatalf("AddWallet(%q) error = %v", name, err)
	}
	return m, w
}

// addTx records a transaction on w and returns it.
func addTx(t *testing.T, w *Wallet, dir Direction, amount float64, category, description string, on time.Time) *Transaction {
	t.Helper()
	tx, err := NewTransaction(dir, amt(amount), category, description, on)
	if err != nil {
		t.Fatalf("NewTransaction(%v, %v, %q) error = %v", dir, amount, category, err)
	}
	w.AddTransaction(tx)
	return tx
}
