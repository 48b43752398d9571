package billfold

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// twoWallets returns a manager with two funded wallets.
func twoWallets(t *testing.T) (m *Manager, main, savings *Wallet) {
	t.Helper()
	m = NewManager()
	for _, name := range []string{"Main", "Savings"} {
		w, err := NewWallet(name, "EUR", "", amt(1000))
		if err != nil {
			t.Fatalf("NewWallet(%q) error = %v", name, err)
		}
		if err := m.AddWallet(w); err != nil {
			t.Fatalf("AddWallet(%q) error = %v", name, err)
		}
	}
	main, _ = m.Wallet("Main")
	savings, _ = m.Wallet("Savings")
	return m, main, savings
}

// transferSides returns the expense side on from and the income side on to
// of the single transfer between them.
func transferSides(t *testing.T, from, to *Wallet) (out, in *Transaction) {
	t.Helper()
	for _, tx := range from.Transactions() {
		if tx.IsTransfer() {
			out = tx
		}
	}
	for _, tx := range to.Transactions() {
		if tx.IsTransfer() {
			in = tx
		}
	}
	if out == nil || in == nil {
		t.Fatalf("transfer sides not found")
	}
	return out, in
}

func TestAddWalletDuplicate(t *testing.T) {
	m, _, _ := twoWallets(t)

	w, err := NewWallet("main", "EUR", "", decimal.Zero) // differs only in case
	if err != nil {
		t.Fatalf("NewWallet error = %v", err)
	}
	if err := m.AddWallet(w); !errors.Is(err, ErrDuplicateWallet) {
		t.Errorf("AddWallet(duplicate) error = %v, want ErrDuplicateWallet", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d after rejected add, want 2", m.Len())
	}
}

func TestWalletLookupIsCaseInsensitive(t *testing.T) {
	m, main, _ := twoWallets(t)

	for _, name := range []string{"Main", "main", "MAIN", " main "} {
		if w, ok := m.Wallet(name); !ok || w != main {
			t.Errorf("Wallet(%q) = %v, %v, want Main", name, w, ok)
		}
	}
	if _, ok := m.Wallet("Checking"); ok {
		t.Errorf("Wallet(unknown) = true, want false")
	}
}

func TestCurrentWalletCursor(t *testing.T) {
	m := NewManager()
	if m.Current() != nil {
		t.Errorf("Current() = %v on empty manager, want nil", m.Current())
	}

	a, _ := NewWallet("A", "EUR", "", decimal.Zero)
	b, _ := NewWallet("B", "EUR", "", decimal.Zero)
	if err := m.AddWallet(a); err != nil {
		t.Fatal(err)
	}
	// The first wallet becomes current automatically.
	if m.Current() != a {
		t.Errorf("Current() = %v, want the first wallet", m.Current())
	}
	if err := m.AddWallet(b); err != nil {
		t.Fatal(err)
	}
	if m.Current() != a {
		t.Errorf("Current() moved on second add")
	}

	if !m.SetCurrent("b") {
		t.Errorf("SetCurrent(b) = false, want true")
	}
	if m.Current() != b {
		t.Errorf("Current() = %v after switch, want B", m.Current())
	}
	if m.SetCurrent("missing") {
		t.Errorf("SetCurrent(missing) = true, want false")
	}
	if m.Current() != b {
		t.Errorf("failed switch moved the cursor")
	}

	// Removing the current wallet reassigns the cursor.
	if err := m.RemoveWallet("B"); err != nil {
		t.Fatalf("RemoveWallet error = %v", err)
	}
	if m.Current() != a {
		t.Errorf("Current() = %v after removal, want A", m.Current())
	}
	if err := m.RemoveWallet("A"); err != nil {
		t.Fatalf("RemoveWallet error = %v", err)
	}
	if m.Current() != nil {
		t.Errorf("Current() = %v on emptied manager, want nil", m.Current())
	}
}

func TestUpdateWallet(t *testing.T) {
	m, main, _ := twoWallets(t)

	// Rename, change currency and description in one update.
	name, cur, desc := "Checking", "usd", "daily spending"
	if err := m.UpdateWallet("main", WalletUpdate{Name: &name, Currency: &cur, Description: &desc}); err != nil {
		t.Fatalf("UpdateWallet error = %v", err)
	}
	if main.Name() != "Checking" || main.Currency() != "USD" || main.Description() != "daily spending" {
		t.Errorf("wallet = %q %q %q after update", main.Name(), main.Currency(), main.Description())
	}
	// The old name no longer resolves, the new one does.
	if _, ok := m.Wallet("Main"); ok {
		t.Errorf("old name still resolves after rename")
	}
	if w, ok := m.Wallet("checking"); !ok || w != main {
		t.Errorf("new name does not resolve after rename")
	}

	// Renaming over another wallet fails.
	clash := "savings"
	if err := m.UpdateWallet("Checking", WalletUpdate{Name: &clash}); !errors.Is(err, ErrDuplicateWallet) {
		t.Errorf("UpdateWallet(clash) error = %v, want ErrDuplicateWallet", err)
	}
	// Changing only the casing of the own name is fine.
	recase := "CHECKING"
	if err := m.UpdateWallet("checking", WalletUpdate{Name: &recase}); err != nil {
		t.Errorf("UpdateWallet(recase) error = %v, want nil", err)
	}
	if main.Name() != "CHECKING" {
		t.Errorf("Name() = %q, want CHECKING", main.Name())
	}

	empty := "  "
	if err := m.UpdateWallet("checking", WalletUpdate{Name: &empty}); !errors.Is(err, ErrEmptyWalletName) {
		t.Errorf("UpdateWallet(blank) error = %v, want ErrEmptyWalletName", err)
	}
	bad := "NOPE"
	if err := m.UpdateWallet("checking", WalletUpdate{Currency: &bad}); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("UpdateWallet(bad currency) error = %v, want ErrUnknownCurrency", err)
	}
	if err := m.UpdateWallet("missing", WalletUpdate{}); !errors.Is(err, ErrUnknownWallet) {
		t.Errorf("UpdateWallet(missing) error = %v, want ErrUnknownWallet", err)
	}
}

func TestTransferCreatesLinkedPair(t *testing.T) {
	m, main, savings := twoWallets(t)

	when := at(2025, time.August, 5)
	if err := m.Transfer("main", "savings", amt(300), "monthly saving", when); err != nil {
		t.Fatalf("Transfer error = %v", err)
	}

	out, in := transferSides(t, main, savings)
	if out.Direction() != Expense || in.Direction() != Income {
		t.Errorf("sides = %v/%v, want expense on source, income on target", out.Direction(), in.Direction())
	}
	if !out.Amount().Equal(amt(300)) || !in.Amount().Equal(amt(300)) {
		t.Errorf("amounts = %s/%s, want 300/300", out.Amount(), in.Amount())
	}
	if out.Category() != TransferCategory || in.Category() != TransferCategory {
		t.Errorf("categories = %q/%q, want the reserved transfer tag", out.Category(), in.Category())
	}
	if !out.CreatedAt().Equal(when) || !in.CreatedAt().Equal(when) {
		t.Errorf("timestamps differ from the requested date")
	}

	// The links point at each other through wallet and transaction ids.
	if out.Link().PeerWallet != savings.ID() || out.Link().PeerID != in.ID() {
		t.Errorf("outgoing link = %+v, want savings/%s", out.Link(), in.ID())
	}
	if in.Link().PeerWallet != main.ID() || in.Link().PeerID != out.ID() {
		t.Errorf("incoming link = %+v, want main/%s", in.Link(), out.ID())
	}

	// Aggregates moved once on each side.
	if got := main.Balance(); !got.Equal(amt(700)) {
		t.Errorf("source balance = %s, want 700", got)
	}
	if got := savings.Balance(); !got.Equal(amt(1300)) {
		t.Errorf("target balance = %s, want 1300", got)
	}
	checkAggregates(t, main)
	checkAggregates(t, savings)
}

func TestTransferValidation(t *testing.T) {
	m, main, savings := twoWallets(t)

	tests := []struct {
		name     string
		from, to string
		amount   float64
		wantErr  error
	}{
		{"unknown source", "Checking", "Savings", 10, ErrUnknownWallet},
		{"unknown target", "Main", "Checking", 10, ErrUnknownWallet},
		{"same wallet", "Main", "main", 10, ErrSameWalletTransfer},
		{"zero amount", "Main", "Savings", 0, ErrInvalidAmount},
		{"negative amount", "Main", "Savings", -5, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Transfer(tt.from, tt.to, amt(tt.amount), "", time.Time{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transfer error = %v, want %v", err, tt.wantErr)
			}
			// A failed transfer leaves no trace on either side.
			if main.Len() != 1 || savings.Len() != 1 {
				t.Errorf("failed transfer left transactions behind")
			}
			if !main.Balance().Equal(amt(1000)) || !savings.Balance().Equal(amt(1000)) {
				t.Errorf("failed transfer moved balances")
			}
		})
	}
}

func TestTransferEditSyncsBothSides(t *testing.T) {
	m, main, savings := twoWallets(t)
	if err := m.Transfer("Main", "Savings", amt(300), "saving", at(2025, time.August, 5)); err != nil {
		t.Fatalf("Transfer error = %v", err)
	}
	out, in := transferSides(t, main, savings)

	newAmount := amt(450)
	newDesc := "bigger saving"
	when := at(2025, time.August, 6)
	if err := main.UpdateTransaction(out.ID(), TransactionUpdate{Amount: &newAmount, Description: &newDesc, CreatedAt: &when}); err != nil {
		t.Fatalf("UpdateTransaction error = %v", err)
	}

	// Both sides carry the new values.
	for _, side := range []*Transaction{out, in} {
		if !side.Amount().Equal(amt(450)) {
			t.Errorf("side %s amount = %s, want 450", side.ID(), side.Amount())
		}
		if side.Description() != "bigger saving" {
			t.Errorf("side %s description = %q, want synced", side.ID(), side.Description())
		}
		if !side.CreatedAt().Equal(when) {
			t.Errorf("side %s date not synced", side.ID())
		}
	}

	// Each wallet's aggregates reflect the new amount exactly once.
	if got := main.Balance(); !got.Equal(amt(550)) {
		t.Errorf("source balance = %s, want 550", got)
	}
	if got := savings.Balance(); !got.Equal(amt(1450)) {
		t.Errorf("target balance = %s, want 1450", got)
	}
	checkAggregates(t, main)
	checkAggregates(t, savings)

	// The category stays locked on both sides.
	cat := "Food"
	if err := savings.UpdateTransaction(in.ID(), TransactionUpdate{Category: &cat}); !errors.Is(err, ErrTransferCategory) {
		t.Errorf("category edit error = %v, want ErrTransferCategory", err)
	}
}

func TestTransferDeleteRemovesBothSides(t *testing.T) {
	m, main, savings := twoWallets(t)
	if err := m.Transfer("Main", "Savings", amt(300), "", time.Time{}); err != nil {
		t.Fatalf("Transfer error = %v", err)
	}
	out, in := transferSides(t, main, savings)

	// Deleting from the income side works the same as from the expense side.
	if err := savings.DeleteTransaction(in.ID(), true); err != nil {
		t.Fatalf("DeleteTransaction error = %v", err)
	}

	if _, ok := main.ByID(out.ID()); ok {
		t.Errorf("expense side still present after cascade delete")
	}
	if _, ok := savings.ByID(in.ID()); ok {
		t.Errorf("income side still present after delete")
	}
	if !main.Balance().Equal(amt(1000)) || !savings.Balance().Equal(amt(1000)) {
		t.Errorf("balances = %s/%s after delete, want 1000/1000", main.Balance(), savings.Balance())
	}
	checkAggregates(t, main)
	checkAggregates(t, savings)
}

func TestRemoveWalletCascadesTransfers(t *testing.T) {
	m, main, savings := twoWallets(t)
	if err := m.Transfer("Main", "Savings", amt(300), "", time.Time{}); err != nil {
		t.Fatalf("Transfer error = %v", err)
	}

	if err := m.RemoveWallet("Savings"); err != nil {
		t.Fatalf("RemoveWallet error = %v", err)
	}
	if _, ok := m.Wallet("Savings"); ok {
		t.Errorf("removed wallet still resolves")
	}
	// The counterpart side on the surviving wallet is gone and its
	// aggregates are adjusted.
	for _, tx := range main.Transactions() {
		if tx.IsTransfer() {
			t.Errorf("transfer side survived the partner wallet removal")
		}
	}
	if !main.Balance().Equal(amt(1000)) {
		t.Errorf("Balance() = %s after partner removal, want 1000", main.Balance())
	}
	checkAggregates(t, main)
}

func TestWalletsSortedView(t *testing.T) {
	m, _, savings := twoWallets(t)
	addTx(t, savings, Income, 5000, "Salary", "", at(2025, time.August, 1))

	m.Sorting.SetStrategy("balance")
	got := m.Wallets()
	if got[0] != savings {
		t.Errorf("Wallets()[0] = %q, want the richest wallet", got[0].Name())
	}

	// The underlying order is untouched: switching back shows creation
	// order again.
	m.Sorting.SetStrategy("created")
	got = m.Wallets()
	if got[0].Name() != "Main" {
		t.Errorf("Wallets()[0] = %q, want Main in creation order", got[0].Name())
	}
}
