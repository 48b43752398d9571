package billfold

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// walletResolver resolves a wallet by its id. The Manager implements it;
// wallets use it to reach the counterpart wallet of a transfer without
// holding an owning reference to it.
type walletResolver interface {
	walletByID(id string) (*Wallet, bool)
}

// Wallet holds one ledger of transactions and keeps its aggregates
// (balance, total income, total expense) incrementally consistent with the
// transaction set. Display order always comes from the wallet's sorting
// context; filtered views come from its filtering context.
//
// A wallet with non-nil deposit terms is a deposit wallet; see deposit.go
// for the interest engine.
type Wallet struct {
	id          string
	name        string
	currency    string
	description string
	createdAt   time.Time
	deposit     *DepositTerms

	txs  []*Transaction // insertion order, the base order for stable sorts
	byID map[string]*Transaction

	totalIncome  decimal.Decimal
	totalExpense decimal.Decimal
	balance      decimal.Decimal

	Sorting   *SortingContext
	Filtering *FilteringContext

	categories    *CategoryManager
	resolver      walletResolver
	startingValue decimal.Decimal // pending until the wallet joins a manager
}

func newWallet(name, currency, description string, startingValue decimal.Decimal) (*Wallet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyWalletName
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if startingValue.IsNegative() {
		return nil, fmt.Errorf("starting value: %w", ErrInvalidAmount)
	}
	return &Wallet{
		id:            newID(),
		name:          strings.TrimSpace(name),
		currency:      strings.ToUpper(currency),
		description:   description,
		createdAt:     Now(),
		byID:          make(map[string]*Transaction),
		Sorting:       NewSortingContext(),
		Filtering:     NewFilteringContext(),
		startingValue: startingValue,
	}, nil
}

// NewWallet creates a regular wallet. A positive starting value becomes an
// initial-balance income transaction once the wallet joins a manager.
func NewWallet(name, currency, description string, startingValue decimal.Decimal) (*Wallet, error) {
	return newWallet(name, currency, description, startingValue)
}

// NewDepositWallet creates a deposit wallet with an annual interest rate
// in percent, a term in months, and a capitalization mode (true compounds
// monthly, false accrues simple interest).
func NewDepositWallet(name, currency, description string, startingValue decimal.Decimal, rate float64, termMonths int, capitalization bool) (*Wallet, error) {
	if rate <= 0 || termMonths <= 0 {
		return nil, fmt.Errorf("%w: rate %.2f, term %d months", ErrDepositTerms, rate, termMonths)
	}
	w, err := newWallet(name, currency, description, startingValue)
	if err != nil {
		return nil, err
	}
	w.deposit = &DepositTerms{
		InterestRate:   rate,
		TermMonths:     termMonths,
		Capitalization: capitalization,
	}
	return w, nil
}

func (w *Wallet) ID() string           { return w.id }
func (w *Wallet) Name() string         { return w.name }
func (w *Wallet) Currency() string     { return w.currency }
func (w *Wallet) Description() string  { return w.description }
func (w *Wallet) CreatedAt() time.Time { return w.createdAt }

// IsDeposit reports whether this is a deposit wallet.
func (w *Wallet) IsDeposit() bool { return w.deposit != nil }

// Deposit returns a copy of the deposit terms; ok is false for a regular
// wallet.
func (w *Wallet) Deposit() (DepositTerms, bool) {
	if w.deposit == nil {
		return DepositTerms{}, false
	}
	return *w.deposit, true
}

// Balance returns the cached balance. It always equals total income minus
// total expense.
func (w *Wallet) Balance() decimal.Decimal { return w.balance }

// TotalIncome returns the cached sum of all income amounts.
func (w *Wallet) TotalIncome() decimal.Decimal { return w.totalIncome }

// TotalExpense returns the cached sum of all expense amounts.
func (w *Wallet) TotalExpense() decimal.Decimal { return w.totalExpense }

// Len returns the number of transactions.
func (w *Wallet) Len() int { return len(w.txs) }

// attach hands the wallet its manager-owned collaborators and injects the
// pending starting-balance transaction, once.
func (w *Wallet) attach(cm *CategoryManager, r walletResolver) {
	w.categories = cm
	w.resolver = r
	if w.startingValue.IsPositive() {
		t, err := NewTransaction(Income, w.startingValue, InitialBalanceCategory, "Starting balance", w.createdAt)
		if err == nil {
			w.AddTransaction(t)
		}
		w.startingValue = decimal.Zero
	}
}

func (w *Wallet) addContribution(t *Transaction) {
	if t.Direction() == Income {
		w.totalIncome = w.totalIncome.Add(t.Amount())
	} else {
		w.totalExpense = w.totalExpense.Add(t.Amount())
	}
	w.balance = w.balance.Add(t.SignedAmount())
}

func (w *Wallet) removeContribution(t *Transaction) {
	if t.Direction() == Income {
		w.totalIncome = w.totalIncome.Sub(t.Amount())
	} else {
		w.totalExpense = w.totalExpense.Sub(t.Amount())
	}
	w.balance = w.balance.Sub(t.SignedAmount())
}

// recompute rebuilds the aggregates from the transaction set. Only
// persistence collaborators use it, when reconstructing a wallet.
func (w *Wallet) recompute() {
	w.totalIncome = decimal.Zero
	w.totalExpense = decimal.Zero
	w.balance = decimal.Zero
	for _, t := range w.txs {
		w.addContribution(t)
	}
}

// AddTransaction stores t, registers its category with the shared
// category manager, and folds it into the aggregates. The caller
// guarantees id uniqueness (ids are generated).
func (w *Wallet) AddTransaction(t *Transaction) {
	if w.categories != nil {
		w.categories.Add(t.Category(), t.Direction())
	}
	w.txs = append(w.txs, t)
	w.byID[t.ID()] = t
	w.addContribution(t)
}

// ByID returns the transaction with the given id.
func (w *Wallet) ByID(id string) (*Transaction, bool) {
	t, ok := w.byID[id]
	return t, ok
}

// ByPosition returns the transaction at a 1-based position in the current
// sort order. The position is a display convenience: it can go stale the
// moment the set or the active sort order changes, and the caller wears
// that risk.
func (w *Wallet) ByPosition(pos int) (*Transaction, bool) {
	sorted := w.SortedTransactions()
	if pos < 1 || pos > len(sorted) {
		return nil, false
	}
	return sorted[pos-1], true
}

// Transactions returns the transactions in insertion order.
func (w *Wallet) Transactions() []*Transaction {
	out := make([]*Transaction, len(w.txs))
	copy(out, w.txs)
	return out
}

// SortedTransactions returns all transactions in the active sort order.
// The order is recomputed on every call, never cached.
func (w *Wallet) SortedTransactions() []*Transaction {
	return w.Sorting.Sort(w.txs)
}

// FilteredTransactions returns the transactions satisfying every active
// filter, in the active sort order.
func (w *Wallet) FilteredTransactions() []*Transaction {
	return w.Filtering.Apply(w.SortedTransactions())
}

// peerOf resolves the counterpart of a transfer side. It reports
// ErrOrphanedTransfer when the link or the counterpart cannot be
// resolved, which means the pairing invariant was broken elsewhere.
func (w *Wallet) peerOf(t *Transaction) (*Transaction, *Wallet, error) {
	link := t.Link()
	if link.detached() || w.resolver == nil {
		return nil, nil, fmt.Errorf("%w: transaction %s", ErrOrphanedTransfer, t.ID())
	}
	pw, ok := w.resolver.walletByID(link.PeerWallet)
	if !ok {
		return nil, nil, fmt.Errorf("%w: transaction %s references wallet %s", ErrOrphanedTransfer, t.ID(), link.PeerWallet)
	}
	peer, ok := pw.byID[link.PeerID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: transaction %s references %s", ErrOrphanedTransfer, t.ID(), link.PeerID)
	}
	return peer, pw, nil
}

// UpdateTransaction edits a transaction in place, keeping the aggregates
// consistent. Editing a transfer side mirrors the amount, description and
// date onto the counterpart and adjusts the counterpart wallet's
// aggregates within the same call; the reserved transfer category is not
// editable.
func (w *Wallet) UpdateTransaction(id string, upd TransactionUpdate) error {
	t, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransaction, id)
	}
	if err := upd.validate(t); err != nil {
		return err
	}
	if !t.IsTransfer() {
		w.removeContribution(t)
		upd.write(t)
		w.addContribution(t)
		if w.categories != nil {
			w.categories.Add(t.Category(), t.Direction())
		}
		return nil
	}

	peer, pw, err := w.peerOf(t)
	if err != nil {
		return err
	}
	w.removeContribution(t)
	upd.write(t)
	w.addContribution(t)

	sync := upd.syncUpdate()
	pw.removeContribution(peer)
	sync.write(peer)
	pw.addContribution(peer)
	return nil
}

// DeleteTransaction removes a transaction and its aggregate contribution.
// For a transfer side with cascade set, the counterpart is deleted from
// its owning wallet too (with cascade off, so the recursion stops), after
// both links are cleared. An unresolvable counterpart aborts the delete
// with ErrOrphanedTransfer.
func (w *Wallet) DeleteTransaction(id string, cascade bool) error {
	t, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransaction, id)
	}
	if t.IsTransfer() && cascade {
		peer, pw, err := w.peerOf(t)
		if err != nil {
			return err
		}
		*t.link = TransferLink{}
		*peer.link = TransferLink{}
		if err := pw.DeleteTransaction(peer.ID(), false); err != nil {
			return err
		}
	}
	w.removeContribution(t)
	delete(w.byID, id)
	for i, x := range w.txs {
		if x == t {
			w.txs = append(w.txs[:i], w.txs[i+1:]...)
			break
		}
	}
	return nil
}

// deleteAll removes every transaction, cascading transfer counterparts,
// so that no wallet keeps a link into this one. The manager calls it
// before dropping the wallet.
func (w *Wallet) deleteAll() error {
	ids := make([]string, 0, len(w.txs))
	for _, t := range w.txs {
		ids = append(ids, t.ID())
	}
	for _, id := range ids {
		if _, ok := w.byID[id]; !ok {
			continue // already gone, e.g. the second side of an internal transfer
		}
		if err := w.DeleteTransaction(id, true); err != nil {
			return err
		}
	}
	return nil
}

// CategoryShare is one row of a category breakdown.
type CategoryShare struct {
	Category string
	Total    decimal.Decimal
	Percent  float64
}

// TotalsByCategory sums the amounts per category for one direction.
func (w *Wallet) TotalsByCategory(dir Direction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range w.txs {
		if t.Direction() != dir {
			continue
		}
		totals[t.Category()] = totals[t.Category()].Add(t.Amount())
	}
	return totals
}

// PercentagesByCategory returns each category's share of the direction's
// total, in percent. The result is empty when that total is zero.
func (w *Wallet) PercentagesByCategory(dir Direction) map[string]float64 {
	total := w.directionTotal(dir)
	if !total.IsPositive() {
		return map[string]float64{}
	}
	out := make(map[string]float64)
	for cat, amt := range w.TotalsByCategory(dir) {
		out[cat] = amt.Div(total).InexactFloat64() * 100
	}
	return out
}

// CategoryBreakdown returns the per-category totals and shares for one
// direction, largest first. Shares are zero when the direction total is
// zero.
func (w *Wallet) CategoryBreakdown(dir Direction) []CategoryShare {
	total := w.directionTotal(dir)
	totals := w.TotalsByCategory(dir)
	out := make([]CategoryShare, 0, len(totals))
	for cat, amt := range totals {
		share := CategoryShare{Category: cat, Total: amt}
		if total.IsPositive() {
			share.Percent = amt.Div(total).InexactFloat64() * 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (w *Wallet) directionTotal(dir Direction) decimal.Decimal {
	if dir == Income {
		return w.totalIncome
	}
	return w.totalExpense
}

// rename, setCurrency and setDescription are manager-owned: the manager
// keys wallets by name and validates renames against duplicates.
func (w *Wallet) rename(name string)         { w.name = name }
func (w *Wallet) setCurrency(code string)    { w.currency = strings.ToUpper(code) }
func (w *Wallet) setDescription(desc string) { w.description = desc }
