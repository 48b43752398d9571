package billfold

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Manager owns the full set of wallets, the shared category manager, and
// the current-wallet cursor. Wallet names are unique case-insensitively;
// lookups lowercase the name, display keeps the original casing.
type Manager struct {
	wallets map[string]*Wallet // keyed by lowercased name
	ids     map[string]*Wallet // keyed by wallet id
	order   []*Wallet          // insertion order, the base order for stable sorts
	current *Wallet

	Categories *CategoryManager
	Sorting    *WalletSortingContext
}

// NewManager returns an empty manager with the default category sets.
func NewManager() *Manager {
	return &Manager{
		wallets:    make(map[string]*Wallet),
		ids:        make(map[string]*Wallet),
		Categories: NewCategoryManager(),
		Sorting:    NewWalletSortingContext(),
	}
}

func walletKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// AddWallet registers a wallet, hands it the shared category manager, and
// injects its pending starting-balance transaction. The first wallet
// added becomes the current wallet.
func (m *Manager) AddWallet(w *Wallet) error {
	key := walletKey(w.Name())
	if _, taken := m.wallets[key]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateWallet, w.Name())
	}
	w.attach(m.Categories, m)
	m.wallets[key] = w
	m.ids[w.ID()] = w
	m.order = append(m.order, w)
	if m.current == nil {
		m.current = w
	}
	return nil
}

// Wallet returns the wallet with the given name, case-insensitively.
func (m *Manager) Wallet(name string) (*Wallet, bool) {
	w, ok := m.wallets[walletKey(name)]
	return w, ok
}

// WalletByID looks a wallet up by its id, the way transfer links
// reference their counterpart wallet.
func (m *Manager) WalletByID(id string) (*Wallet, bool) {
	w, ok := m.ids[id]
	return w, ok
}

// walletByID implements walletResolver for transfer counterpart lookups.
func (m *Manager) walletByID(id string) (*Wallet, bool) { return m.WalletByID(id) }

// Current returns the current wallet, nil when the manager is empty.
func (m *Manager) Current() *Wallet { return m.current }

// SetCurrent points the cursor at the named wallet. Returns false when no
// wallet has that name.
func (m *Manager) SetCurrent(name string) bool {
	w, ok := m.Wallet(name)
	if !ok {
		return false
	}
	m.current = w
	return true
}

// Wallets returns all wallets in the active sort order.
func (m *Manager) Wallets() []*Wallet {
	return m.Sorting.Sort(m.order)
}

// Len returns the number of wallets.
func (m *Manager) Len() int { return len(m.order) }

// RemoveWallet deletes a wallet after deleting all its transactions, so
// transfer counterparts in other wallets are removed (and their
// aggregates adjusted) first. When the current wallet is removed the
// cursor moves to a remaining wallet, or nil when none remain.
func (m *Manager) RemoveWallet(name string) error {
	key := walletKey(name)
	w, ok := m.wallets[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWallet, name)
	}
	if err := w.deleteAll(); err != nil {
		return err
	}
	delete(m.wallets, key)
	delete(m.ids, w.ID())
	for i, x := range m.order {
		if x == w {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.current == w {
		m.current = nil
		if len(m.order) > 0 {
			m.current = m.order[0]
		}
	}
	return nil
}

// WalletUpdate carries the editable wallet fields. Nil fields are left
// unchanged.
type WalletUpdate struct {
	Name        *string
	Currency    *string
	Description *string
}

// UpdateWallet renames or edits a wallet. A rename to a name already
// taken by another wallet fails with ErrDuplicateWallet; changing only
// the casing of a wallet's own name is allowed.
func (m *Manager) UpdateWallet(name string, upd WalletUpdate) error {
	key := walletKey(name)
	w, ok := m.wallets[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWallet, name)
	}
	if upd.Name != nil {
		newName := strings.TrimSpace(*upd.Name)
		if newName == "" {
			return ErrEmptyWalletName
		}
		newKey := walletKey(newName)
		if other, taken := m.wallets[newKey]; taken && other != w {
			return fmt.Errorf("%w: %q", ErrDuplicateWallet, newName)
		}
		delete(m.wallets, key)
		w.rename(newName)
		m.wallets[newKey] = w
	}
	if upd.Currency != nil {
		if err := ValidateCurrency(*upd.Currency); err != nil {
			return err
		}
		w.setCurrency(*upd.Currency)
	}
	if upd.Description != nil {
		w.setDescription(*upd.Description)
	}
	return nil
}

// Transfer moves an amount between two wallets by creating a linked pair
// of transfer transactions: an expense on the source wallet and an income
// on the target, sharing the amount, description and timestamp. The pair
// either fully exists and both wallets' aggregates reflect it, or nothing
// was created; there is no half-linked state.
func (m *Manager) Transfer(from, to string, amount decimal.Decimal, description string, at time.Time) error {
	src, ok := m.Wallet(from)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWallet, from)
	}
	dst, ok := m.Wallet(to)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWallet, to)
	}
	if src == dst {
		return ErrSameWalletTransfer
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if at.IsZero() {
		at = Now()
	}

	outgoing, err := newTransferSide(Expense, amount, description, at)
	if err != nil {
		return err
	}
	incoming, err := newTransferSide(Income, amount, description, at)
	if err != nil {
		return err
	}

	*outgoing.link = TransferLink{PeerWallet: dst.ID(), PeerID: incoming.ID()}
	*incoming.link = TransferLink{PeerWallet: src.ID(), PeerID: outgoing.ID()}

	src.AddTransaction(outgoing)
	dst.AddTransaction(incoming)
	return nil
}
