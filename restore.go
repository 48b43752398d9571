package billfold

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WalletRecord carries the stored fields of a wallet, for storage backends
// that rebuild a manager from persisted state.
type WalletRecord struct {
	ID          string
	Name        string
	Currency    string
	Description string
	CreatedAt   time.Time
	Deposit     *DepositTerms
}

// TransactionRecord carries the stored fields of a transaction.
type TransactionRecord struct {
	ID          string
	Direction   Direction
	Amount      decimal.Decimal
	Category    string
	Description string
	CreatedAt   time.Time
	Link        *TransferLink
}

// RestoreWallet rebuilds a wallet from its stored record, keeping the stored
// id and creation time. It does not replay the starting-value transaction:
// stored wallets carry their history as explicit transaction records.
func RestoreWallet(rec WalletRecord) (*Wallet, error) {
	w, err := newWallet(rec.Name, rec.Currency, rec.Description, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if d := rec.Deposit; d != nil {
		if d.InterestRate <= 0 || d.TermMonths <= 0 {
			return nil, fmt.Errorf("%w: rate %.2f, term %d months", ErrDepositTerms, d.InterestRate, d.TermMonths)
		}
		terms := *d
		w.deposit = &terms
	}
	if rec.ID != "" {
		w.id = rec.ID
	}
	if !rec.CreatedAt.IsZero() {
		w.createdAt = rec.CreatedAt
	}
	return w, nil
}

// RestoreTransaction rebuilds a transaction from its stored record.
func RestoreTransaction(rec TransactionRecord) (*Transaction, error) {
	if !rec.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, rec.Amount)
	}
	t := &Transaction{
		id:          rec.ID,
		amount:      rec.Amount,
		direction:   rec.Direction,
		category:    rec.Category,
		description: rec.Description,
		createdAt:   rec.CreatedAt,
	}
	if l := rec.Link; l != nil {
		link := *l
		t.link = &link
	}
	return t, nil
}

// VerifyTransferLinks checks that every transfer side resolves to a
// counterpart that points back at it with the same amount. Storage backends
// call it after rebuilding a manager.
func (m *Manager) VerifyTransferLinks() error {
	for _, w := range m.order {
		for _, t := range w.txs {
			if !t.IsTransfer() {
				continue
			}
			peerWallet, ok := m.ids[t.link.PeerWallet]
			if !ok {
				return fmt.Errorf("%w: transaction %s names wallet %q", ErrOrphanedTransfer, t.id, t.link.PeerWallet)
			}
			peer, ok := peerWallet.ByID(t.link.PeerID)
			if !ok {
				return fmt.Errorf("%w: transaction %s names transaction %q", ErrOrphanedTransfer, t.id, t.link.PeerID)
			}
			if !peer.IsTransfer() || peer.link.PeerWallet != w.id || peer.link.PeerID != t.id {
				return fmt.Errorf("%w: transactions %s and %s disagree", ErrOrphanedTransfer, t.id, peer.id)
			}
			if !peer.amount.Equal(t.amount) {
				return fmt.Errorf("transfer %s/%s: amounts differ: %s vs %s", t.id, peer.id, t.amount, peer.amount)
			}
		}
	}
	return nil
}
