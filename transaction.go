package billfold

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferCategory is the reserved category assigned to both sides of a
// transfer. It cannot be set or changed through an edit.
const TransferCategory = "Transfer"

// InitialBalanceCategory is the category of the starting-balance
// transaction injected when a wallet is created with a starting value.
const InitialBalanceCategory = "Initial balance"

// Direction tells whether a transaction moves money into or out of its
// wallet.
type Direction int

const (
	Income Direction = iota
	Expense
)

func (d Direction) String() string {
	switch d {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "unknown"
	}
}

// Sign returns "+" for income and "-" for expense.
func (d Direction) Sign() string {
	if d == Income {
		return "+"
	}
	return "-"
}

// ParseDirection parses a direction from its name or sign.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "+":
		return Income, nil
	case "expense", "-":
		return Expense, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// newID returns a fresh 8-character ledger id.
func newID() string {
	return uuid.NewString()[:8]
}

// TransferLink ties one side of a transfer to its counterpart in another
// wallet. Both references are ids, never pointers: the pair is resolved
// through the manager when a synchronized update or delete needs the other
// side. A link with empty ids is detached, which only occurs transiently
// while a cascade delete is dismantling the pair.
type TransferLink struct {
	PeerWallet string // id of the wallet holding the counterpart
	PeerID     string // id of the counterpart transaction
}

func (l *TransferLink) detached() bool {
	return l == nil || l.PeerID == "" || l.PeerWallet == ""
}

// Transaction is a single recorded monetary movement. The amount is always
// a positive magnitude; the sign is derived from the direction. Records
// are immutable from outside the owning wallet: edits replace field values
// through Wallet.UpdateTransaction so the wallet can keep its aggregates
// consistent, and the id never changes.
type Transaction struct {
	id          string
	amount      decimal.Decimal
	direction   Direction
	category    string
	description string
	createdAt   time.Time
	link        *TransferLink // nil for ordinary transactions
}

// NewTransaction creates a transaction with a fresh id. A zero `at`
// defaults to the current time. The amount must be strictly positive.
func NewTransaction(dir Direction, amount decimal.Decimal, category, description string, at time.Time) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if at.IsZero() {
		at = Now()
	}
	return &Transaction{
		id:          newID(),
		amount:      amount,
		direction:   dir,
		category:    category,
		description: description,
		createdAt:   at,
	}, nil
}

// newTransferSide creates one side of a transfer pair. The link is wired
// by the manager once both sides exist.
func newTransferSide(dir Direction, amount decimal.Decimal, description string, at time.Time) (*Transaction, error) {
	t, err := NewTransaction(dir, amount, TransferCategory, description, at)
	if err != nil {
		return nil, err
	}
	t.link = &TransferLink{}
	return t, nil
}

func (t *Transaction) ID() string              { return t.id }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Direction() Direction    { return t.direction }
func (t *Transaction) Category() string        { return t.category }
func (t *Transaction) Description() string     { return t.description }
func (t *Transaction) CreatedAt() time.Time    { return t.createdAt }

// Date returns the day the transaction was recorded on.
func (t *Transaction) Date() Date { return DateOf(t.createdAt) }

// IsTransfer reports whether this transaction is one side of a transfer.
func (t *Transaction) IsTransfer() bool { return t.link != nil }

// Link returns the transfer link, nil for ordinary transactions.
func (t *Transaction) Link() *TransferLink { return t.link }

// SignedAmount returns the amount signed by direction: positive for
// income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.direction == Expense {
		return t.amount.Neg()
	}
	return t.amount
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s%s", t.category, t.direction.Sign(), t.amount.StringFixed(2))
}

// TransactionUpdate carries the editable fields of a transaction. Nil
// fields are left unchanged. The category of a transfer side is not
// editable; neither is the direction or the owning wallet of any
// transaction.
type TransactionUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	CreatedAt   *time.Time
}

// validate checks the update against t without touching it.
func (u TransactionUpdate) validate(t *Transaction) error {
	if u.Amount != nil && !u.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, u.Amount)
	}
	if u.Category != nil && t.IsTransfer() && *u.Category != TransferCategory {
		return ErrTransferCategory
	}
	return nil
}

// write applies the update's field values to t. The caller validates
// first and is responsible for aggregate bookkeeping around the call.
func (u TransactionUpdate) write(t *Transaction) {
	if u.Amount != nil {
		t.amount = *u.Amount
	}
	if u.Category != nil && !t.IsTransfer() {
		t.category = *u.Category
	}
	if u.Description != nil {
		t.description = *u.Description
	}
	if u.CreatedAt != nil && !u.CreatedAt.IsZero() {
		t.createdAt = *u.CreatedAt
	}
}

// syncUpdate is the part of an update that must be mirrored onto the
// counterpart of a transfer: amount, description and date, never the
// category or direction.
func (u TransactionUpdate) syncUpdate() TransactionUpdate {
	return TransactionUpdate{Amount: u.Amount, Description: u.Description, CreatedAt: u.CreatedAt}
}
