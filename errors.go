package billfold

import "errors"

// Validation failures, surfaced to the caller of the mutating operation.
var (
	// ErrInvalidAmount reports a transaction or transfer amount that is not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrEmptyWalletName reports a wallet created with a blank name.
	ErrEmptyWalletName = errors.New("wallet name must not be empty")

	// ErrDuplicateWallet reports a wallet name already taken (names are
	// case-insensitive).
	ErrDuplicateWallet = errors.New("a wallet with that name already exists")

	// ErrUnknownCurrency reports a currency code absent from the ISO registry.
	ErrUnknownCurrency = errors.New("unknown currency code")

	// ErrDepositTerms reports a deposit wallet with a non-positive interest
	// rate or term, or deposit terms supplied for a regular wallet.
	ErrDepositTerms = errors.New("invalid deposit terms")

	// ErrSameWalletTransfer reports a transfer whose source and target are
	// the same wallet.
	ErrSameWalletTransfer = errors.New("cannot transfer from a wallet to itself")

	// ErrTransferCategory reports an attempt to edit the reserved category
	// of a transfer side.
	ErrTransferCategory = errors.New("transfer category cannot be changed")
)

// Lookup failures.
var (
	// ErrUnknownWallet reports a wallet name with no match in the manager.
	ErrUnknownWallet = errors.New("no wallet with that name")

	// ErrUnknownTransaction reports a transaction id with no match in the
	// wallet.
	ErrUnknownTransaction = errors.New("no transaction with that id")

	// ErrNotDeposit reports a deposit-only operation invoked on a regular
	// wallet.
	ErrNotDeposit = errors.New("wallet is not a deposit wallet")
)

// ErrOrphanedTransfer reports a transfer side whose linked counterpart
// cannot be resolved. It signals a broken pairing invariant, not a user
// error: under normal operation both sides exist or neither does.
var ErrOrphanedTransfer = errors.New("transfer has no linked counterpart")
