package billfold

import (
	"sort"
	"strings"
)

// StrategyInfo describes one selectable sort order.
type StrategyInfo struct {
	Key  string
	Name string
}

// TransactionOrder enumerates the sort orders for a wallet's transaction
// list. The set is closed: orders are selected by key, never registered at
// runtime.
type TransactionOrder int

const (
	// MostRecent orders by descending creation time.
	MostRecent TransactionOrder = iota
	// HighToLow orders by descending amount magnitude.
	HighToLow
	// CategoryAlphabetical orders by ascending lowercase category name.
	CategoryAlphabetical
)

var transactionOrders = []StrategyInfo{
	{Key: "recent", Name: "Most Recent"},
	{Key: "amount", Name: "Amount (High to Low)"},
	{Key: "category", Name: "Category (A-Z)"},
}

func (o TransactionOrder) Key() string  { return transactionOrders[o].Key }
func (o TransactionOrder) Name() string { return transactionOrders[o].Name }

func parseTransactionOrder(key string) (TransactionOrder, bool) {
	for i, s := range transactionOrders {
		if s.Key == key {
			return TransactionOrder(i), true
		}
	}
	return 0, false
}

func (o TransactionOrder) less(a, b *Transaction) bool {
	switch o {
	case HighToLow:
		return a.Amount().Abs().GreaterThan(b.Amount().Abs())
	case CategoryAlphabetical:
		return strings.ToLower(a.Category()) < strings.ToLower(b.Category())
	default: // MostRecent
		return a.CreatedAt().After(b.CreatedAt())
	}
}

// SortingContext holds the active transaction sort order for one wallet.
// The default is MostRecent.
type SortingContext struct {
	order TransactionOrder
}

func NewSortingContext() *SortingContext {
	return &SortingContext{order: MostRecent}
}

// SetStrategy selects the order for the given key. An unknown key returns
// false and leaves the previous order active.
func (c *SortingContext) SetStrategy(key string) bool {
	o, ok := parseTransactionOrder(key)
	if !ok {
		return false
	}
	c.order = o
	return true
}

// Strategy returns the active order.
func (c *SortingContext) Strategy() TransactionOrder { return c.order }

// Strategies lists the selectable orders in a stable presentation order.
func (c *SortingContext) Strategies() []StrategyInfo {
	out := make([]StrategyInfo, len(transactionOrders))
	copy(out, transactionOrders)
	return out
}

// Sort returns the transactions in the active order. The input is never
// mutated and the result is recomputed on every call; equal elements keep
// their incoming relative order.
func (c *SortingContext) Sort(txs []*Transaction) []*Transaction {
	out := make([]*Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool { return c.order.less(out[i], out[j]) })
	return out
}

// WalletOrder enumerates the sort orders for the wallet list itself,
// mirroring the transaction orders.
type WalletOrder int

const (
	// ByCreated orders by ascending creation time.
	ByCreated WalletOrder = iota
	// ByBalance orders by descending balance.
	ByBalance
	// ByName orders by ascending lowercase name.
	ByName
)

var walletOrders = []StrategyInfo{
	{Key: "created", Name: "Creation Date"},
	{Key: "balance", Name: "Balance (High to Low)"},
	{Key: "name", Name: "Name (A-Z)"},
}

func (o WalletOrder) Key() string  { return walletOrders[o].Key }
func (o WalletOrder) Name() string { return walletOrders[o].Name }

func parseWalletOrder(key string) (WalletOrder, bool) {
	for i, s := range walletOrders {
		if s.Key == key {
			return WalletOrder(i), true
		}
	}
	return 0, false
}

func (o WalletOrder) less(a, b *Wallet) bool {
	switch o {
	case ByBalance:
		return a.Balance().GreaterThan(b.Balance())
	case ByName:
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	default: // ByCreated
		return a.CreatedAt().Before(b.CreatedAt())
	}
}

// WalletSortingContext holds the active order for the manager's wallet
// list. The default is ByCreated.
type WalletSortingContext struct {
	order WalletOrder
}

func NewWalletSortingContext() *WalletSortingContext {
	return &WalletSortingContext{order: ByCreated}
}

// SetStrategy selects the order for the given key. An unknown key returns
// false and leaves the previous order active.
func (c *WalletSortingContext) SetStrategy(key string) bool {
	o, ok := parseWalletOrder(key)
	if !ok {
		return false
	}
	c.order = o
	return true
}

// Strategy returns the active order.
func (c *WalletSortingContext) Strategy() WalletOrder { return c.order }

// Strategies lists the selectable orders in a stable presentation order.
func (c *WalletSortingContext) Strategies() []StrategyInfo {
	out := make([]StrategyInfo, len(walletOrders))
	copy(out, walletOrders)
	return out
}

// Sort returns the wallets in the active order without mutating the input.
func (c *WalletSortingContext) Sort(ws []*Wallet) []*Wallet {
	out := make([]*Wallet, len(ws))
	copy(out, ws)
	sort.SliceStable(out, func(i, j int) bool { return c.order.less(out[i], out[j]) })
	return out
}
