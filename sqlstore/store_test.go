package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billfold"
	"billfold/sqlstore"
)

func newTestLedger(t *testing.T) *billfold.Manager {
	t.Helper()
	m := billfold.NewManager()

	main, err := billfold.NewWallet("Main", "EUR", "everyday spending", decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, m.AddWallet(main))

	savings, err := billfold.NewDepositWallet("Savings", "EUR", "", decimal.NewFromInt(1000), 4.5, 12, true)
	require.NoError(t, err)
	require.NoError(t, m.AddWallet(savings))

	tx, err := billfold.NewTransaction(billfold.Expense, decimal.RequireFromString("42.10"), "Food", "groceries", billfold.Now())
	require.NoError(t, err)
	main.AddTransaction(tx)

	require.NoError(t, m.Transfer("Savings", "Main", decimal.NewFromInt(250), "top up", billfold.Now()))
	require.True(t, m.SetCurrent("Savings"))
	return m
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestLedger(t)

	store, err := sqlstore.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, m))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "Savings", loaded.Current().Name())

	for _, orig := range m.Wallets() {
		w, ok := loaded.Wallet(orig.Name())
		require.True(t, ok, "wallet %q survives the round trip", orig.Name())
		assert.Equal(t, orig.ID(), w.ID())
		assert.Equal(t, orig.Currency(), w.Currency())
		assert.Equal(t, orig.Description(), w.Description())
		assert.True(t, orig.Balance().Equal(w.Balance()), "balance of %q: %s vs %s", orig.Name(), orig.Balance(), w.Balance())
		assert.True(t, orig.CreatedAt().Equal(w.CreatedAt()))
		require.Equal(t, orig.Len(), w.Len())

		// Insertion order carries over.
		origTxs, txs := orig.Transactions(), w.Transactions()
		for i := range origTxs {
			assert.Equal(t, origTxs[i].ID(), txs[i].ID())
		}
	}

	savings, _ := loaded.Wallet("Savings")
	terms, ok := savings.Deposit()
	require.True(t, ok)
	assert.Equal(t, 4.5, terms.InterestRate)
	assert.Equal(t, 12, terms.TermMonths)
	assert.True(t, terms.Capitalization)
}

func TestStoreTransferLinksSurvive(t *testing.T) {
	ctx := context.Background()
	m := newTestLedger(t)

	store, err := sqlstore.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, m))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	main, _ := loaded.Wallet("Main")
	var transfer *billfold.Transaction
	for _, tx := range main.Transactions() {
		if tx.IsTransfer() {
			transfer = tx
		}
	}
	require.NotNil(t, transfer, "the transfer side is restored")

	link := transfer.Link()
	require.NotNil(t, link)
	peerWallet, ok := loaded.WalletByID(link.PeerWallet)
	require.True(t, ok)
	assert.Equal(t, "Savings", peerWallet.Name())
	_, ok = peerWallet.ByID(link.PeerID)
	assert.True(t, ok, "the peer transaction is restored")
}

func TestStoreSaveRewrites(t *testing.T) {
	ctx := context.Background()
	m := newTestLedger(t)

	store, err := sqlstore.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, m))
	require.NoError(t, m.RemoveWallet("Main"))
	require.NoError(t, store.Save(ctx, m))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	_, ok := loaded.Wallet("Main")
	assert.False(t, ok)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	store, err := sqlstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening migrates nothing and loads an empty ledger.
	store, err = sqlstore.Open(path)
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}
