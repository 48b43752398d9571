// Package sqlstore persists the wallet ledger in a SQLite database, as an
// alternative to the JSONL ledger file. The whole ledger is small enough
// that saves rewrite the full state, which keeps the store a drop-in for
// the file backend.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"billfold"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// storeTimeFormat keeps sub-second precision, matching the ledger file.
const storeTimeFormat = time.RFC3339Nano

// Store is a SQLite-backed ledger.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates its
// schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save rewrites the stored ledger with the manager's state. Wallets and
// transactions keep their insertion order through the position columns.
func (s *Store) Save(ctx context.Context, m *billfold.Manager) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM wallets"); err != nil {
		return fmt.Errorf("clear wallets: %w", err)
	}

	current := m.Current()
	for pos, w := range m.Wallets() {
		var rate sql.NullFloat64
		var term sql.NullInt64
		var capitalization sql.NullBool
		if d, ok := w.Deposit(); ok {
			rate = sql.NullFloat64{Float64: d.InterestRate, Valid: true}
			term = sql.NullInt64{Int64: int64(d.TermMonths), Valid: true}
			capitalization = sql.NullBool{Bool: d.Capitalization, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO wallets (id, name, currency, description, created_at, position, is_current, interest_rate, term_months, capitalization)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID(), w.Name(), w.Currency(), w.Description(), w.CreatedAt().Format(storeTimeFormat),
			pos, w == current, rate, term, capitalization)
		if err != nil {
			return fmt.Errorf("insert wallet %q: %w", w.Name(), err)
		}

		for tpos, t := range w.Transactions() {
			var peerWallet, peerTx sql.NullString
			if l := t.Link(); l != nil {
				peerWallet = sql.NullString{String: l.PeerWallet, Valid: true}
				peerTx = sql.NullString{String: l.PeerID, Valid: true}
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO transactions (id, wallet_id, position, direction, amount, category, description, created_at, peer_wallet_id, peer_transaction_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID(), w.ID(), tpos, t.Direction().String(), t.Amount().String(),
				t.Category(), t.Description(), t.CreatedAt().Format(storeTimeFormat), peerWallet, peerTx)
			if err != nil {
				return fmt.Errorf("insert transaction %s: %w", t.ID(), err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load rebuilds a manager from the stored ledger.
func (s *Store) Load(ctx context.Context) (*billfold.Manager, error) {
	m := billfold.NewManager()

	currentID, err := s.loadWallets(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := s.loadTransactions(ctx, m); err != nil {
		return nil, err
	}
	if err := m.VerifyTransferLinks(); err != nil {
		return nil, err
	}
	if currentID != "" {
		if w, ok := m.WalletByID(currentID); ok {
			m.SetCurrent(w.Name())
		}
	}
	return m, nil
}

func (s *Store) loadWallets(ctx context.Context, m *billfold.Manager) (currentID string, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, currency, description, created_at, is_current, interest_rate, term_months, capitalization
		FROM wallets ORDER BY position`)
	if err != nil {
		return "", fmt.Errorf("query wallets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec billfold.WalletRecord
		var created string
		var isCurrent bool
		var rate sql.NullFloat64
		var term sql.NullInt64
		var capitalization sql.NullBool
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Currency, &rec.Description, &created,
			&isCurrent, &rate, &term, &capitalization); err != nil {
			return "", fmt.Errorf("scan wallet: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(storeTimeFormat, created); err != nil {
			return "", fmt.Errorf("wallet %q: invalid created date: %w", rec.Name, err)
		}
		if rate.Valid {
			rec.Deposit = &billfold.DepositTerms{
				InterestRate:   rate.Float64,
				TermMonths:     int(term.Int64),
				Capitalization: capitalization.Bool,
			}
		}

		w, err := billfold.RestoreWallet(rec)
		if err != nil {
			return "", err
		}
		if err := m.AddWallet(w); err != nil {
			return "", err
		}
		if isCurrent {
			currentID = rec.ID
		}
	}
	return currentID, rows.Err()
}

func (s *Store) loadTransactions(ctx context.Context, m *billfold.Manager) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.wallet_id, t.direction, t.amount, t.category, t.description, t.created_at, t.peer_wallet_id, t.peer_transaction_id
		FROM transactions t JOIN wallets w ON w.id = t.wallet_id
		ORDER BY w.position, t.position`)
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec billfold.TransactionRecord
		var walletID, direction, amount, created string
		var peerWallet, peerTx sql.NullString
		if err := rows.Scan(&rec.ID, &walletID, &direction, &amount, &rec.Category,
			&rec.Description, &created, &peerWallet, &peerTx); err != nil {
			return fmt.Errorf("scan transaction: %w", err)
		}
		if rec.Direction, err = billfold.ParseDirection(direction); err != nil {
			return fmt.Errorf("transaction %s: %w", rec.ID, err)
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("transaction %s: invalid amount: %w", rec.ID, err)
		}
		if rec.CreatedAt, err = time.Parse(storeTimeFormat, created); err != nil {
			return fmt.Errorf("transaction %s: invalid created date: %w", rec.ID, err)
		}
		if peerWallet.Valid {
			rec.Link = &billfold.TransferLink{PeerWallet: peerWallet.String, PeerID: peerTx.String}
		}

		w, ok := m.WalletByID(walletID)
		if !ok {
			return fmt.Errorf("%w: id %q", billfold.ErrUnknownWallet, walletID)
		}
		t, err := billfold.RestoreTransaction(rec)
		if err != nil {
			return err
		}
		w.AddTransaction(t)
	}
	return rows.Err()
}
