package billfold

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Record kinds in the ledger file. Each line is a single JSON object whose
// "kind" field selects the decoding schema.
const (
	kindWallet  = "wallet"
	kindTx      = "tx"
	kindCurrent = "current"
)

// recordTimeFormat preserves sub-second precision so that a decode-encode
// cycle is lossless.
const recordTimeFormat = time.RFC3339Nano

// EncodeManager writes the full manager state as JSONL: every wallet followed
// by its transactions in insertion order, then the current-wallet marker.
// This is the canonical ledger file format.
func EncodeManager(out io.Writer, m *Manager) error {
	for _, w := range m.order {
		if err := encodeWallet(out, w); err != nil {
			return err
		}
		for _, t := range w.txs {
			if err := encodeTransaction(out, w.id, t); err != nil {
				return err
			}
		}
	}
	if m.current != nil {
		line := (&jsonObjectWriter{}).
			Append("kind", kindCurrent).
			Append("wallet", m.current.id)
		if err := writeLine(out, line); err != nil {
			return err
		}
	}
	return nil
}

func encodeWallet(out io.Writer, w *Wallet) error {
	line := (&jsonObjectWriter{}).
		Append("kind", kindWallet).
		Append("id", w.id).
		Append("name", w.name).
		Append("currency", w.currency).
		Optional("description", w.description).
		Append("created", w.createdAt.Format(recordTimeFormat))
	if d := w.deposit; d != nil {
		line.Append("rate", d.InterestRate).
			Append("term", d.TermMonths).
			Append("capitalization", d.Capitalization)
	}
	return writeLine(out, line)
}

func encodeTransaction(out io.Writer, walletID string, t *Transaction) error {
	line := (&jsonObjectWriter{}).
		Append("kind", kindTx).
		Append("wallet", walletID).
		Append("id", t.id).
		Append("direction", t.direction.String()).
		Append("amount", t.amount).
		Append("category", t.category).
		Optional("description", t.description).
		Append("created", t.createdAt.Format(recordTimeFormat))
	if t.link != nil {
		line.Append("peerWallet", t.link.PeerWallet).
			Append("peerId", t.link.PeerID)
	}
	return writeLine(out, line)
}

func writeLine(out io.Writer, line *jsonObjectWriter) error {
	data, err := line.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Dedicated local structs with tag annotations used to parse records.

type walletRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	Description    string  `json:"description"`
	Created        string  `json:"created"`
	Rate           float64 `json:"rate"`
	Term           int     `json:"term"`
	Capitalization bool    `json:"capitalization"`
}

type txRecord struct {
	Wallet      string          `json:"wallet"`
	ID          string          `json:"id"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Created     string          `json:"created"`
	PeerWallet  string          `json:"peerWallet"`
	PeerID      string          `json:"peerId"`
}

// DecodeManager reads a ledger stream and rebuilds the manager it describes.
// Transaction lines must come after the wallet line they belong to, which is
// the order EncodeManager produces. Transfer links are verified: a transfer
// side whose counterpart is missing or does not point back fails the decode.
func DecodeManager(r io.Reader) (*Manager, error) {
	m := NewManager()

	currentID := ""
	lineNo := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(data, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %d: %w", lineNo, err)
		}

		var err error
		switch identifier.Kind {
		case kindWallet:
			err = decodeWallet(m, data)
		case kindTx:
			err = decodeTransaction(m, data)
		case kindCurrent:
			var rec struct {
				Wallet string `json:"wallet"`
			}
			if err = json.Unmarshal(data, &rec); err == nil {
				currentID = rec.Wallet
			}
		default:
			err = fmt.Errorf("unknown record kind %q", identifier.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	if err := m.VerifyTransferLinks(); err != nil {
		return nil, err
	}

	if currentID != "" {
		if w, ok := m.ids[currentID]; ok {
			m.current = w
		}
	}
	return m, nil
}

func decodeWallet(m *Manager, data []byte) error {
	var rec walletRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	restore := WalletRecord{
		ID:          rec.ID,
		Name:        rec.Name,
		Currency:    rec.Currency,
		Description: rec.Description,
	}
	if rec.Rate != 0 || rec.Term != 0 {
		restore.Deposit = &DepositTerms{
			InterestRate:   rec.Rate,
			TermMonths:     rec.Term,
			Capitalization: rec.Capitalization,
		}
	}
	if rec.Created != "" {
		created, err := time.Parse(recordTimeFormat, rec.Created)
		if err != nil {
			return fmt.Errorf("wallet %q: invalid created date: %w", rec.Name, err)
		}
		restore.CreatedAt = created
	}

	w, err := RestoreWallet(restore)
	if err != nil {
		return err
	}
	return m.AddWallet(w)
}

func decodeTransaction(m *Manager, data []byte) error {
	var rec txRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	w, ok := m.ids[rec.Wallet]
	if !ok {
		return fmt.Errorf("%w: id %q", ErrUnknownWallet, rec.Wallet)
	}
	dir, err := ParseDirection(rec.Direction)
	if err != nil {
		return err
	}
	created, err := time.Parse(recordTimeFormat, rec.Created)
	if err != nil {
		return fmt.Errorf("transaction %q: invalid created date: %w", rec.ID, err)
	}

	restore := TransactionRecord{
		ID:          rec.ID,
		Direction:   dir,
		Amount:      rec.Amount,
		Category:    rec.Category,
		Description: rec.Description,
		CreatedAt:   created,
	}
	if rec.PeerWallet != "" || rec.PeerID != "" {
		restore.Link = &TransferLink{PeerWallet: rec.PeerWallet, PeerID: rec.PeerID}
	}

	t, err := RestoreTransaction(restore)
	if err != nil {
		return err
	}
	w.AddTransaction(t)
	return nil
}

