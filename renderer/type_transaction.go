package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"billfold"
)

// TransferDetail names the counterpart of a transfer side.
type TransferDetail struct {
	// PeerWallet is the name of the wallet holding the counterpart.
	PeerWallet string `json:"peerWallet"`
	// PeerID is the counterpart transaction's id.
	PeerID string `json:"peerId"`
}

// TransactionDetail is a struct to represent one transaction in json.
type TransactionDetail struct {
	// Wallet is the name of the owning wallet.
	Wallet string `json:"wallet"`
	// Position is the 1-based index in the wallet's active sort order.
	Position int `json:"position"`
	// ID is the transaction's short identifier.
	ID string `json:"id"`
	// Direction is "income" or "expense".
	Direction string `json:"direction"`
	// Amount is the transaction amount signed by direction.
	Amount billfold.Money `json:"amount"`
	// Category is the transaction's category tag.
	Category string `json:"category"`
	// Description is the optional free-form note.
	Description string `json:"description,omitempty"`
	// RecordedAt is the full transaction timestamp.
	RecordedAt string `json:"recordedAt"`
	// Transfer carries the counterpart reference for transfer sides.
	Transfer *TransferDetail `json:"transfer,omitempty"`
}

// NewTransactionDetail creates a new TransactionDetail from a transaction.
// The manager resolves the counterpart wallet name for transfer sides.
func NewTransactionDetail(m *billfold.Manager, w *billfold.Wallet, t *billfold.Transaction) *TransactionDetail {
	d := &TransactionDetail{
		Wallet:      w.Name(),
		ID:          t.ID(),
		Direction:   t.Direction().String(),
		Amount:      w.Money(t.SignedAmount()),
		Category:    t.Category(),
		Description: t.Description(),
		RecordedAt:  t.CreatedAt().Format(billfold.DatetimeFormat),
	}
	for i, s := range w.SortedTransactions() {
		if s == t {
			d.Position = i + 1
			break
		}
	}
	if link := t.Link(); link != nil {
		peer := link.PeerWallet
		if pw, ok := m.WalletByID(link.PeerWallet); ok {
			peer = pw.Name()
		}
		d.Transfer = &TransferDetail{PeerWallet: peer, PeerID: link.PeerID}
	}
	return d
}

// transactionMarkdownTemplate is the template for rendering a TransactionDetail in Markdown.
const transactionMarkdownTemplate = `# Transaction {{ .ID }}

| Wallet | {{ .Wallet }} |
|:---|---:|
| Position | {{ .Position }} |
| Recorded | {{ .RecordedAt }} |
| Direction | {{ .Direction }} |
| Amount | {{ .Amount.SignedString }} |
| Category | {{ .Category }} |
{{- if .Description }}
| Description | {{ .Description }} |
{{- end }}
{{- if .Transfer }}

Counterpart {{ .Transfer.PeerID }} in wallet {{ .Transfer.PeerWallet }}.
{{- end }}
`

// RenderTransactionDetail renders the TransactionDetail struct to a markdown string using a text/template.
func RenderTransactionDetail(d *TransactionDetail) string {
	tmpl := template.Must(template.New("transaction").Parse(transactionMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, d); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
