package server

import (
	"time"

	"billfold"

	"github.com/shopspring/decimal"
)

// depositTermsBody mirrors billfold.DepositTerms on the wire.
type depositTermsBody struct {
	InterestRate   float64 `json:"interestRate"`
	TermMonths     int     `json:"termMonths"`
	Capitalization bool    `json:"capitalization"`
}

// walletCreateBody is the payload of POST /api/wallets.
type walletCreateBody struct {
	Name        string            `json:"name"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Initial     *decimal.Decimal  `json:"initialBalance"`
	Deposit     *depositTermsBody `json:"deposit"`
}

// walletUpdateBody is the payload of PUT /api/wallets/{wallet}. Only
// the fields present are applied.
type walletUpdateBody struct {
	Name        *string `json:"name"`
	Currency    *string `json:"currency"`
	Description *string `json:"description"`
}

// walletPayload is one wallet in API responses. Amounts are plain JSON
// numbers, not the decimal strings the ledger file uses.
type walletPayload struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Currency     string            `json:"currency"`
	Description  string            `json:"description,omitempty"`
	Deposit      *depositTermsBody `json:"deposit,omitempty"`
	Balance      float64           `json:"balance"`
	TotalIncome  float64           `json:"totalIncome"`
	TotalExpense float64           `json:"totalExpense"`
	Transactions int               `json:"transactionCount"`
	CreatedAt    time.Time         `json:"createdAt"`
	Current      bool              `json:"current,omitempty"`
}

func newWalletPayload(m *billfold.Manager, w *billfold.Wallet) walletPayload {
	p := walletPayload{
		ID:           w.ID(),
		Name:         w.Name(),
		Currency:     w.Currency(),
		Description:  w.Description(),
		Balance:      w.Balance().InexactFloat64(),
		TotalIncome:  w.TotalIncome().InexactFloat64(),
		TotalExpense: w.TotalExpense().InexactFloat64(),
		Transactions: w.Len(),
		CreatedAt:    w.CreatedAt(),
		Current:      m.Current() == w,
	}
	if terms, ok := w.Deposit(); ok {
		p.Deposit = &depositTermsBody{
			InterestRate:   terms.InterestRate,
			TermMonths:     terms.TermMonths,
			Capitalization: terms.Capitalization,
		}
	}
	return p
}

// transferPayload points at the other side of a transfer pair.
type transferPayload struct {
	PeerWallet      string `json:"peerWallet"`
	PeerTransaction string `json:"peerTransaction"`
}

// transactionPayload is one transaction in API responses.
type transactionPayload struct {
	ID          string           `json:"id"`
	Direction   string           `json:"direction"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	Transfer    *transferPayload `json:"transfer,omitempty"`
}

func newTransactionPayload(m *billfold.Manager, t *billfold.Transaction) transactionPayload {
	p := transactionPayload{
		ID:          t.ID(),
		Direction:   t.Direction().String(),
		Amount:      t.Amount().InexactFloat64(),
		Category:    t.Category(),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt(),
	}
	if link := t.Link(); link != nil {
		peer := link.PeerWallet
		if w, ok := m.WalletByID(link.PeerWallet); ok {
			peer = w.Name()
		}
		p.Transfer = &transferPayload{PeerWallet: peer, PeerTransaction: link.PeerID}
	}
	return p
}

// transactionCreateBody is the payload of POST .../transactions.
type transactionCreateBody struct {
	Direction   string           `json:"direction"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	CreatedAt   *time.Time       `json:"createdAt"`
}

// transactionUpdateBody is the payload of PUT .../transactions/{id}.
type transactionUpdateBody struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	CreatedAt   *time.Time       `json:"createdAt"`
}

// transferBody is the payload of POST /api/transfers.
type transferBody struct {
	From        string           `json:"from"`
	To          string           `json:"to"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
	CreatedAt   *time.Time       `json:"createdAt"`
}

// transactionListPayload is the response of GET .../transactions.
type transactionListPayload struct {
	Wallet        string               `json:"wallet"`
	Count         int                  `json:"transactionCount"`
	Shown         int                  `json:"shown"`
	SortOrder     string               `json:"sortOrder"`
	FilterSummary string               `json:"filterSummary,omitempty"`
	Transactions  []transactionPayload `json:"transactions"`
}

// breakdownPayload is a single category's share of one direction's total.
type breakdownPayload struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
}

// summaryPayload is the response of GET .../summary.
type summaryPayload struct {
	Wallet            string             `json:"wallet"`
	Currency          string             `json:"currency"`
	Balance           float64            `json:"balance"`
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpense      float64            `json:"totalExpense"`
	Transactions      int                `json:"transactionCount"`
	IncomeByCategory  []breakdownPayload `json:"incomeByCategory"`
	ExpenseByCategory []breakdownPayload `json:"expenseByCategory"`
}

func newSummaryPayload(w *billfold.Wallet) summaryPayload {
	return summaryPayload{
		Wallet:            w.Name(),
		Currency:          w.Currency(),
		Balance:           w.Balance().InexactFloat64(),
		TotalIncome:       w.TotalIncome().InexactFloat64(),
		TotalExpense:      w.TotalExpense().InexactFloat64(),
		Transactions:      w.Len(),
		IncomeByCategory:  breakdownPayloads(w, billfold.Income),
		ExpenseByCategory: breakdownPayloads(w, billfold.Expense),
	}
}

func breakdownPayloads(w *billfold.Wallet, dir billfold.Direction) []breakdownPayload {
	shares := w.CategoryBreakdown(dir)
	out := make([]breakdownPayload, 0, len(shares))
	for _, share := range shares {
		out = append(out, breakdownPayload{
			Category: share.Category,
			Total:    share.Total.InexactFloat64(),
			Percent:  share.Percent,
		})
	}
	return out
}

// depositPayload is the response of GET .../deposit.
type depositPayload struct {
	Wallet          string        `json:"wallet"`
	Currency        string        `json:"currency"`
	Principal       float64       `json:"principal"`
	InterestRate    float64       `json:"interestRate"`
	MonthlyRate     float64       `json:"monthlyRate"`
	TermMonths      int           `json:"termMonths"`
	Capitalization  bool          `json:"capitalization"`
	OpenedOn        billfold.Date `json:"openedOn"`
	MaturityDate    billfold.Date `json:"maturityDate"`
	MonthsElapsed   int           `json:"monthsElapsed"`
	Matured         bool          `json:"matured"`
	DaysToMaturity  int           `json:"daysToMaturity"`
	AccruedInterest float64       `json:"accruedInterest"`
	TotalInterest   float64       `json:"totalInterest"`
	MaturityAmount  float64       `json:"maturityAmount"`
}

func newDepositPayload(d *billfold.DepositSummary) depositPayload {
	return depositPayload{
		Wallet:          d.WalletName,
		Currency:        d.Currency,
		Principal:       d.Principal,
		InterestRate:    d.InterestRate,
		MonthlyRate:     d.MonthlyRate,
		TermMonths:      d.TermMonths,
		Capitalization:  d.Capitalization,
		OpenedOn:        d.OpenedOn,
		MaturityDate:    d.MaturityDate,
		MonthsElapsed:   d.MonthsElapsed,
		Matured:         d.Matured,
		DaysToMaturity:  d.DaysToMaturity,
		AccruedInterest: d.AccruedInterest,
		TotalInterest:   d.TotalInterest,
		MaturityAmount:  d.MaturityAmount,
	}
}
