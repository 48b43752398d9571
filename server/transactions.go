package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"billfold"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// lookupTransaction resolves the {id} URL parameter within a wallet.
func lookupTransaction(w *billfold.Wallet, r *http.Request) (*billfold.Transaction, error) {
	id := chi.URLParam(r, "id")
	t, ok := w.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", billfold.ErrUnknownTransaction, id)
	}
	return t, nil
}

// queryFilters translates list query parameters into filters on the
// wallet's filtering context. It mirrors the CLI filter flags.
func queryFilters(w *billfold.Wallet, q url.Values) error {
	w.Filtering.Clear()

	if from := q.Get("from"); from != "" {
		fromDate, err := billfold.ParseDate(from)
		if err != nil {
			return fmt.Errorf("%w: parsing from date: %v", errBadRequest, err)
		}
		to := q.Get("to")
		if to == "" {
			to = "0d"
		}
		toDate, err := billfold.ParseDate(to)
		if err != nil {
			return fmt.Errorf("%w: parsing to date: %v", errBadRequest, err)
		}
		w.Filtering.Add(billfold.NewDateRangeFilter(fromDate, toDate))
	} else if preset := q.Get("period"); preset != "" {
		f, ok := billfold.NewDatePresetFilter(preset)
		if !ok {
			return fmt.Errorf("%w: unknown date preset %q", errBadRequest, preset)
		}
		w.Filtering.Add(f)
	}

	if typ := q.Get("type"); typ != "" {
		f, ok := billfold.NewTypePresetFilter(typ)
		if !ok {
			return fmt.Errorf("%w: unknown type filter %q", errBadRequest, typ)
		}
		w.Filtering.Add(f)
	}

	if category := q.Get("category"); category != "" {
		var categories []string
		for _, cat := range strings.Split(category, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}
		exclude := q.Get("exclude") == "true"
		w.Filtering.Add(billfold.NewCategoryFilter(categories, exclude))
	}

	if q.Get("min") != "" || q.Get("max") != "" {
		var min, max *decimal.Decimal
		if v := q.Get("min"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return fmt.Errorf("%w: parsing min amount %q", errBadRequest, v)
			}
			min = &d
		}
		if v := q.Get("max"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return fmt.Errorf("%w: parsing max amount %q", errBadRequest, v)
			}
			max = &d
		}
		w.Filtering.Add(billfold.NewAmountRangeFilter(min, max))
	}

	if search := q.Get("search"); search != "" {
		w.Filtering.Add(billfold.NewDescriptionFilter(search, false))
	}
	return nil
}

// listTransactions handles GET /api/wallets/{wallet}/transactions.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := queryFilters(wallet, r.URL.Query()); err != nil {
		s.respondWithError(w, err)
		return
	}
	if sort := r.URL.Query().Get("sort"); sort != "" && !wallet.Sorting.SetStrategy(sort) {
		s.respondWithError(w, fmt.Errorf("%w: unknown sort order %q", errBadRequest, sort))
		return
	}

	txs := wallet.FilteredTransactions()
	payload := transactionListPayload{
		Wallet:        wallet.Name(),
		Count:         wallet.Len(),
		Shown:         len(txs),
		SortOrder:     wallet.Sorting.Strategy().Name(),
		FilterSummary: wallet.Filtering.Summary(),
		Transactions:  make([]transactionPayload, 0, len(txs)),
	}
	for _, t := range txs {
		payload.Transactions = append(payload.Transactions, newTransactionPayload(s.m, t))
	}
	s.respondWithJSON(w, http.StatusOK, payload)
}

// createTransaction handles POST /api/wallets/{wallet}/transactions.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	var body transactionCreateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondWithError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	dir, err := billfold.ParseDirection(body.Direction)
	if err != nil {
		s.respondWithError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if body.Amount == nil {
		s.respondWithError(w, fmt.Errorf("%w: missing amount", billfold.ErrInvalidAmount))
		return
	}
	var at time.Time
	if body.CreatedAt != nil {
		at = *body.CreatedAt
	}

	if dir == billfold.Expense && body.Amount.GreaterThan(wallet.Balance()) {
		s.respondWithError(w, fmt.Errorf("%w: balance is %s", ErrInsufficientBalance, wallet.Balance()))
		return
	}

	t, err := billfold.NewTransaction(dir, *body.Amount, body.Category, body.Description, at)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	wallet.AddTransaction(t)
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusCreated, newTransactionPayload(s.m, t))
}

// getTransaction handles GET /api/wallets/{wallet}/transactions/{id}.
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	t, err := lookupTransaction(wallet, r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, newTransactionPayload(s.m, t))
}

// updateTransaction handles PUT /api/wallets/{wallet}/transactions/{id}.
func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	t, err := lookupTransaction(wallet, r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	var body transactionUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondWithError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	upd := billfold.TransactionUpdate{
		Amount:      body.Amount,
		Category:    body.Category,
		Description: body.Description,
		CreatedAt:   body.CreatedAt,
	}
	if err := wallet.UpdateTransaction(t.ID(), upd); err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, newTransactionPayload(s.m, t))
}

// deleteTransaction handles DELETE /api/wallets/{wallet}/transactions/{id}.
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	t, err := lookupTransaction(wallet, r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := wallet.DeleteTransaction(t.ID(), true); err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createTransfer handles POST /api/transfers.
func (s *Server) createTransfer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body transferBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondWithError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	from, ok := s.m.Wallet(body.From)
	if !ok {
		s.respondWithError(w, fmt.Errorf("%w: %q", billfold.ErrUnknownWallet, body.From))
		return
	}
	if _, ok := s.m.Wallet(body.To); !ok {
		s.respondWithError(w, fmt.Errorf("%w: %q", billfold.ErrUnknownWallet, body.To))
		return
	}
	if body.Amount == nil {
		s.respondWithError(w, fmt.Errorf("%w: missing amount", billfold.ErrInvalidAmount))
		return
	}
	if body.Amount.GreaterThan(from.Balance()) {
		s.respondWithError(w, fmt.Errorf("%w: balance is %s", ErrInsufficientBalance, from.Balance()))
		return
	}
	var at time.Time
	if body.CreatedAt != nil {
		at = *body.CreatedAt
	}

	if err := s.m.Transfer(body.From, body.To, *body.Amount, body.Description, at); err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}

	// The expense side of the pair is the latest transaction of the
	// source wallet.
	txs := from.Transactions()
	s.respondWithJSON(w, http.StatusCreated, newTransactionPayload(s.m, txs[len(txs)-1]))
}
