package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"billfold"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// lookupWallet resolves the {wallet} URL parameter.
func (s *Server) lookupWallet(r *http.Request) (*billfold.Wallet, error) {
	name := chi.URLParam(r, "wallet")
	w, ok := s.m.Wallet(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", billfold.ErrUnknownWallet, name)
	}
	return w, nil
}

// listWallets handles GET /api/wallets.
func (s *Server) listWallets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sort := r.URL.Query().Get("sort"); sort != "" && !s.m.Sorting.SetStrategy(sort) {
		s.respondWithError(w, fmt.Errorf("%w: unknown sort order %q", errBadRequest, sort))
		return
	}

	wallets := s.m.Wallets()
	payload := make([]walletPayload, 0, len(wallets))
	for _, wallet := range wallets {
		payload = append(payload, newWalletPayload(s.m, wallet))
	}
	s.respondWithJSON(w, http.StatusOK, payload)
}

// createWallet handles POST /api/wallets.
func (s *Server) createWallet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body walletCreateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondWithError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	initial := decimal.Zero
	if body.Initial != nil {
		initial = *body.Initial
	}

	var wallet *billfold.Wallet
	var err error
	if body.Deposit != nil {
		wallet, err = billfold.NewDepositWallet(body.Name, body.Currency, body.Description, initial,
			body.Deposit.InterestRate, body.Deposit.TermMonths, body.Deposit.Capitalization)
	} else {
		wallet, err = billfold.NewWallet(body.Name, body.Currency, body.Description, initial)
	}
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.m.AddWallet(wallet); err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusCreated, newWalletPayload(s.m, wallet))
}

// getWallet handles GET /api/wallets/{wallet}.
func (s *Server) getWallet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, newWalletPayload(s.m, wallet))
}

// updateWallet handles PUT /api/wallets/{wallet}.
func (s *Server) updateWallet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	var body walletUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondWithError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	upd := billfold.WalletUpdate{Name: body.Name, Currency: body.Currency, Description: body.Description}
	if err := s.m.UpdateWallet(wallet.Name(), upd); err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, newWalletPayload(s.m, wallet))
}

// deleteWallet handles DELETE /api/wallets/{wallet}.
func (s *Server) deleteWallet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.m.RemoveWallet(wallet.Name()); err != nil {
		s.respondWithError(w, err)
		return
	}
	if err := s.persist(); err != nil {
		s.respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
