package server

import (
	"fmt"
	"net/http"

	"billfold"
)

// walletSummary handles GET /api/wallets/{wallet}/summary.
func (s *Server) walletSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, newSummaryPayload(wallet))
}

// walletDeposit handles GET /api/wallets/{wallet}/deposit. The optional
// date query parameter moves the accrual date, and defaults to today.
func (s *Server) walletDeposit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.lookupWallet(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	asOf := billfold.Today()
	if v := r.URL.Query().Get("date"); v != "" {
		asOf, err = billfold.ParseDate(v)
		if err != nil {
			s.respondWithError(w, fmt.Errorf("%w: parsing date: %v", errBadRequest, err))
			return
		}
	}
	summary, err := wallet.DepositSummary(asOf)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, newDepositPayload(summary))
}
