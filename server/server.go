// Package server exposes the wallet ledger over an HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"billfold"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ErrInsufficientBalance rejects an expense or transfer that would
// overdraw the source wallet. The rule lives in the API layer: the
// ledger itself accepts negative balances.
var ErrInsufficientBalance = errors.New("insufficient balance")

// errBadRequest wraps malformed request payloads.
var errBadRequest = errors.New("bad request")

// Server serves the ledger. Handlers run under one lock: the manager
// is not safe for concurrent mutation.
type Server struct {
	mu   sync.Mutex
	m    *billfold.Manager
	save func(*billfold.Manager) error
	log  zerolog.Logger
}

// New creates a Server over the manager. save is called after every
// successful mutation; pass nil for an in-memory server.
func New(m *billfold.Manager, save func(*billfold.Manager) error, log zerolog.Logger) *Server {
	if save == nil {
		save = func(*billfold.Manager) error { return nil }
	}
	return &Server{m: m, save: save, log: log}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", s.listWallets)
			r.Post("/", s.createWallet)
			r.Route("/{wallet}", func(r chi.Router) {
				r.Get("/", s.getWallet)
				r.Put("/", s.updateWallet)
				r.Delete("/", s.deleteWallet)
				r.Get("/summary", s.walletSummary)
				r.Get("/deposit", s.walletDeposit)
				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", s.listTransactions)
					r.Post("/", s.createTransaction)
					r.Get("/{id}", s.getTransaction)
					r.Put("/{id}", s.updateTransaction)
					r.Delete("/{id}", s.deleteTransaction)
				})
			})
		})

		// Transfer is a separate top-level endpoint as it involves two wallets
		r.Post("/transfers", s.createTransfer)
	})

	return r
}

// persist saves the ledger after a mutation.
func (s *Server) persist() error { return s.save(s.m) }

// respondWithJSON writes payload with the given status code.
func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps a ledger error to an HTTP status code.
func (s *Server) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError

	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, billfold.ErrInvalidAmount),
		errors.Is(err, billfold.ErrEmptyWalletName),
		errors.Is(err, billfold.ErrUnknownCurrency),
		errors.Is(err, billfold.ErrDepositTerms),
		errors.Is(err, billfold.ErrSameWalletTransfer),
		errors.Is(err, billfold.ErrTransferCategory),
		errors.Is(err, billfold.ErrNotDeposit):
		statusCode = http.StatusBadRequest
	case errors.Is(err, billfold.ErrUnknownWallet),
		errors.Is(err, billfold.ErrUnknownTransaction):
		statusCode = http.StatusNotFound
	case errors.Is(err, billfold.ErrDuplicateWallet),
		errors.Is(err, ErrInsufficientBalance):
		statusCode = http.StatusConflict
	default:
		s.log.Error().Err(err).Msg("Unhandled ledger error")
	}

	s.respondWithJSON(w, statusCode, map[string]string{"error": err.Error()})
}
