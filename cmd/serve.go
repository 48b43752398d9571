package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"billfold"
	"billfold/server"
	"billfold/sqlstore"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type serveCmd struct {
	addr string
	db   string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over an HTTP JSON API" }
func (*serveCmd) Usage() string {
	return `serve [-addr <address>] [-db <file>]:
	Serve the ledger over an HTTP JSON API.
	With -db the ledger lives in a SQLite database instead of the ledger file.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "address to listen on")
	f.StringVar(&c.db, "db", "", "SQLite database file to use instead of the ledger file")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// An optional .env can carry the BILLFOLD_* variables.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	var m *billfold.Manager
	var save func(*billfold.Manager) error

	if c.db != "" {
		store, err := sqlstore.Open(c.db)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening the database: %v\n", err)
			return subcommands.ExitFailure
		}
		defer store.Close()
		if m, err = store.Load(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading the database: %v\n", err)
			return subcommands.ExitFailure
		}
		save = func(m *billfold.Manager) error { return store.Save(ctx, m) }
	} else {
		var err error
		if m, err = loadManager(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading the ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		save = saveManager
	}

	s := server.New(m, save, log)
	log.Info().Str("addr", c.addr).Int("wallets", m.Len()).Msg("Serving the wallet API")
	if err := http.ListenAndServe(c.addr, s.Router()); err != nil {
		log.Error().Err(err).Msg("Server stopped")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
