package billfold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultLedgerName is the file name used when no ledger path is configured.
const DefaultLedgerName = "billfold.jsonl"

// LedgerPathEnv is the environment variable overriding the ledger file path.
const LedgerPathEnv = "BILLFOLD_LEDGER"

// ResolveLedgerPath picks the ledger file path: the explicit flag value if
// set, else the environment variable, else the default name in the working
// directory.
func ResolveLedgerPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(LedgerPathEnv); env != "" {
		return env
	}
	return DefaultLedgerName
}

// LoadManager reads the ledger file at path and rebuilds the manager. A
// missing file is not an error: it returns a fresh empty manager, so the
// first command of a new user works without setup.
func LoadManager(path string) (*Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewManager(), nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	m, err := DecodeManager(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return m, nil
}

// SaveManager writes the full manager state to the ledger file at path,
// creating parent directories as needed.
func SaveManager(path string, m *Manager) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", path, err)
	}
	defer f.Close()

	return EncodeManager(f, m)
}
