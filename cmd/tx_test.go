package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"testing"

	"github.com/google/subcommands"
)

// listingJSON runs the tx command with -json and decodes its output.
func listingJSON(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()
	cmd := &txCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(append([]string{"-json"}, args...)); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var status subcommands.ExitStatus
	out := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	var listing map[string]interface{}
	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	return listing
}

func TestTxCommandListsAll(t *testing.T) {
	ledgerWithHistory(t)

	listing := listingJSON(t)
	if got := listing["transactionCount"].(float64); got != 2 {
		t.Errorf("transactionCount: got %v, want 2", got)
	}
	if got := listing["shown"].(float64); got != 2 {
		t.Errorf("shown: got %v, want 2", got)
	}

	// Most recent first: the February expense leads.
	rows := listing["rows"].([]interface{})
	first := rows[0].(map[string]interface{})
	if first["category"] != "Transport" {
		t.Errorf("First row category: got %v, want Transport", first["category"])
	}
	if first["position"].(float64) != 1 {
		t.Errorf("First row position: got %v, want 1", first["position"])
	}
}

func TestTxCommandCategoryFilter(t *testing.T) {
	ledgerWithHistory(t)

	listing := listingJSON(t, "-category", "Food")
	if got := listing["shown"].(float64); got != 1 {
		t.Fatalf("shown: got %v, want 1", got)
	}
	rows := listing["rows"].([]interface{})
	row := rows[0].(map[string]interface{})
	if row["category"] != "Food" {
		t.Errorf("Row category: got %v, want Food", row["category"])
	}

	// Filtering does not renumber: the January expense keeps position 2.
	if row["position"].(float64) != 2 {
		t.Errorf("Row position: got %v, want 2", row["position"])
	}
}

func TestTxCommandSearchFilter(t *testing.T) {
	ledgerWithHistory(t)

	listing := listingJSON(t, "-search", "TICKET")
	if got := listing["shown"].(float64); got != 1 {
		t.Fatalf("shown: got %v, want 1 (search is case-insensitive)", got)
	}
}

func TestTxCommandDateRange(t *testing.T) {
	ledgerWithHistory(t)

	listing := listingJSON(t, "-s", "2025-01-01", "-d", "2025-01-31")
	if got := listing["shown"].(float64); got != 1 {
		t.Fatalf("shown: got %v, want 1", got)
	}
}

func TestTxCommandHeadLimit(t *testing.T) {
	ledgerWithHistory(t)

	listing := listingJSON(t, "-head", "1")
	if got := listing["shown"].(float64); got != 1 {
		t.Errorf("shown after -head 1: got %v, want 1", got)
	}
	if got := listing["transactionCount"].(float64); got != 2 {
		t.Errorf("transactionCount stays the wallet total: got %v, want 2", got)
	}
}

func TestTxCommandUnknownSort(t *testing.T) {
	ledgerWithHistory(t)

	cmd := &txCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-sort", "color"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}
