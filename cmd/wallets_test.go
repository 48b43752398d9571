package cmd

import (
	"context"
	"flag"
	"strings"
	"testing"

	"billfold"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

func TestCreateCommand(t *testing.T) {
	path := newTestLedger(t)

	cmd := &createCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-c", "USD", "-initial", "250", "Cash", "Box"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var status subcommands.ExitStatus
	out := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if want := "Created wallet \"Cash Box\" (USD).\n"; out != want {
		t.Errorf("Confirmation: got %q, want %q", out, want)
	}

	m := reload(t, path)
	w, ok := m.Wallet("Cash Box")
	if !ok {
		t.Fatal("Wallet \"Cash Box\" was not created")
	}
	if w.Currency() != "USD" {
		t.Errorf("Currency: got %q, want USD", w.Currency())
	}
	if got, want := w.Balance(), decimal.NewFromInt(250); !got.Equal(want) {
		t.Errorf("Balance: got %s, want %s", got, want)
	}
	if m.Current() == nil || m.Current().Name() != "Cash Box" {
		t.Error("The first created wallet should become current")
	}
}

func TestCreateDepositCommand(t *testing.T) {
	path := newTestLedger(t)

	cmd := &createCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-initial", "10000", "-rate", "4.5", "-term", "12", "-capitalize", "Nest", "egg"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var status subcommands.ExitStatus
	out := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if !strings.HasPrefix(out, "Created deposit wallet \"Nest egg\"") {
		t.Errorf("Confirmation: got %q", out)
	}

	m := reload(t, path)
	w, ok := m.Wallet("Nest egg")
	if !ok {
		t.Fatal("Deposit wallet was not created")
	}
	terms, ok := w.Deposit()
	if !ok {
		t.Fatal("Wallet should be a deposit")
	}
	if terms.InterestRate != 4.5 || terms.TermMonths != 12 || !terms.Capitalization {
		t.Errorf("Deposit terms do not round-trip: %+v", terms)
	}
}

func TestCreateCommandRejectsBadDepositTerms(t *testing.T) {
	newTestLedger(t)

	cmd := &createCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-rate", "4.5", "Nest"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// A rate without a term is not a valid deposit.
	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}
}

func TestSwitchCommand(t *testing.T) {
	path := newTestLedger(t, mustWallet(t, "Main", 0), mustWallet(t, "Savings", 0))

	cmd := &switchCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"Savings"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var status subcommands.ExitStatus
	out := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if want := "Current wallet is now \"Savings\".\n"; out != want {
		t.Errorf("Confirmation: got %q, want %q", out, want)
	}

	m := reload(t, path)
	if m.Current().Name() != "Savings" {
		t.Errorf("Current wallet: got %q, want Savings", m.Current().Name())
	}
}

func TestEditWalletCommand(t *testing.T) {
	path := newTestLedger(t, mustWallet(t, "Main", 0))

	cmd := &editWalletCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-name", "Checking", "-m", "daily account", "Main"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	m := reload(t, path)
	if _, ok := m.Wallet("Main"); ok {
		t.Error("Old wallet name should be gone")
	}
	w, ok := m.Wallet("Checking")
	if !ok {
		t.Fatal("Renamed wallet not found")
	}
	if w.Description() != "daily account" {
		t.Errorf("Description: got %q", w.Description())
	}
}

func TestEditWalletCommandNothingToChange(t *testing.T) {
	newTestLedger(t, mustWallet(t, "Main", 0))

	cmd := &editWalletCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"Main"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}

func TestRemoveWalletCommand(t *testing.T) {
	path := newTestLedger(t, mustWallet(t, "Main", 0), mustWallet(t, "Old", 0))

	cmd := &rmWalletCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"Old"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	m := reload(t, path)
	if _, ok := m.Wallet("Old"); ok {
		t.Error("Removed wallet still present")
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 wallet left, got %d", m.Len())
	}
}
