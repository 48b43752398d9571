package billfold

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewDepositWalletValidation(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		term int
		err  bool
	}{
		{"valid", 12, 12, false},
		{"zero rate", 0, 12, true},
		{"negative rate", -1, 12, true},
		{"zero term", 12, 0, true},
		{"negative term", 12, -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewDepositWallet("Savings", "EUR", "", amt(1000), tt.rate, tt.term, true)
			if (err != nil) != tt.err {
				t.Fatalf("NewDepositWallet error = %v, wantErr %v", err, tt.err)
			}
			if tt.err {
				if !errors.Is(err, ErrDepositTerms) {
					t.Errorf("error = %v, want ErrDepositTerms", err)
				}
				return
			}
			if !w.IsDeposit() {
				t.Errorf("IsDeposit() = false, want true")
			}
			d, ok := w.Deposit()
			if !ok || d.InterestRate != tt.rate || d.TermMonths != tt.term {
				t.Errorf("Deposit() = %+v, %v, want rate %v term %v", d, ok, tt.rate, tt.term)
			}
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	d := DepositTerms{InterestRate: 12, TermMonths: 12}
	if got := d.MonthlyRate(); got != 0.01 {
		t.Errorf("MonthlyRate() = %v, want 0.01", got)
	}
}

func TestMaturityFrom(t *testing.T) {
	tests := []struct {
		name     string
		opened   Date
		term     int
		expected Date
	}{
		// A deposit opened on Jan 31 with a one month term matures on
		// Feb 28, leap year or not.
		{"clamped to february", NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 28)},
		{"clamped to april", NewDate(2024, time.January, 31), 3, NewDate(2024, time.April, 30)},
		{"mid-month stays", NewDate(2024, time.March, 15), 12, NewDate(2025, time.March, 15)},
		{"year rollover", NewDate(2024, time.November, 10), 3, NewDate(2025, time.February, 10)},
		{"two year term", NewDate(2024, time.May, 31), 24, NewDate(2026, time.May, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DepositTerms{InterestRate: 10, TermMonths: tt.term}
			if got := d.MaturityFrom(tt.opened); got != tt.expected {
				t.Errorf("MaturityFrom(%v) = %v, want %v", tt.opened, got, tt.expected)
			}
		})
	}
}

func TestMonthsElapsed(t *testing.T) {
	opened := NewDate(2024, time.January, 31)

	tests := []struct {
		name     string
		term     int
		asOf     Date
		expected int
	}{
		{"before opening", 12, NewDate(2024, time.January, 1), 0},
		{"same day", 12, opened, 0},
		{"mid first month", 12, NewDate(2024, time.February, 15), 0},
		// The clamped anchor day counts: Feb 28 completes the month that
		// started on Jan 31.
		{"first month complete", 1, NewDate(2024, time.February, 28), 1},
		{"one day short", 12, NewDate(2024, time.February, 27), 0},
		{"capped at term", 3, NewDate(2025, time.December, 31), 3},
		{"half way", 12, NewDate(2024, time.July, 31), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DepositTerms{InterestRate: 10, TermMonths: tt.term}
			if got := d.MonthsElapsed(opened, tt.asOf); got != tt.expected {
				t.Errorf("MonthsElapsed(%v, %v) = %d, want %d", opened, tt.asOf, got, tt.expected)
			}
		})
	}
}

func TestInterest(t *testing.T) {
	compound := DepositTerms{InterestRate: 12, TermMonths: 12, Capitalization: true}
	simple := DepositTerms{InterestRate: 12, TermMonths: 12, Capitalization: false}

	// 1000 at 12% over 12 months: 126.83 compounded, 120.00 simple.
	if got := compound.TotalInterest(1000); math.Abs(got-126.83) > 0.005 {
		t.Errorf("compound TotalInterest(1000) = %v, want 126.83", got)
	}
	if got := simple.TotalInterest(1000); math.Abs(got-120.00) > 0.005 {
		t.Errorf("simple TotalInterest(1000) = %v, want 120.00", got)
	}
	if got := compound.MaturityAmount(1000); math.Abs(got-1126.83) > 0.005 {
		t.Errorf("compound MaturityAmount(1000) = %v, want 1126.83", got)
	}

	// Accrual over a partial term uses only the whole months elapsed.
	opened := NewDate(2024, time.January, 31)
	if got := simple.AccruedInterest(1000, opened, NewDate(2024, time.April, 30)); math.Abs(got-30.0) > 0.005 {
		t.Errorf("simple AccruedInterest over 3 months = %v, want 30.00", got)
	}
	if got := simple.AccruedInterest(1000, opened, opened); got != 0 {
		t.Errorf("AccruedInterest on opening day = %v, want 0", got)
	}
	// Interest stops at maturity.
	if got := simple.AccruedInterest(1000, opened, NewDate(2030, time.January, 1)); math.Abs(got-120.0) > 0.005 {
		t.Errorf("AccruedInterest past maturity = %v, want 120.00", got)
	}
}

func TestMaturedAndDaysToMaturity(t *testing.T) {
	d := DepositTerms{InterestRate: 12, TermMonths: 1}
	opened := NewDate(2024, time.January, 31)

	if d.Matured(opened, NewDate(2024, time.February, 27)) {
		t.Errorf("Matured = true before maturity")
	}
	if !d.Matured(opened, NewDate(2024, time.February, 28)) {
		t.Errorf("Matured = false on the maturity date")
	}
	if got := d.DaysToMaturity(opened, NewDate(2024, time.February, 1)); got != 27 {
		t.Errorf("DaysToMaturity = %d, want 27", got)
	}
	if got := d.DaysToMaturity(opened, NewDate(2024, time.March, 15)); got != 0 {
		t.Errorf("DaysToMaturity after maturity = %d, want 0", got)
	}
}

func TestWalletDepositSummary(t *testing.T) {
	m := NewManager()
	w, err := NewDepositWallet("Savings", "EUR", "rainy day", amt(1000), 12, 12, true)
	if err != nil {
		t.Fatalf("NewDepositWallet error = %v", err)
	}
	if err := m.AddWallet(w); err != nil {
		t.Fatalf("AddWallet error = %v", err)
	}
	// Pin the opening date for deterministic calendar math.
	w.createdAt = at(2024, time.January, 31)

	s, err := w.DepositSummary(NewDate(2024, time.July, 31))
	if err != nil {
		t.Fatalf("DepositSummary error = %v", err)
	}
	if s.Principal != 1000 {
		t.Errorf("Principal = %v, want 1000", s.Principal)
	}
	if s.MaturityDate != NewDate(2025, time.January, 31) {
		t.Errorf("MaturityDate = %v, want 2025-01-31", s.MaturityDate)
	}
	if s.MonthsElapsed != 6 {
		t.Errorf("MonthsElapsed = %d, want 6", s.MonthsElapsed)
	}
	if s.Matured {
		t.Errorf("Matured = true, want false")
	}
	if math.Abs(s.TotalInterest-126.83) > 0.005 {
		t.Errorf("TotalInterest = %v, want 126.83", s.TotalInterest)
	}
	if math.Abs(s.AccruedInterest-1000*(math.Pow(1.01, 6)-1)) > 1e-9 {
		t.Errorf("AccruedInterest = %v, want six months compounded", s.AccruedInterest)
	}

	// Additional contributions grow the principal.
	addTx(t, w, Income, 500, "Top-up", "", at(2024, time.March, 1))
	s, err = w.DepositSummary(NewDate(2024, time.July, 31))
	if err != nil {
		t.Fatalf("DepositSummary error = %v", err)
	}
	if s.Principal != 1500 {
		t.Errorf("Principal = %v after top-up, want 1500", s.Principal)
	}

	// A regular wallet has no deposit view.
	_, regular := testWallet(t, "Main")
	if _, err := regular.DepositSummary(Today()); !errors.Is(err, ErrNotDeposit) {
		t.Errorf("DepositSummary on regular wallet error = %v, want ErrNotDeposit", err)
	}
}
