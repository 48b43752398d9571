package billfold

import (
	"fmt"
	"math"
	"time"
)

// depositMonthDays is the civil-month length table used for deposit
// calendar arithmetic. February counts 28 days regardless of leap years:
// a deposit opened 2024-01-31 with a one month term matures 2024-02-28.
var depositMonthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func depositClampDay(m time.Month, day int) int {
	if max := depositMonthDays[m-1]; day > max {
		return max
	}
	return day
}

// DepositTerms are the fixed conditions of a deposit wallet: an annual
// interest rate in percent, a term in whole months, and whether accrued
// interest is capitalized (compounded monthly) or accrues as simple
// interest on the principal.
type DepositTerms struct {
	InterestRate   float64
	TermMonths     int
	Capitalization bool
}

// MonthlyRate converts the annual percent rate to a monthly ratio:
// 12% a year is 0.01 a month.
func (d DepositTerms) MonthlyRate() float64 {
	return d.InterestRate / 12 / 100
}

// MaturityFrom returns the maturity date for a deposit opened on the
// given date: the opening date advanced by the term, with the day clamped
// to the civil length of the target month.
func (d DepositTerms) MaturityFrom(opened Date) Date {
	months := int(opened.Month()) - 1 + d.TermMonths
	year := opened.Year() + months/12
	month := time.Month(months%12 + 1)
	return NewDate(year, month, depositClampDay(month, opened.Day()))
}

// MonthsElapsed counts the whole calendar months between the opening date
// and min(asOf, maturity). A final partial month does not count: the
// count is decremented when the day of month has not yet reached the
// opening day (clamped to the civil length of the final month). The
// result is capped to the term.
func (d DepositTerms) MonthsElapsed(opened, asOf Date) int {
	maturity := d.MaturityFrom(opened)
	end := asOf
	if maturity.Before(end) {
		end = maturity
	}
	if end.Before(opened) {
		return 0
	}
	months := (end.Year()-opened.Year())*12 + int(end.Month()-opened.Month())
	if end.Day() < depositClampDay(end.Month(), opened.Day()) {
		months--
	}
	if months < 0 {
		months = 0
	}
	if months > d.TermMonths {
		months = d.TermMonths
	}
	return months
}

// interest accrued on a principal over n months. Compound interest
// capitalizes monthly; simple interest accrues linearly. Plain floating
// point, no rounding: presentation layers round for display.
func (d DepositTerms) interest(principal float64, months int) float64 {
	r := d.MonthlyRate()
	if d.Capitalization {
		return principal * (math.Pow(1+r, float64(months)) - 1)
	}
	return principal * r * float64(months)
}

// AccruedInterest returns the interest earned between the opening date
// and asOf (never beyond maturity).
func (d DepositTerms) AccruedInterest(principal float64, opened, asOf Date) float64 {
	return d.interest(principal, d.MonthsElapsed(opened, asOf))
}

// TotalInterest returns the interest earned over the full term.
func (d DepositTerms) TotalInterest(principal float64) float64 {
	return d.interest(principal, d.TermMonths)
}

// MaturityAmount returns principal plus the full-term interest.
func (d DepositTerms) MaturityAmount(principal float64) float64 {
	return principal + d.TotalInterest(principal)
}

// Matured reports whether the deposit has reached maturity by asOf.
func (d DepositTerms) Matured(opened, asOf Date) bool {
	return !asOf.Before(d.MaturityFrom(opened))
}

// DaysToMaturity returns the calendar days from asOf to maturity, zero
// once matured.
func (d DepositTerms) DaysToMaturity(opened, asOf Date) int {
	if d.Matured(opened, asOf) {
		return 0
	}
	return asOf.DaysUntil(d.MaturityFrom(opened))
}

// DepositSummary is the full derived state of a deposit wallet on a given
// date. Principal is the total income ever recorded on the wallet.
type DepositSummary struct {
	WalletName      string
	Currency        string
	Principal       float64
	InterestRate    float64
	MonthlyRate     float64
	TermMonths      int
	Capitalization  bool
	OpenedOn        Date
	MaturityDate    Date
	MonthsElapsed   int
	Matured         bool
	DaysToMaturity  int
	AccruedInterest float64
	TotalInterest   float64
	MaturityAmount  float64
}

// DepositSummary computes the deposit view of the wallet as of a date.
// It fails with ErrNotDeposit on a regular wallet.
func (w *Wallet) DepositSummary(asOf Date) (*DepositSummary, error) {
	if w.deposit == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotDeposit, w.name)
	}
	d := *w.deposit
	opened := DateOf(w.createdAt)
	principal := w.totalIncome.InexactFloat64()
	return &DepositSummary{
		WalletName:      w.name,
		Currency:        w.currency,
		Principal:       principal,
		InterestRate:    d.InterestRate,
		MonthlyRate:     d.MonthlyRate(),
		TermMonths:      d.TermMonths,
		Capitalization:  d.Capitalization,
		OpenedOn:        opened,
		MaturityDate:    d.MaturityFrom(opened),
		MonthsElapsed:   d.MonthsElapsed(opened, asOf),
		Matured:         d.Matured(opened, asOf),
		DaysToMaturity:  d.DaysToMaturity(opened, asOf),
		AccruedInterest: d.AccruedInterest(principal, opened, asOf),
		TotalInterest:   d.TotalInterest(principal),
		MaturityAmount:  d.MaturityAmount(principal),
	}, nil
}
