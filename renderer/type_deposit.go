package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"billfold"
)

// Deposit is a struct to represent a deposit wallet's derived state in json.
// Amounts are handled as billfold.Money values so that they already carry
// their renderers (String, SignedString).
type Deposit struct {

	// Name of the wallet.
	Name string `json:"name"`
	// Currency is the wallet's ISO 4217 code.
	Currency string `json:"currency"`
	// Principal is the total income ever recorded on the wallet.
	Principal billfold.Money `json:"principal"`
	// CurrentValue is the principal plus the interest accrued so far.
	CurrentValue billfold.Money `json:"currentValue"`
	// AccruedInterest is the interest earned up to the summary date.
	AccruedInterest billfold.Money `json:"accruedInterest"`
	// TotalInterest is the interest the full term yields on the principal.
	TotalInterest billfold.Money `json:"totalInterest"`
	// MaturityAmount is principal plus total interest.
	MaturityAmount billfold.Money `json:"maturityAmount"`
	// Rate is the annual interest rate.
	Rate billfold.Percent `json:"rate"`
	// Interest names the accrual mode, compounded or simple.
	Interest string `json:"interest"`
	// Term is the deposit term, formatted.
	Term string `json:"term"`
	// OpenedOn is the day the deposit was opened.
	OpenedOn billfold.Date `json:"openedOn"`
	// MaturityDate is the day the term ends.
	MaturityDate billfold.Date `json:"maturityDate"`
	// MonthsElapsed counts the completed months since opening, capped at the term.
	MonthsElapsed int `json:"monthsElapsed"`
	// TermMonths is the term length in months.
	TermMonths int `json:"termMonths"`
	// Matured reports whether the term has ended.
	Matured bool `json:"matured"`
	// DaysToMaturity counts the days left until maturity, zero once matured.
	DaysToMaturity int `json:"daysToMaturity"`
}

// NewDeposit creates a new Deposit from a computed deposit summary.
func NewDeposit(s *billfold.DepositSummary) *Deposit {
	interest := "simple"
	if s.Capitalization {
		interest = "compounded monthly"
	}
	return &Deposit{
		Name:            s.WalletName,
		Currency:        s.Currency,
		Principal:       billfold.MF(s.Principal, s.Currency),
		CurrentValue:    billfold.MF(s.Principal+s.AccruedInterest, s.Currency),
		AccruedInterest: billfold.MF(s.AccruedInterest, s.Currency),
		TotalInterest:   billfold.MF(s.TotalInterest, s.Currency),
		MaturityAmount:  billfold.MF(s.MaturityAmount, s.Currency),
		Rate:            billfold.Percent(s.InterestRate),
		Interest:        interest,
		Term:            fmt.Sprintf("%d months", s.TermMonths),
		OpenedOn:        s.OpenedOn,
		MaturityDate:    s.MaturityDate,
		MonthsElapsed:   s.MonthsElapsed,
		TermMonths:      s.TermMonths,
		Matured:         s.Matured,
		DaysToMaturity:  s.DaysToMaturity,
	}
}

// depositMarkdownTemplate is the template for rendering a Deposit report in Markdown.
const depositMarkdownTemplate = `# Deposit: {{ .Name }}

Current value: **{{ .CurrentValue }}**

| Principal | {{ .Principal }} |
|:---|---:|
| Annual Rate | {{ .Rate }} |
| Interest | {{ .Interest }} |
| Term | {{ .Term }} |
| Opened | {{ .OpenedOn }} |
| Maturity | {{ .MaturityDate }} |

| Accrued Interest | {{ .AccruedInterest.SignedString }} |
|:---|---:|
| Interest at Term | {{ .TotalInterest.SignedString }} |
| Amount at Maturity | **{{ .MaturityAmount }}** |

{{ if .Matured -}}
Matured after {{ .MonthsElapsed }} months.
{{- else -}}
{{ .MonthsElapsed }} of {{ .TermMonths }} months elapsed, {{ .DaysToMaturity }} days to maturity.
{{- end }}
`

// RenderDeposit renders the Deposit struct to a markdown string using a text/template.
func RenderDeposit(d *Deposit) string {
	tmpl := template.Must(template.New("deposit").Parse(depositMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, d); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
