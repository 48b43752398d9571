package billfold

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionFilter is a pure predicate over transactions. Filters never
// mutate the transaction set; they only narrow what a view returns.
type TransactionFilter interface {
	// Name is a short label including the filter's parameters, used in
	// filter summaries.
	Name() string
	// Description is a one-line human-readable account of what the filter
	// keeps.
	Description() string
	Matches(t *Transaction) bool
}

// Preset is one selectable pre-configured filter.
type Preset struct {
	Key   string
	Label string
}

// Convenience amount thresholds.
var (
	largeAmount = decimal.NewFromInt(1000)
	smallAmount = decimal.NewFromInt(100)
)

// --- Date filters ---

type dateFilter struct {
	r     Range
	label string
}

func (f dateFilter) Name() string        { return "Date: " + f.label }
func (f dateFilter) Description() string { return "transactions dated " + f.r.String() }
func (f dateFilter) Matches(t *Transaction) bool {
	return f.r.Contains(t.Date())
}

// NewDateRangeFilter keeps transactions dated within the inclusive range.
// A zero bound leaves that side open.
func NewDateRangeFilter(from, to Date) TransactionFilter {
	r := NewRange(from, to)
	return dateFilter{r: r, label: r.String()}
}

var datePresets = []Preset{
	{Key: "today", Label: "Today"},
	{Key: "this-week", Label: "This Week"},
	{Key: "last-week", Label: "Last Week"},
	{Key: "this-month", Label: "This Month"},
	{Key: "last-month", Label: "Last Month"},
	{Key: "this-year", Label: "This Year"},
	{Key: "last-year", Label: "Last Year"},
}

// DatePresets lists the selectable date presets in presentation order.
func DatePresets() []Preset {
	out := make([]Preset, len(datePresets))
	copy(out, datePresets)
	return out
}

// NewDatePresetFilter builds a date filter for a preset key. The range is
// resolved against the current date at construction. Returns false for an
// unknown key.
func NewDatePresetFilter(key string) (TransactionFilter, bool) {
	today := Today()
	var r Range
	switch key {
	case "today":
		r = Daily.Range(today)
	case "this-week":
		r = Weekly.Range(today)
	case "last-week":
		r = Weekly.Previous(today)
	case "this-month":
		r = Monthly.Range(today)
	case "last-month":
		r = Monthly.Previous(today)
	case "this-year":
		r = Yearly.Range(today)
	case "last-year":
		r = Yearly.Previous(today)
	default:
		return nil, false
	}
	for _, p := range datePresets {
		if p.Key == key {
			return dateFilter{r: r, label: p.Label}, true
		}
	}
	return nil, false
}

// --- Type filters ---

type directionFilter struct {
	dir              Direction
	includeTransfers bool
}

func (f directionFilter) Name() string {
	if f.includeTransfers {
		return fmt.Sprintf("Type: %s", f.dir)
	}
	return fmt.Sprintf("Type: %s (no transfers)", f.dir)
}

func (f directionFilter) Description() string {
	if f.includeTransfers {
		return fmt.Sprintf("%s transactions, transfers included", f.dir)
	}
	return fmt.Sprintf("%s transactions, transfers excluded", f.dir)
}

func (f directionFilter) Matches(t *Transaction) bool {
	if t.Direction() != f.dir {
		return false
	}
	return f.includeTransfers || !t.IsTransfer()
}

type transferFilter struct {
	only bool // true keeps only transfers, false keeps everything else
}

func (f transferFilter) Name() string {
	if f.only {
		return "Type: transfers"
	}
	return "Type: no transfers"
}

func (f transferFilter) Description() string {
	if f.only {
		return "transfer transactions only"
	}
	return "all transactions except transfers"
}

func (f transferFilter) Matches(t *Transaction) bool {
	return t.IsTransfer() == f.only
}

// NewIncomeFilter keeps income transactions, optionally excluding incoming
// transfers.
func NewIncomeFilter(includeTransfers bool) TransactionFilter {
	return directionFilter{dir: Income, includeTransfers: includeTransfers}
}

// NewExpenseFilter keeps expense transactions, optionally excluding
// outgoing transfers.
func NewExpenseFilter(includeTransfers bool) TransactionFilter {
	return directionFilter{dir: Expense, includeTransfers: includeTransfers}
}

// NewTransfersOnlyFilter keeps only transfer transactions.
func NewTransfersOnlyFilter() TransactionFilter { return transferFilter{only: true} }

// NewNoTransfersFilter drops transfer transactions.
func NewNoTransfersFilter() TransactionFilter { return transferFilter{only: false} }

var typePresets = []Preset{
	{Key: "income", Label: "Income (with transfers)"},
	{Key: "income-only", Label: "Income (without transfers)"},
	{Key: "expense", Label: "Expense (with transfers)"},
	{Key: "expense-only", Label: "Expense (without transfers)"},
	{Key: "transfers", Label: "Transfers only"},
	{Key: "no-transfers", Label: "No transfers"},
}

// TypePresets lists the selectable type presets in presentation order.
func TypePresets() []Preset {
	out := make([]Preset, len(typePresets))
	copy(out, typePresets)
	return out
}

// NewTypePresetFilter builds a type filter for a preset key. Returns false
// for an unknown key.
func NewTypePresetFilter(key string) (TransactionFilter, bool) {
	switch key {
	case "income":
		return NewIncomeFilter(true), true
	case "income-only":
		return NewIncomeFilter(false), true
	case "expense":
		return NewExpenseFilter(true), true
	case "expense-only":
		return NewExpenseFilter(false), true
	case "transfers":
		return NewTransfersOnlyFilter(), true
	case "no-transfers":
		return NewNoTransfersFilter(), true
	default:
		return nil, false
	}
}

// --- Category filter ---

type categoryFilter struct {
	names   map[string]bool // lowercased
	display []string
	exclude bool
}

func (f categoryFilter) Name() string {
	if f.exclude {
		return "Category: all except " + strings.Join(f.display, ", ")
	}
	return "Category: " + strings.Join(f.display, ", ")
}

func (f categoryFilter) Description() string {
	if f.exclude {
		return "transactions outside categories " + strings.Join(f.display, ", ")
	}
	return "transactions in categories " + strings.Join(f.display, ", ")
}

func (f categoryFilter) Matches(t *Transaction) bool {
	member := f.names[strings.ToLower(t.Category())]
	if f.exclude {
		return !member
	}
	return member
}

// NewCategoryFilter keeps (or with exclude, drops) transactions whose
// category is in the given set. Matching is case-insensitive.
func NewCategoryFilter(categories []string, exclude bool) TransactionFilter {
	f := categoryFilter{names: make(map[string]bool, len(categories)), exclude: exclude}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !f.names[strings.ToLower(c)] {
			f.names[strings.ToLower(c)] = true
			f.display = append(f.display, c)
		}
	}
	sort.Strings(f.display)
	return f
}

// --- Amount filters ---

type amountFilter struct {
	min, max     *decimal.Decimal
	exclusiveMax bool
}

func (f amountFilter) Name() string { return "Amount: " + f.bounds() }

func (f amountFilter) Description() string { return "transactions with amount " + f.bounds() }

func (f amountFilter) bounds() string {
	op := "<="
	if f.exclusiveMax {
		op = "<"
	}
	switch {
	case f.min != nil && f.max != nil:
		return fmt.Sprintf("%s to %s", f.min.StringFixed(2), f.max.StringFixed(2))
	case f.min != nil:
		return ">= " + f.min.StringFixed(2)
	case f.max != nil:
		return op + " " + f.max.StringFixed(2)
	default:
		return "any"
	}
}

func (f amountFilter) Matches(t *Transaction) bool {
	amt := t.Amount()
	if f.min != nil && amt.LessThan(*f.min) {
		return false
	}
	if f.max != nil {
		if f.exclusiveMax {
			return amt.LessThan(*f.max)
		}
		return amt.LessThanOrEqual(*f.max)
	}
	return true
}

// NewAmountRangeFilter keeps transactions whose magnitude is within the
// inclusive bounds. A nil bound leaves that side open.
func NewAmountRangeFilter(min, max *decimal.Decimal) TransactionFilter {
	return amountFilter{min: min, max: max}
}

var amountPresets = []Preset{
	{Key: "large", Label: "Large (>= 1000.00)"},
	{Key: "small", Label: "Small (< 100.00)"},
}

// AmountPresets lists the selectable amount presets in presentation order.
func AmountPresets() []Preset {
	out := make([]Preset, len(amountPresets))
	copy(out, amountPresets)
	return out
}

// NewAmountPresetFilter builds an amount filter for a preset key. Returns
// false for an unknown key.
func NewAmountPresetFilter(key string) (TransactionFilter, bool) {
	switch key {
	case "large":
		return amountFilter{min: &largeAmount}, true
	case "small":
		return amountFilter{max: &smallAmount, exclusiveMax: true}, true
	default:
		return nil, false
	}
}

// --- Description filter ---

type descriptionFilter struct {
	query         string
	caseSensitive bool
}

func (f descriptionFilter) Name() string {
	if f.caseSensitive {
		return fmt.Sprintf("Description: %q (case-sensitive)", f.query)
	}
	return fmt.Sprintf("Description: %q", f.query)
}

func (f descriptionFilter) Description() string {
	return fmt.Sprintf("transactions whose description contains %q", f.query)
}

func (f descriptionFilter) Matches(t *Transaction) bool {
	if f.caseSensitive {
		return strings.Contains(t.Description(), f.query)
	}
	return strings.Contains(strings.ToLower(t.Description()), strings.ToLower(f.query))
}

// NewDescriptionFilter keeps transactions whose description contains the
// query substring.
func NewDescriptionFilter(query string, caseSensitive bool) TransactionFilter {
	return descriptionFilter{query: query, caseSensitive: caseSensitive}
}

// --- FilteringContext ---

// FilteringContext holds an ordered list of active filters for one wallet.
// A transaction appears in a filtered view only when it satisfies every
// active filter.
type FilteringContext struct {
	filters []TransactionFilter
}

func NewFilteringContext() *FilteringContext {
	return &FilteringContext{}
}

// Add appends a filter to the active list.
func (c *FilteringContext) Add(f TransactionFilter) {
	if f == nil {
		return
	}
	c.filters = append(c.filters, f)
}

// Remove drops the filter at the given position (0-based). Returns false
// when the index is out of range.
func (c *FilteringContext) Remove(index int) bool {
	if index < 0 || index >= len(c.filters) {
		return false
	}
	c.filters = append(c.filters[:index], c.filters[index+1:]...)
	return true
}

// Clear drops all active filters.
func (c *FilteringContext) Clear() {
	c.filters = nil
}

// HasFilters reports whether any filter is active.
func (c *FilteringContext) HasFilters() bool { return len(c.filters) > 0 }

// ActiveFilters returns a copy of the active filter list in order.
func (c *FilteringContext) ActiveFilters() []TransactionFilter {
	out := make([]TransactionFilter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Summary concatenates the names of the active filters, empty when none
// are active.
func (c *FilteringContext) Summary() string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.Name()
	}
	return strings.Join(names, ", ")
}

// Apply returns the transactions satisfying every active filter,
// preserving the incoming order. With no active filters the input is
// returned unchanged in a fresh slice.
func (c *FilteringContext) Apply(txs []*Transaction) []*Transaction {
	out := make([]*Transaction, 0, len(txs))
	for _, t := range txs {
		if c.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (c *FilteringContext) matches(t *Transaction) bool {
	for _, f := range c.filters {
		if !f.Matches(t) {
			return false
		}
	}
	return true
}
