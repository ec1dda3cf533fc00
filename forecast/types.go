/*
Package forecast provides the cash flow forecasting engine.

PURPOSE:
  Given per-month sales, other inflows, outflows, an opening balance and a
  customer payment term, the engine computes when sales cash actually
  arrives, the net flow of each month, and the running closing balance.
  It also derives the summary figures a learner looks at first: how many
  months go negative and where the lowest point is.

KEY CONCEPTS IN THIS FILE (types.go):
  - Input:  One snapshot of the editable forecast (caller owned)
  - Month:  One computed row of the monthly ledger
  - Output: The derived ledger plus summary statistics

DESIGN PRINCIPLES:
  1. Purity: Compute has no side effects and keeps no state between calls
  2. Precision: Money uses decimal.Decimal to avoid floating-point drift
  3. Snapshots: Every call returns a fresh Output; nothing is patched in place

USAGE:
  out, err := forecast.Compute(forecast.Input{
      MonthCount:     3,
      OpeningBalance: forecast.Money(1000),
      TermDays:       30,
      Sales:          forecast.Series(1200, 1200, 1200),
      Outflows:       forecast.Series(1000, 1000, 1000),
  })

SEE ALSO:
  - term.go: Payment term shift
  - engine.go: The monthly fold
  - errors.go: Validation errors
*/
package forecast

import "github.com/shopspring/decimal"

// NoMonth is the LowestBalanceMonth sentinel for a forecast with no months.
const NoMonth = -1

// =============================================================================
// INPUT - Caller-provided snapshot
// =============================================================================

// Input is one snapshot of the forecast being edited.
//
// The series are index-aligned with index 0 as the first forecast month.
// A nil series means "not provided" and reads as all zeros. A non-nil
// series must have exactly MonthCount entries.
type Input struct {
	MonthCount     int
	OpeningBalance decimal.Decimal
	TermDays       int

	Sales        []decimal.Decimal
	OtherInflows []decimal.Decimal
	Outflows     []decimal.Decimal
}

// =============================================================================
// OUTPUT - Derived ledger
// =============================================================================

// Month is one row of the computed ledger.
type Month struct {
	Index int
	Label string

	Sales          decimal.Decimal
	Receipts       decimal.Decimal // sales cash received this month after the term shift
	OtherInflows   decimal.Decimal
	TotalInflow    decimal.Decimal // Receipts + OtherInflows
	Outflows       decimal.Decimal
	NetFlow        decimal.Decimal // TotalInflow - Outflows
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal // OpeningBalance + NetFlow

	Negative bool
}

// Output is an immutable snapshot produced by Compute.
type Output struct {
	OpeningBalance decimal.Decimal
	TermDays       int
	ShiftMonths    int

	Months []Month

	NegativeMonthCount int

	// LowestBalance is the minimum closing balance and LowestBalanceMonth the
	// first month reaching it. With no months they are 0 and NoMonth.
	LowestBalance      decimal.Decimal
	LowestBalanceMonth int
}

// HasLowest reports whether LowestBalance refers to a real month.
func (o *Output) HasLowest() bool {
	return o.LowestBalanceMonth != NoMonth
}

// MonthCount returns the number of computed months.
func (o *Output) MonthCount() int { return len(o.Months) }

func (o *Output) column(pick func(Month) decimal.Decimal) []decimal.Decimal {
	col := make([]decimal.Decimal, len(o.Months))
	for i, m := range o.Months {
		col[i] = pick(m)
	}
	return col
}

func (o *Output) Receipts() []decimal.Decimal {
	return o.column(func(m Month) decimal.Decimal { return m.Receipts })
}

func (o *Output) TotalInflows() []decimal.Decimal {
	return o.column(func(m Month) decimal.Decimal { return m.TotalInflow })
}

func (o *Output) NetFlows() []decimal.Decimal {
	return o.column(func(m Month) decimal.Decimal { return m.NetFlow })
}

func (o *Output) OpeningBalances() []decimal.Decimal {
	return o.column(func(m Month) decimal.Decimal { return m.OpeningBalance })
}

func (o *Output) ClosingBalances() []decimal.Decimal {
	return o.column(func(m Month) decimal.Decimal { return m.ClosingBalance })
}

// =============================================================================
// HELPERS
// =============================================================================

// Money converts a float amount to a decimal.
func Money(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// Series builds a decimal series from float amounts.
func Series(values ...float64) []decimal.Decimal {
	s := make([]decimal.Decimal, len(values))
	for i, v := range values {
		s[i] = decimal.NewFromFloat(v)
	}
	return s
}

// Repeat builds a series of n copies of v.
func Repeat(v float64, n int) []decimal.Decimal {
	if n < 0 {
		n = 0
	}
	d := decimal.NewFromFloat(v)
	s := make([]decimal.Decimal, n)
	for i := range s {
		s[i] = d
	}
	return s
}

// at reads s[i], treating missing entries as zero.
func at(s []decimal.Decimal, i int) decimal.Decimal {
	if i < 0 || i >= len(s) {
		return decimal.Zero
	}
	return s[i]
}
