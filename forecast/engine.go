/*
engine.go - The monthly cash flow fold

PURPOSE:
  Turns an Input snapshot into an Output snapshot. The running balance is a
  strict left-to-right fold: each month opens with the previous month's
  closing balance, so month i is only known once months 0..i-1 are done.

ALGORITHM:
  1. Validate the series shapes
  2. Shift sales into receipts once (ApplyPaymentTerm)
  3. For each month in order:
       total inflow = receipts + other inflows
       net flow     = total inflow - outflows
       closing      = opening + net flow
     and track the negative count and the first lowest closing balance

EMPTY FORECAST:
  With MonthCount == 0 there are no rows, no negative months, and the
  lowest balance is reported as 0 at NoMonth. Use Output.HasLowest to tell
  it apart from a real zero balance.

EXAMPLE:
  Opening 1000, term 30 days, sales 1200/month, outflows 1000/month:
    receipts = [0, 1200, 1200]
    closing  = [0, 200, 400]

SEE ALSO:
  - term.go: ApplyPaymentTerm
  - insights/insights.go: Turns an Output into guidance
*/
package forecast

import "github.com/shopspring/decimal"

// Validate reports shape errors in the input without computing anything.
func Validate(in Input) error {
	if in.MonthCount < 0 {
		return ErrInvalidMonthCount
	}
	series := []struct {
		name   string
		values []decimal.Decimal
	}{
		{"sales", in.Sales},
		{"other_inflows", in.OtherInflows},
		{"outflows", in.Outflows},
	}
	for _, s := range series {
		if s.values != nil && len(s.values) != in.MonthCount {
			return &LengthMismatchError{Series: s.name, Want: in.MonthCount, Got: len(s.values)}
		}
	}
	return nil
}

// Compute derives the monthly ledger and summary statistics for in.
// It does not modify or retain in's slices.
func Compute(in Input) (*Output, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	n := in.MonthCount
	receipts := ApplyPaymentTerm(in.Sales, n, in.TermDays)

	out := &Output{
		OpeningBalance:     in.OpeningBalance,
		TermDays:           in.TermDays,
		ShiftMonths:        ShiftMonths(in.TermDays),
		Months:             make([]Month, n),
		LowestBalance:      decimal.Zero,
		LowestBalanceMonth: NoMonth,
	}

	opening := in.OpeningBalance
	for i := 0; i < n; i++ {
		totalIn := receipts[i].Add(at(in.OtherInflows, i))
		outflows := at(in.Outflows, i)
		net := totalIn.Sub(outflows)
		closing := opening.Add(net)

		m := Month{
			Index:          i,
			Label:          Label(i),
			Sales:          at(in.Sales, i),
			Receipts:       receipts[i],
			OtherInflows:   at(in.OtherInflows, i),
			TotalInflow:    totalIn,
			Outflows:       outflows,
			NetFlow:        net,
			OpeningBalance: opening,
			ClosingBalance: closing,
			Negative:       closing.IsNegative(),
		}
		out.Months[i] = m

		if m.Negative {
			out.NegativeMonthCount++
		}
		// Strict less-than keeps the first month on ties.
		if out.LowestBalanceMonth == NoMonth || closing.LessThan(out.LowestBalance) {
			out.LowestBalance = closing
			out.LowestBalanceMonth = i
		}

		opening = closing
	}

	return out, nil
}
