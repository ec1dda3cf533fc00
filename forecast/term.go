package forecast

import "github.com/shopspring/decimal"

// DaysPerMonth is the month length used to turn a payment term into a shift.
const DaysPerMonth = 30

// ShiftMonths converts a payment term in days to a whole-month delay,
// rounding to the nearest month with halves rounded up (15 days -> 1).
//
// Granularity is whole months: 44 days is one month and 45 days is two.
func ShiftMonths(termDays int) int {
	n := termDays + DaysPerMonth/2
	q := n / DaysPerMonth
	if n%DaysPerMonth != 0 && n < 0 {
		q-- // floor for negative terms
	}
	return q
}

// ApplyPaymentTerm moves each month's sales to the month the cash arrives.
//
// Sales of month i are received in month i+shift. Receipts landing outside
// [0, monthCount) fall out of the forecast window and are dropped. Missing
// sales entries read as zero.
func ApplyPaymentTerm(sales []decimal.Decimal, monthCount, termDays int) []decimal.Decimal {
	if monthCount < 0 {
		monthCount = 0
	}
	receipts := make([]decimal.Decimal, monthCount)
	for i := range receipts {
		receipts[i] = decimal.Zero
	}

	shift := ShiftMonths(termDays)
	for i := 0; i < monthCount; i++ {
		target := i + shift
		if target < 0 || target >= monthCount {
			continue
		}
		receipts[target] = receipts[target].Add(at(sales, i))
	}
	return receipts
}
