/*
Package insights turns a forecast snapshot into guidance and chart data.

PURPOSE:
  The forecast table answers "what is the balance each month?". This
  package answers the learner's follow-up questions: which months run
  short, which month is worst, and what could the business do about it.
  It also prepares the closing balance series for a chart with a zero
  baseline.

OUTPUT IS DATA:
  Nothing here formats currency or draws anything. Amounts stay decimals
  and callers decide how to present them.

SEE ALSO:
  - forecast/engine.go: Produces the Output consumed here
  - api/handlers.go: Serves Summary and ChartSeries over HTTP
*/
package insights

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/cashflow-lab/forecast"
)

// Suggestions are the recommended actions shown when any month is negative.
var Suggestions = []string{
	"Negotiate shorter payment terms with customers (e.g., Net 15 instead of Net 30)",
	"Delay non-essential purchases or spread large payments over multiple months",
	"Follow up promptly with customers who have overdue invoices",
	"Arrange an overdraft facility or line of credit with the bank",
	"Consider factoring or invoice financing for immediate cash",
	"Review and reduce unnecessary monthly expenses",
}

// MonthRef points at one month of a forecast.
type MonthRef struct {
	Index   int
	Label   string
	Balance decimal.Decimal
}

// Summary is the guidance derived from one forecast snapshot.
type Summary struct {
	NegativeMonthCount int
	NegativeMonths     []MonthRef

	// Worst is the most negative month; nil when no month is negative.
	Worst *MonthRef

	// Lowest is the lowest closing balance; nil for an empty forecast.
	Lowest *MonthRef

	Healthy     bool
	Headline    string
	Suggestions []string
}

// Summarize builds the guidance for out.
func Summarize(out *forecast.Output) Summary {
	s := Summary{NegativeMonthCount: out.NegativeMonthCount}

	for _, m := range out.Months {
		if !m.Negative {
			continue
		}
		s.NegativeMonths = append(s.NegativeMonths, MonthRef{Index: m.Index, Label: m.Label, Balance: m.ClosingBalance})
	}

	if out.HasLowest() {
		s.Lowest = &MonthRef{
			Index:   out.LowestBalanceMonth,
			Label:   forecast.Label(out.LowestBalanceMonth),
			Balance: out.LowestBalance,
		}
	}

	if len(s.NegativeMonths) == 0 {
		s.Healthy = true
		s.Headline = "No negative months in this forecast. The business keeps a positive cash balance throughout the period."
		return s
	}

	// The lowest balance is negative whenever any month is.
	worst := *s.Lowest
	s.Worst = &worst

	labels := make([]string, len(s.NegativeMonths))
	for i, m := range s.NegativeMonths {
		labels[i] = m.Label
	}
	s.Headline = fmt.Sprintf("Cash shortage warning: negative closing balance predicted in %s.", strings.Join(labels, ", "))
	s.Suggestions = append([]string(nil), Suggestions...)
	return s
}

// =============================================================================
// CHART SERIES
// =============================================================================

// chartFloor keeps a flat forecast from collapsing the y-axis.
var (
	chartFloor    = decimal.NewFromInt(100)
	chartHeadroom = decimal.NewFromFloat(1.2)
)

// Point is one closing balance on the chart.
type Point struct {
	Index   int
	Label   string
	Balance decimal.Decimal
}

// ChartSeries is the closing balance time series with a symmetric y-range
// around the zero baseline.
type ChartSeries struct {
	Points   []Point
	YMin     decimal.Decimal
	YMax     decimal.Decimal
	Baseline decimal.Decimal
}

// Series prepares the chart data for out.
func Series(out *forecast.Output) ChartSeries {
	maxAbs := chartFloor
	points := make([]Point, len(out.Months))
	for i, m := range out.Months {
		points[i] = Point{Index: m.Index, Label: m.Label, Balance: m.ClosingBalance}
		if abs := m.ClosingBalance.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}

	yMax := maxAbs.Mul(chartHeadroom)
	return ChartSeries{
		Points:   points,
		YMin:     yMax.Neg(),
		YMax:     yMax,
		Baseline: decimal.Zero,
	}
}
