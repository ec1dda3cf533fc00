/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal model from the browser's plain numbers:
  - Amounts travel as JSON numbers (float64)
  - Array entries may be null; null reads as zero
  - An omitted array means "all zero"

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
  - forecast/types.go: Engine types
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/cashflow-lab/config"
	"github.com/warp/cashflow-lab/factory"
	"github.com/warp/cashflow-lab/forecast"
	"github.com/warp/cashflow-lab/insights"
	"github.com/warp/cashflow-lab/quiz"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ForecastRequest is the editable forecast sent by the client.
type ForecastRequest struct {
	Months         *int       `json:"months,omitempty"`
	OpeningBalance *float64   `json:"opening_balance,omitempty"`
	TermDays       *int       `json:"term_days,omitempty"`
	Sales          []*float64 `json:"sales,omitempty"`
	OtherInflows   []*float64 `json:"other_inflows,omitempty"`
	Outflows       []*float64 `json:"outflows,omitempty"`
}

// ReceiptsRequest asks for the payment term shift alone.
type ReceiptsRequest struct {
	Months   int        `json:"months"`
	TermDays int        `json:"term_days"`
	Sales    []*float64 `json:"sales"`
}

// QuizCheckRequest carries a learner's placements (card id -> bin id).
type QuizCheckRequest struct {
	Placements map[string]string `json:"placements"`
}

// ToInput converts the request, filling omitted scalars from defaults.
// When months is omitted it follows the first provided series.
func (r ForecastRequest) ToInput(defaults config.ForecastConfig) forecast.Input {
	in := forecast.Input{
		MonthCount:     defaults.DefaultMonths,
		OpeningBalance: decimal.NewFromFloat(defaults.DefaultOpeningBalance),
		TermDays:       defaults.DefaultTermDays,
		Sales:          toDecimals(r.Sales),
		OtherInflows:   toDecimals(r.OtherInflows),
		Outflows:       toDecimals(r.Outflows),
	}

	switch {
	case r.Months != nil:
		in.MonthCount = *r.Months
	case r.Sales != nil:
		in.MonthCount = len(r.Sales)
	case r.OtherInflows != nil:
		in.MonthCount = len(r.OtherInflows)
	case r.Outflows != nil:
		in.MonthCount = len(r.Outflows)
	}
	if r.OpeningBalance != nil {
		in.OpeningBalance = decimal.NewFromFloat(*r.OpeningBalance)
	}
	if r.TermDays != nil {
		in.TermDays = *r.TermDays
	}
	return in
}

func toDecimals(values []*float64) []decimal.Decimal {
	if values == nil {
		return nil
	}
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = decimal.Zero
			continue
		}
		out[i] = decimal.NewFromFloat(*v)
	}
	return out
}

func toFloats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}

// =============================================================================
// FORECAST RESPONSES
// =============================================================================

// MonthDTO is one row of the forecast table.
type MonthDTO struct {
	Index          int     `json:"index"`
	Label          string  `json:"label"`
	Sales          float64 `json:"sales"`
	Receipts       float64 `json:"receipts"`
	OtherInflows   float64 `json:"other_inflows"`
	TotalInflow    float64 `json:"total_inflow"`
	Outflows       float64 `json:"outflows"`
	NetFlow        float64 `json:"net_flow"`
	OpeningBalance float64 `json:"opening_balance"`
	ClosingBalance float64 `json:"closing_balance"`
	Negative       bool    `json:"negative"`
}

// ForecastSummaryDTO holds the headline statistics.
// LowestBalance is null and LowestBalanceMonth is -1 for an empty forecast.
type ForecastSummaryDTO struct {
	NegativeMonthCount int      `json:"negative_month_count"`
	LowestBalance      *float64 `json:"lowest_balance"`
	LowestBalanceMonth int      `json:"lowest_balance_month"`
	LowestBalanceLabel string   `json:"lowest_balance_label,omitempty"`
}

// ForecastResponse is one computed snapshot.
type ForecastResponse struct {
	SnapshotID     string             `json:"snapshot_id"`
	MonthCount     int                `json:"months"`
	OpeningBalance float64            `json:"opening_balance"`
	TermDays       int                `json:"term_days"`
	ShiftMonths    int                `json:"shift_months"`
	Rows           []MonthDTO         `json:"rows"`
	Summary        ForecastSummaryDTO `json:"summary"`
}

// ReceiptsResponse is the result of the payment term shift.
type ReceiptsResponse struct {
	ShiftMonths int       `json:"shift_months"`
	Receipts    []float64 `json:"receipts"`
}

// NewForecastResponse flattens a snapshot for JSON.
func NewForecastResponse(id string, out *forecast.Output) ForecastResponse {
	rows := make([]MonthDTO, len(out.Months))
	for i, m := range out.Months {
		rows[i] = MonthDTO{
			Index:          m.Index,
			Label:          m.Label,
			Sales:          m.Sales.InexactFloat64(),
			Receipts:       m.Receipts.InexactFloat64(),
			OtherInflows:   m.OtherInflows.InexactFloat64(),
			TotalInflow:    m.TotalInflow.InexactFloat64(),
			Outflows:       m.Outflows.InexactFloat64(),
			NetFlow:        m.NetFlow.InexactFloat64(),
			OpeningBalance: m.OpeningBalance.InexactFloat64(),
			ClosingBalance: m.ClosingBalance.InexactFloat64(),
			Negative:       m.Negative,
		}
	}

	summary := ForecastSummaryDTO{
		NegativeMonthCount: out.NegativeMonthCount,
		LowestBalanceMonth: out.LowestBalanceMonth,
	}
	if out.HasLowest() {
		lowest := out.LowestBalance.InexactFloat64()
		summary.LowestBalance = &lowest
		summary.LowestBalanceLabel = forecast.Label(out.LowestBalanceMonth)
	}

	return ForecastResponse{
		SnapshotID:     id,
		MonthCount:     len(out.Months),
		OpeningBalance: out.OpeningBalance.InexactFloat64(),
		TermDays:       out.TermDays,
		ShiftMonths:    out.ShiftMonths,
		Rows:           rows,
		Summary:        summary,
	}
}

// =============================================================================
// INSIGHTS RESPONSES
// =============================================================================

// MonthRefDTO points at one month.
type MonthRefDTO struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	Balance float64 `json:"balance"`
}

// ChartDTO is the closing balance series with its y-range.
type ChartDTO struct {
	Points   []MonthRefDTO `json:"points"`
	YMin     float64       `json:"y_min"`
	YMax     float64       `json:"y_max"`
	Baseline float64       `json:"baseline"`
}

// InsightsResponse is the guidance for one snapshot.
type InsightsResponse struct {
	SnapshotID     string        `json:"snapshot_id"`
	Healthy        bool          `json:"healthy"`
	Headline       string        `json:"headline"`
	NegativeMonths []MonthRefDTO `json:"negative_months"`
	Worst          *MonthRefDTO  `json:"worst,omitempty"`
	Lowest         *MonthRefDTO  `json:"lowest,omitempty"`
	Suggestions    []string      `json:"suggestions"`
	Chart          ChartDTO      `json:"chart"`
}

func toMonthRefDTO(ref *insights.MonthRef) *MonthRefDTO {
	if ref == nil {
		return nil
	}
	return &MonthRefDTO{Index: ref.Index, Label: ref.Label, Balance: ref.Balance.InexactFloat64()}
}

// NewInsightsResponse flattens insights and chart data for JSON.
func NewInsightsResponse(id string, s insights.Summary, chart insights.ChartSeries) InsightsResponse {
	resp := InsightsResponse{
		SnapshotID:     id,
		Healthy:        s.Healthy,
		Headline:       s.Headline,
		NegativeMonths: make([]MonthRefDTO, 0, len(s.NegativeMonths)),
		Worst:          toMonthRefDTO(s.Worst),
		Lowest:         toMonthRefDTO(s.Lowest),
		Suggestions:    s.Suggestions,
		Chart: ChartDTO{
			Points:   make([]MonthRefDTO, len(chart.Points)),
			YMin:     chart.YMin.InexactFloat64(),
			YMax:     chart.YMax.InexactFloat64(),
			Baseline: chart.Baseline.InexactFloat64(),
		},
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}
	for i := range s.NegativeMonths {
		resp.NegativeMonths = append(resp.NegativeMonths, *toMonthRefDTO(&s.NegativeMonths[i]))
	}
	for i, p := range chart.Points {
		resp.Chart.Points[i] = MonthRefDTO{Index: p.Index, Label: p.Label, Balance: p.Balance.InexactFloat64()}
	}
	return resp
}

// =============================================================================
// PRESET AND QUIZ RESPONSES
// =============================================================================

// PresetDTO describes a preset in listings.
type PresetDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Config      factory.PresetJSON `json:"config"`
}

// PresetInputResponse is a preset expanded for a month count, ready to edit.
type PresetInputResponse struct {
	ID             string    `json:"id"`
	MonthCount     int       `json:"months"`
	OpeningBalance float64   `json:"opening_balance"`
	TermDays       int       `json:"term_days"`
	Sales          []float64 `json:"sales"`
	OtherInflows   []float64 `json:"other_inflows"`
	Outflows       []float64 `json:"outflows"`
}

// QuizDTO describes a sorting exercise without its answers.
type QuizDTO struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Bins  []quiz.Bin  `json:"bins"`
	Cards []quiz.Card `json:"cards"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
