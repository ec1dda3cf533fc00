/*
handlers_test.go - Tests for the HTTP API

Tests for:
- Forecast computation, including null entries and mismatched series
- Payment term shift endpoint
- Preset listing, expansion and forecast
- Insights and quiz grading
*/
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-lab/config"
	"github.com/warp/cashflow-lab/factory"
	"github.com/warp/cashflow-lab/quiz"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	h := NewHandler(factory.DefaultCatalog(), config.Default().Forecast, quietLogger())
	h.NewSnapshotID = func() string { return "snap-test" }
	return NewRouter(h, []string{"*"})
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// =============================================================================
// FORECAST
// =============================================================================

func TestComputeForecast_ThirtyDayTerm(t *testing.T) {
	// GIVEN: Three months, 30-day term, opening 1000
	srv := setupTestServer(t)
	body := `{
		"months": 3,
		"opening_balance": 1000,
		"term_days": 30,
		"sales": [1200, 1200, 1200],
		"other_inflows": [0, 0, 0],
		"outflows": [1000, 1000, 1000]
	}`

	// WHEN: Posting the forecast
	rec := do(t, srv, http.MethodPost, "/api/forecast", body)

	// THEN: Receipts are shifted by one month
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[ForecastResponse](t, rec)

	assert.Equal(t, "snap-test", resp.SnapshotID)
	assert.Equal(t, 1, resp.ShiftMonths)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, []float64{0, 1200, 1200}, []float64{resp.Rows[0].Receipts, resp.Rows[1].Receipts, resp.Rows[2].Receipts})
	assert.Equal(t, []float64{0, 200, 400}, []float64{resp.Rows[0].ClosingBalance, resp.Rows[1].ClosingBalance, resp.Rows[2].ClosingBalance})
	assert.Equal(t, "Jan", resp.Rows[0].Label)
	require.NotNil(t, resp.Summary.LowestBalance)
	assert.Equal(t, 0.0, *resp.Summary.LowestBalance)
	assert.Equal(t, 0, resp.Summary.LowestBalanceMonth)
	assert.Equal(t, 0, resp.Summary.NegativeMonthCount, "zero is not negative")
}

func TestComputeForecast_NullEntriesReadAsZero(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/forecast",
		`{"opening_balance": 0, "term_days": 0, "sales": [100, null], "outflows": [null, 50]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[ForecastResponse](t, rec)
	assert.Equal(t, 2, resp.MonthCount, "months follow the provided series")
	assert.Equal(t, 100.0, resp.Rows[0].ClosingBalance)
	assert.Equal(t, 50.0, resp.Rows[1].ClosingBalance)
}

func TestComputeForecast_Defaults(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/forecast", `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ForecastResponse](t, rec)
	assert.Equal(t, 12, resp.MonthCount)
	assert.Equal(t, 30, resp.TermDays)
	assert.Equal(t, 1000.0, resp.OpeningBalance)
	assert.Equal(t, 0, resp.Summary.NegativeMonthCount)
}

func TestComputeForecast_EmptyForecastSentinel(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/forecast", `{"months": 0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ForecastResponse](t, rec)
	assert.Empty(t, resp.Rows)
	assert.Nil(t, resp.Summary.LowestBalance)
	assert.Equal(t, -1, resp.Summary.LowestBalanceMonth)
}

func TestComputeForecast_LengthMismatch(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/forecast", `{"months": 3, "sales": [1, 2]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Invalid forecast input", resp.Error)
	assert.Contains(t, resp.Details, "sales")
}

func TestComputeForecast_BadJSON(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/forecast", `{"months": "twelve"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputeForecast_MonthLimit(t *testing.T) {
	// GIVEN: The default limit of 120 months
	srv := setupTestServer(t)

	// WHEN: Asking for far more months than the limit
	rec := do(t, srv, http.MethodPost, "/api/forecast", `{"months": 2000000000}`)

	// THEN: The request is rejected before anything is allocated
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Invalid months", resp.Error)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/insights", `{"months": 121}`).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/forecast", `{"months": 120}`).Code)
}

func TestApplyTerm_MonthLimit(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/receipts", `{"months": 2000000000, "term_days": 30}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyTerm(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/receipts", `{"months": 2, "term_days": 60, "sales": [500, 500]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ReceiptsResponse](t, rec)
	assert.Equal(t, 2, resp.ShiftMonths)
	assert.Equal(t, []float64{0, 0}, resp.Receipts)
}

// =============================================================================
// PRESETS
// =============================================================================

func TestListPresets(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/presets", "")

	require.Equal(t, http.StatusOK, rec.Code)
	presets := decode[[]PresetDTO](t, rec)
	require.Len(t, presets, 3)
	assert.Equal(t, "entry", presets[0].ID)
	assert.Equal(t, 60, presets[2].Config.TermDays)
}

func TestGetPreset_SixMonths(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/presets/core?months=6", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[PresetInputResponse](t, rec)
	assert.Equal(t, 6, resp.MonthCount)
	assert.Equal(t, 30, resp.TermDays)
	assert.Equal(t, []float64{1800, 1800, 1800, 1800, 1800, 3300}, resp.Outflows)
}

func TestGetPreset_Errors(t *testing.T) {
	srv := setupTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/presets/missing", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/presets/core?months=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/presets/core?months=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/presets/core?months=2000000000", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/presets/core/forecast?months=121", "").Code)
}

func TestPresetForecast_Stretch(t *testing.T) {
	// GIVEN: Stretch preset, 60-day terms, January equipment purchase
	srv := setupTestServer(t)

	// WHEN: Forecasting twelve months
	rec := do(t, srv, http.MethodGet, "/api/presets/stretch/forecast?months=12", "")

	// THEN: January and February receive no sales cash
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ForecastResponse](t, rec)
	assert.Equal(t, 2, resp.ShiftMonths)
	assert.Equal(t, -3000.0, resp.Rows[0].ClosingBalance)
	assert.Equal(t, -5100.0, resp.Rows[1].ClosingBalance)
	assert.Equal(t, 12, resp.Summary.NegativeMonthCount)
}

// =============================================================================
// INSIGHTS AND QUIZZES
// =============================================================================

func TestInsights_Shortfall(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/insights",
		`{"months": 2, "opening_balance": 100, "term_days": 0, "outflows": [50, 200]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[InsightsResponse](t, rec)
	assert.False(t, resp.Healthy)
	require.Len(t, resp.NegativeMonths, 1)
	assert.Equal(t, "Feb", resp.NegativeMonths[0].Label)
	require.NotNil(t, resp.Worst)
	assert.Equal(t, -150.0, resp.Worst.Balance)
	assert.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, 180.0, resp.Chart.YMax)
	assert.Equal(t, -180.0, resp.Chart.YMin)
}

func TestListQuizzes_HidesAnswers(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/quizzes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "want")
	quizzes := decode[[]QuizDTO](t, rec)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "payment-terms", quizzes[0].ID)
}

func TestCheckQuiz(t *testing.T) {
	srv := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/quizzes/payment-terms/check",
		`{"placements": {"t1": "0", "t2": "60", "t3": "30"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[quiz.Result](t, rec)
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, []string{"t2", "t3"}, res.Wrong)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/api/quizzes/nope/check", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, srv, http.MethodPost, "/api/quizzes/payment-terms/check", `{"placements": {"t1": "90"}}`).Code)
}

func TestHealth(t *testing.T) {
	rec := do(t, setupTestServer(t), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}
