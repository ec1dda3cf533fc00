/*
handlers.go - HTTP API handlers for the cash flow forecast lab

PURPOSE:
  Exposes the forecast engine, presets, insights and quizzes via a JSON
  API. Handlers parse the request, build a fresh forecast.Input, call the
  engine and serialize the snapshot. No forecast state survives a request.

ENDPOINTS:
  Forecast:
    POST   /api/forecast               Compute a forecast snapshot
    POST   /api/receipts               Payment term shift only
    POST   /api/insights               Guidance and chart series

  Presets:
    GET    /api/presets                List presets
    GET    /api/presets/{id}           Preset expanded for ?months=
    GET    /api/presets/{id}/forecast  Preset snapshot for ?months=

  Quizzes:
    GET    /api/quizzes                List sorting exercises
    POST   /api/quizzes/{id}/check     Grade placements

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, series/month mismatch, invalid query,
         month count above forecast.max_months
  - 404: Unknown preset or quiz
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Preset handlers
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/cashflow-lab/config"
	"github.com/warp/cashflow-lab/factory"
	"github.com/warp/cashflow-lab/forecast"
	"github.com/warp/cashflow-lab/insights"
	"github.com/warp/cashflow-lab/quiz"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Presets  *factory.Catalog
	Defaults config.ForecastConfig
	Logger   *logrus.Logger

	// NewSnapshotID stamps each computed snapshot.
	NewSnapshotID func() string
}

// NewHandler creates a handler serving the given preset catalog.
func NewHandler(presets *factory.Catalog, defaults config.ForecastConfig, logger *logrus.Logger) *Handler {
	return &Handler{
		Presets:       presets,
		Defaults:      defaults,
		Logger:        logger,
		NewSnapshotID: uuid.NewString,
	}
}

// =============================================================================
// FORECAST HANDLERS
// =============================================================================

// ComputeForecast computes one forecast snapshot.
// POST /api/forecast
func (h *Handler) ComputeForecast(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := req.ToInput(h.Defaults)
	if err := h.Defaults.CheckMonths(in.MonthCount); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months", err)
		return
	}

	out, err := forecast.Compute(in)
	if err != nil {
		h.writeForecastError(w, r, err)
		return
	}

	id := h.NewSnapshotID()
	h.Logger.WithFields(logrus.Fields{
		"snapshot_id":    id,
		"months":         len(out.Months),
		"term_days":      out.TermDays,
		"negative_count": out.NegativeMonthCount,
	}).Debug("forecast computed")

	writeJSON(w, http.StatusOK, NewForecastResponse(id, out))
}

// ApplyTerm returns the receipts after the payment term shift.
// POST /api/receipts
func (h *Handler) ApplyTerm(w http.ResponseWriter, r *http.Request) {
	var req ReceiptsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Months < 0 {
		writeError(w, http.StatusBadRequest, "Invalid months", forecast.ErrInvalidMonthCount)
		return
	}
	if err := h.Defaults.CheckMonths(req.Months); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months", err)
		return
	}

	receipts := forecast.ApplyPaymentTerm(toDecimals(req.Sales), req.Months, req.TermDays)
	writeJSON(w, http.StatusOK, ReceiptsResponse{
		ShiftMonths: forecast.ShiftMonths(req.TermDays),
		Receipts:    toFloats(receipts),
	})
}

// Insights returns guidance and chart data for a forecast.
// POST /api/insights
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := req.ToInput(h.Defaults)
	if err := h.Defaults.CheckMonths(in.MonthCount); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months", err)
		return
	}

	out, err := forecast.Compute(in)
	if err != nil {
		h.writeForecastError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewInsightsResponse(h.NewSnapshotID(), insights.Summarize(out), insights.Series(out)))
}

// =============================================================================
// QUIZ HANDLERS
// =============================================================================

// ListQuizzes returns the sorting exercises without answers.
// GET /api/quizzes
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	exercises := quiz.SortExercises()
	dtos := make([]QuizDTO, len(exercises))
	for i, ex := range exercises {
		dtos[i] = QuizDTO{ID: ex.ID, Title: ex.Title, Bins: ex.Bins, Cards: ex.Cards}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CheckQuiz grades a learner's placements.
// POST /api/quizzes/{id}/check
func (h *Handler) CheckQuiz(w http.ResponseWriter, r *http.Request) {
	ex, ok := quiz.FindSort(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found", nil)
		return
	}

	var req QuizCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := quiz.Grade(ex, req.Placements)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid placements", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeForecastError(w http.ResponseWriter, r *http.Request, err error) {
	if forecast.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid forecast input", err)
		return
	}
	h.Logger.WithError(err).WithField("path", r.URL.Path).Error("forecast failed")
	writeError(w, http.StatusInternalServerError, "Failed to compute forecast", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func isNotFound(err error) bool {
	return errors.Is(err, factory.ErrPresetNotFound)
}
