/*
scenarios.go - Preset scenario handlers

PURPOSE:
  Serves the one-click scenarios a learner can load: entry, core and
  stretch, plus any presets loaded from YAML at startup. A preset is only
  a template; loading one returns an editable input, and the client sends
  its own copy back to /api/forecast from then on.

AVAILABLE SCENARIOS:
  entry:    Cash sales, equipment purchase in March
  core:     30-day credit terms, large payment in June
  stretch:  60-day credit terms, January equipment and September expansion

USAGE VIA API:
  GET /api/presets/core?months=6
  GET /api/presets/stretch/forecast?months=12

SEE ALSO:
  - factory/catalog.go: Preset definitions
  - handlers.go: Forecast handlers
*/
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/cashflow-lab/forecast"
)

// ListPresets returns available presets.
// GET /api/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := h.Presets.List()
	dtos := make([]PresetDTO, len(presets))
	for i, p := range presets {
		dtos[i] = PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description, Config: p}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPreset returns a preset expanded for the requested month count.
// GET /api/presets/{id}?months=12
func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	in, ok := h.presetInput(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, PresetInputResponse{
		ID:             chi.URLParam(r, "id"),
		MonthCount:     in.MonthCount,
		OpeningBalance: in.OpeningBalance.InexactFloat64(),
		TermDays:       in.TermDays,
		Sales:          toFloats(in.Sales),
		OtherInflows:   toFloats(in.OtherInflows),
		Outflows:       toFloats(in.Outflows),
	})
}

// PresetForecast computes the forecast for a preset.
// GET /api/presets/{id}/forecast?months=12
func (h *Handler) PresetForecast(w http.ResponseWriter, r *http.Request) {
	in, ok := h.presetInput(w, r)
	if !ok {
		return
	}

	out, err := forecast.Compute(in)
	if err != nil {
		h.writeForecastError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewForecastResponse(h.NewSnapshotID(), out))
}

func (h *Handler) presetInput(w http.ResponseWriter, r *http.Request) (forecast.Input, bool) {
	months := h.Defaults.DefaultMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid months", fmt.Errorf("months must be a positive integer, got %q", raw))
			return forecast.Input{}, false
		}
		months = n
	}
	if err := h.Defaults.CheckMonths(months); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months", err)
		return forecast.Input{}, false
	}

	in, err := h.Presets.Input(chi.URLParam(r, "id"), months)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "Preset not found", err)
			return forecast.Input{}, false
		}
		writeError(w, http.StatusBadRequest, "Invalid preset", err)
		return forecast.Input{}, false
	}
	return in, true
}
