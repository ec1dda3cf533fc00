/*
Package factory provides JSON/YAML to forecast input conversion.

PURPOSE:
  Converts preset definitions into forecast.Input snapshots. A preset is a
  named scenario template: flat monthly figures plus a few one-off
  adjustments (an equipment purchase in March, a large payment in June).
  Because the month count is chosen by the learner, a preset is expanded
  for a given number of months at load time.

JSON SCHEMA:
  {
    "id": "core",
    "name": "Core",
    "description": "Established business with 30-day credit terms",
    "opening_balance": 1000,
    "term_days": 30,
    "monthly": {"sales": 2000, "other_inflows": 100, "outflows": 1800},
    "adjustments": [
      {"month": 5, "field": "outflows", "amount": 1500, "note": "Large payment in June"}
    ]
  }

ADJUSTMENTS:
  Adjustments ADD to the flat monthly value. An adjustment whose month
  falls outside the requested window is ignored, so a September expansion
  simply does not appear in a six month forecast.

USAGE:
  f := factory.NewPresetFactory()
  p, err := f.ParsePreset(jsonString)
  in, err := f.Build(p, 12)
  out, err := forecast.Compute(in)

SEE ALSO:
  - factory/catalog.go: Named preset registry and built-ins
  - forecast/types.go: Input definition
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/cashflow-lab/forecast"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidPreset is returned when a preset definition is malformed.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrUnknownField is returned when an adjustment targets an unknown series.
	ErrUnknownField = errors.New("unknown adjustment field")
)

// Series names accepted by Adjustment.Field.
const (
	FieldSales        = "sales"
	FieldOtherInflows = "other_inflows"
	FieldOutflows     = "outflows"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PresetJSON is the JSON (and YAML) representation of a preset.
type PresetJSON struct {
	ID             string           `json:"id" yaml:"id"`
	Name           string           `json:"name" yaml:"name"`
	Description    string           `json:"description,omitempty" yaml:"description,omitempty"`
	OpeningBalance float64          `json:"opening_balance" yaml:"opening_balance"`
	TermDays       int              `json:"term_days" yaml:"term_days"`
	Monthly        MonthlyJSON      `json:"monthly" yaml:"monthly"`
	Adjustments    []AdjustmentJSON `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
}

// MonthlyJSON holds the flat values applied to every month.
type MonthlyJSON struct {
	Sales        float64 `json:"sales" yaml:"sales"`
	OtherInflows float64 `json:"other_inflows" yaml:"other_inflows"`
	Outflows     float64 `json:"outflows" yaml:"outflows"`
}

// AdjustmentJSON adds a one-off amount to one month of one series.
type AdjustmentJSON struct {
	Month  int     `json:"month" yaml:"month"` // 0-based forecast month
	Field  string  `json:"field" yaml:"field"`
	Amount float64 `json:"amount" yaml:"amount"`
	Note   string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// =============================================================================
// PRESET FACTORY
// =============================================================================

// PresetFactory converts preset definitions to forecast inputs.
type PresetFactory struct{}

// NewPresetFactory creates a new preset factory.
func NewPresetFactory() *PresetFactory {
	return &PresetFactory{}
}

// ParsePreset parses and validates a JSON preset.
func (f *PresetFactory) ParsePreset(jsonStr string) (*PresetJSON, error) {
	var p PresetJSON
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := f.Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPresetsYAML reads a YAML list of presets from path.
func (f *PresetFactory) LoadPresetsYAML(path string) ([]PresetJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}

	var presets []PresetJSON
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	for i := range presets {
		if err := f.Validate(&presets[i]); err != nil {
			return nil, fmt.Errorf("preset %d: %w", i, err)
		}
	}
	return presets, nil
}

// Validate checks the preset's required fields and adjustments.
func (f *PresetFactory) Validate(p *PresetJSON) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPreset)
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	for _, adj := range p.Adjustments {
		if adj.Month < 0 {
			return fmt.Errorf("%w: adjustment month %d is negative", ErrInvalidPreset, adj.Month)
		}
		switch adj.Field {
		case FieldSales, FieldOtherInflows, FieldOutflows:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, adj.Field)
		}
	}
	return nil
}

// Build expands the preset into an Input covering months months.
func (f *PresetFactory) Build(p *PresetJSON, months int) (forecast.Input, error) {
	if months <= 0 {
		return forecast.Input{}, fmt.Errorf("%w: month count must be positive, got %d", ErrInvalidPreset, months)
	}
	if err := f.Validate(p); err != nil {
		return forecast.Input{}, err
	}

	in := forecast.Input{
		MonthCount:     months,
		OpeningBalance: decimal.NewFromFloat(p.OpeningBalance),
		TermDays:       p.TermDays,
		Sales:          forecast.Repeat(p.Monthly.Sales, months),
		OtherInflows:   forecast.Repeat(p.Monthly.OtherInflows, months),
		Outflows:       forecast.Repeat(p.Monthly.Outflows, months),
	}

	for _, adj := range p.Adjustments {
		if adj.Month >= months {
			continue
		}
		amount := decimal.NewFromFloat(adj.Amount)
		switch adj.Field {
		case FieldSales:
			in.Sales[adj.Month] = in.Sales[adj.Month].Add(amount)
		case FieldOtherInflows:
			in.OtherInflows[adj.Month] = in.OtherInflows[adj.Month].Add(amount)
		case FieldOutflows:
			in.Outflows[adj.Month] = in.Outflows[adj.Month].Add(amount)
		}
	}

	return in, nil
}
