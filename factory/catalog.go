package factory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warp/cashflow-lab/forecast"
)

var (
	// ErrPresetNotFound is returned when a preset id is not registered.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrDuplicatePreset is returned when registering an id twice.
	ErrDuplicatePreset = errors.New("duplicate preset id")
)

// =============================================================================
// BUILT-IN PRESETS
// =============================================================================

// EntryPreset is a small startup selling for cash, with an equipment
// purchase in March.
func EntryPreset() PresetJSON {
	return PresetJSON{
		ID:             "entry",
		Name:           "Entry",
		Description:    "Small startup with cash sales",
		OpeningBalance: 500,
		TermDays:       0,
		Monthly:        MonthlyJSON{Sales: 1200, Outflows: 1000},
		Adjustments: []AdjustmentJSON{
			{Month: 2, Field: FieldOutflows, Amount: 800, Note: "Equipment purchase in March"},
		},
	}
}

// CorePreset is an established business on 30-day credit terms.
func CorePreset() PresetJSON {
	return PresetJSON{
		ID:             "core",
		Name:           "Core",
		Description:    "Established business with 30-day credit terms",
		OpeningBalance: 1000,
		TermDays:       30,
		Monthly:        MonthlyJSON{Sales: 2000, OtherInflows: 100, Outflows: 1800},
		Adjustments: []AdjustmentJSON{
			{Month: 5, Field: FieldOutflows, Amount: 1500, Note: "Large payment in June"},
		},
	}
}

// StretchPreset is a growing business on 60-day terms with two big spends.
func StretchPreset() PresetJSON {
	return PresetJSON{
		ID:             "stretch",
		Name:           "Stretch",
		Description:    "Growing business with longer payment terms",
		OpeningBalance: 300,
		TermDays:       60,
		Monthly:        MonthlyJSON{Sales: 2200, Outflows: 2100},
		Adjustments: []AdjustmentJSON{
			{Month: 0, Field: FieldOutflows, Amount: 1200, Note: "January equipment"},
			{Month: 8, Field: FieldOutflows, Amount: 2500, Note: "September expansion"},
		},
	}
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an ordered registry of presets.
type Catalog struct {
	mu      sync.RWMutex
	order   []string
	presets map[string]PresetJSON
	factory *PresetFactory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		presets: make(map[string]PresetJSON),
		factory: NewPresetFactory(),
	}
}

// DefaultCatalog returns a catalog holding entry, core and stretch.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, p := range []PresetJSON{EntryPreset(), CorePreset(), StretchPreset()} {
		// Built-ins are valid and distinct.
		_ = c.Register(p)
	}
	return c
}

// Register validates and adds a preset.
func (c *Catalog) Register(p PresetJSON) error {
	if err := c.factory.Validate(&p); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.presets[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePreset, p.ID)
	}
	c.presets[p.ID] = p
	c.order = append(c.order, p.ID)
	return nil
}

// Upsert validates and adds a preset, replacing any preset with the same id.
// A replaced preset keeps its position in the listing.
func (c *Catalog) Upsert(p PresetJSON) error {
	if err := c.factory.Validate(&p); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(p)
	return nil
}

// LoadYAML upserts every preset found in a YAML file, so a file preset
// overrides a built-in or earlier preset with the same id. The same rule
// applies at startup and on reload. The file is applied as a whole: if
// any preset is invalid, or two share an id, nothing changes.
func (c *Catalog) LoadYAML(path string) (int, error) {
	presets, err := c.factory.LoadPresetsYAML(path)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if seen[p.ID] {
			return 0, fmt.Errorf("%w: %s in %s", ErrDuplicatePreset, p.ID, path)
		}
		seen[p.ID] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range presets {
		c.put(p)
	}
	return len(presets), nil
}

// put stores p; callers hold mu.
func (c *Catalog) put(p PresetJSON) {
	if _, exists := c.presets[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.presets[p.ID] = p
}

// Get returns the preset with the given id.
func (c *Catalog) Get(id string) (PresetJSON, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.presets[id]
	if !ok {
		return PresetJSON{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	return p, nil
}

// List returns presets in registration order.
func (c *Catalog) List() []PresetJSON {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]PresetJSON, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.presets[id])
	}
	return out
}

// Input expands the preset id for the given month count.
func (c *Catalog) Input(id string, months int) (forecast.Input, error) {
	p, err := c.Get(id)
	if err != nil {
		return forecast.Input{}, err
	}
	return c.factory.Build(&p, months)
}
