package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-lab/api"
	"github.com/warp/cashflow-lab/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--compact"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestForecast_Preset(t *testing.T) {
	out, err := execute(t, "forecast", "--preset", "core", "--months", "12")
	require.NoError(t, err)

	var resp api.ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 12, resp.MonthCount)
	assert.Equal(t, -700.0, resp.Rows[0].ClosingBalance)
	assert.Equal(t, 6, resp.Summary.NegativeMonthCount)
}

func TestForecast_InputFileWithTermOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"opening_balance": 100,
		"term_days": 60,
		"sales": [500, 500, 500],
		"outflows": [200, 200, 200]
	}`), 0o600))

	out, err := execute(t, "forecast", "--input", path, "--term", "0")
	require.NoError(t, err)

	var resp api.ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 0, resp.TermDays)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, 1000.0, resp.Rows[2].ClosingBalance)
}

func TestForecast_Insights(t *testing.T) {
	out, err := execute(t, "forecast", "--months", "2", "--opening", "-50", "--insights")
	require.NoError(t, err)

	var resp api.InsightsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Healthy)
	assert.Len(t, resp.NegativeMonths, 2)
}

func TestForecast_Errors(t *testing.T) {
	_, err := execute(t, "forecast", "--preset", "core", "--input", "x.json")
	assert.Error(t, err)

	_, err = execute(t, "forecast", "--preset", "missing")
	assert.Error(t, err)

	_, err = execute(t, "forecast", "--months", "-1")
	assert.Error(t, err)
}

func TestForecast_MonthLimit(t *testing.T) {
	_, err := execute(t, "forecast", "--preset", "core", "--months", "2000000000")
	assert.ErrorIs(t, err, config.ErrTooManyMonths)

	_, err = execute(t, "forecast", "--months", "121")
	assert.ErrorIs(t, err, config.ErrTooManyMonths)

	path := filepath.Join(t.TempDir(), "long.json")
	sales := make([]float64, 121)
	data, err := json.Marshal(map[string]any{"sales": sales})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = execute(t, "forecast", "--input", path)
	assert.ErrorIs(t, err, config.ErrTooManyMonths)

	out, err := execute(t, "forecast", "--months", "120")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)

	var presets []api.PresetDTO
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	require.Len(t, presets, 3)
	assert.Equal(t, "stretch", presets[2].ID)
}
