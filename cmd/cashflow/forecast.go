package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/warp/cashflow-lab/api"
	"github.com/warp/cashflow-lab/forecast"
	"github.com/warp/cashflow-lab/insights"
)

type forecastFlags struct {
	preset   string
	input    string
	months   int
	opening  float64
	term     int
	insights bool
}

func newForecastCmd(a *app) *cobra.Command {
	f := &forecastFlags{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Compute a forecast and print it as JSON",
		Long: `Compute a forecast from a preset, a JSON input file, or the configured
defaults. --opening and --term override whichever source is used.`,
		Example: `  cashflow forecast --preset core --months 12
  cashflow forecast --input plan.json --term 60 --insights`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.buildInput(cmd, a)
			if err != nil {
				return err
			}

			out, err := forecast.Compute(in)
			if err != nil {
				return err
			}

			id := uuid.NewString()
			if f.insights {
				return a.printJSON(cmd.OutOrStdout(), api.NewInsightsResponse(id, insights.Summarize(out), insights.Series(out)))
			}
			return a.printJSON(cmd.OutOrStdout(), api.NewForecastResponse(id, out))
		},
	}

	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Start from a preset (entry, core, stretch, ...)")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Read a forecast request from a JSON file")
	cmd.Flags().IntVarP(&f.months, "months", "m", 0, "Number of months (default from config)")
	cmd.Flags().Float64Var(&f.opening, "opening", 0, "Opening balance")
	cmd.Flags().IntVar(&f.term, "term", 0, "Customer payment term in days")
	cmd.Flags().BoolVar(&f.insights, "insights", false, "Print guidance and chart data instead of rows")
	cmd.MarkFlagsMutuallyExclusive("preset", "input")

	return cmd
}

func (f *forecastFlags) buildInput(cmd *cobra.Command, a *app) (forecast.Input, error) {
	months := a.cfg.Forecast.DefaultMonths
	monthsSet := cmd.Flags().Changed("months")
	if monthsSet {
		if f.months < 0 {
			return forecast.Input{}, fmt.Errorf("--months: %w", forecast.ErrInvalidMonthCount)
		}
		months = f.months
	}
	if err := a.cfg.Forecast.CheckMonths(months); err != nil {
		return forecast.Input{}, fmt.Errorf("--months: %w", err)
	}

	var in forecast.Input
	switch {
	case f.preset != "":
		catalog, err := api.BuildCatalog(a.cfg.Forecast, a.logger)
		if err != nil {
			return in, err
		}
		if in, err = catalog.Input(f.preset, months); err != nil {
			return in, err
		}

	case f.input != "":
		req, err := readRequest(f.input)
		if err != nil {
			return in, err
		}
		if monthsSet {
			req.Months = &months
		}
		in = req.ToInput(a.cfg.Forecast)

	default:
		in = api.ForecastRequest{Months: &months}.ToInput(a.cfg.Forecast)
	}

	// An input file without "months" is sized by its series.
	if err := a.cfg.Forecast.CheckMonths(in.MonthCount); err != nil {
		return forecast.Input{}, fmt.Errorf("month count: %w", err)
	}

	if cmd.Flags().Changed("opening") {
		in.OpeningBalance = decimal.NewFromFloat(f.opening)
	}
	if cmd.Flags().Changed("term") {
		in.TermDays = f.term
	}
	return in, nil
}

func readRequest(path string) (api.ForecastRequest, error) {
	var req api.ForecastRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading input: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return req, fmt.Errorf("parsing %s at offset %d: %w", path, syntaxErr.Offset, err)
		}
		return req, fmt.Errorf("parsing %s: %w", path, err)
	}
	return req, nil
}
