package main

import (
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/warp/cashflow-lab/config"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	compact    bool

	cfg    config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "cashflow",
		Short:        "Cash flow forecast lab",
		Long:         "Project monthly cash balances with payment terms, presets and guidance.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.toml", "TOML config file (optional)")
	rootCmd.PersistentFlags().BoolVar(&a.compact, "compact", false, "Print JSON on one line")

	rootCmd.AddCommand(
		newForecastCmd(a),
		newPresetsCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !a.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
