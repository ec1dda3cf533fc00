package main

import (
	"github.com/spf13/cobra"
	"github.com/warp/cashflow-lab/api"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := api.BuildCatalog(a.cfg.Forecast, a.logger)
			if err != nil {
				return err
			}

			presets := catalog.List()
			dtos := make([]api.PresetDTO, len(presets))
			for i, p := range presets {
				dtos[i] = api.PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description, Config: p}
			}
			return a.printJSON(cmd.OutOrStdout(), dtos)
		},
	}
}
