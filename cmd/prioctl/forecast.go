package main

import (
	"github.com/spf13/cobra"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

func newForecastCmd(opts *rootOptions) *cobra.Command {
	var (
		disasterType string
		population   int
		location     string
	)

	cmd := &cobra.Command{
		Use:     "forecast",
		Short:   "Forecast resources, costs and a response timeline for a disaster",
		Example: `  prioctl forecast --type TYPHOON --population 12000 --location "Barangay 3"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := model.ForecastRequest{
				DisasterType: disasterType,
				Location:     location,
			}
			if cmd.Flags().Changed("population") {
				req.AffectedPopulation = &population
			}

			service, err := opts.newService(cmd.Context())
			if err != nil {
				return err
			}
			forecast, err := service.ForecastResources(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, forecast)
		},
	}

	cmd.Flags().StringVar(&disasterType, "type", "", "disaster type (FLOOD, TYPHOON, EARTHQUAKE, FIRE, ...)")
	cmd.Flags().IntVar(&population, "population", 0, "affected population")
	cmd.Flags().StringVar(&location, "location", "", "location")
	return cmd
}

func newModelInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "model-info",
		Short: "Show classifier status, model version and taxonomy version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := opts.newService(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, service.ModelInfo())
		},
	}
}
