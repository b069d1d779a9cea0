package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellbreathe/backend/internal/service"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Classify hypothetical weather conditions",
	Long:  "Classifies temperature (°C), humidity (%), wind (km/h), precipitation (mm) and visibility (km) as low or elevated pollution-retention risk.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx, cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		temp, _ := cmd.Flags().GetString("temp")
		hum, _ := cmd.Flags().GetString("hum")
		wind, _ := cmd.Flags().GetString("wind")
		precip, _ := cmd.Flags().GetString("precip")
		vis, _ := cmd.Flags().GetString("vis")

		sim := service.NewSimulatorService(nil, st, metrics, log)
		defer sim.WaitBackground()

		outcome, err := sim.SimulateRaw(ctx, temp, hum, wind, precip, vis)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Risk: %s (%s)\n", outcome.Result, outcome.Source)
		return nil
	},
}

func init() {
	simulateCmd.Flags().String("temp", "", "temperature in °C")
	simulateCmd.Flags().String("hum", "", "relative humidity in %")
	simulateCmd.Flags().String("wind", "", "wind speed in km/h")
	simulateCmd.Flags().String("precip", "", "precipitation in mm")
	simulateCmd.Flags().String("vis", "", "visibility in km")
	rootCmd.AddCommand(simulateCmd)
}
