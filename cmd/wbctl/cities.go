package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/pkg/utils"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List monitored cities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := openCatalog(cmd)
		if err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		records := catalog.Search(search)
		if len(records) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No cities found.")
			return nil
		}

		formatCities(cmd.OutOrStdout(), records)
		return nil
	},
}

func init() {
	citiesCmd.Flags().String("search", "", "case-insensitive substring of the city name")
	rootCmd.AddCommand(citiesCmd)
}

func formatCities(out io.Writer, records []domain.CityRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNTRY\tPM2.5\tBAND\tCLUSTER")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
			r.LocationName, r.Country, utils.RoundTo(r.MeanPM25, 2),
			domain.PM25BandFor(r.MeanPM25).Label, domain.ClusterInfo(r.ClusterName).Name)
	}
	w.Flush() //nolint:errcheck
}
