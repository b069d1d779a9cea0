package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/internal/service"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved cities",
	Long:  "Commands for listing, adding and removing cities in the saved favorites list.",
}

// -- favorites list --

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cities in insertion order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		favs, _, st, err := openFavorites(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		entries := favs.List(ctx)
		if len(entries) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No favorites saved.")
			return nil
		}

		resolved := make(map[string]bool)
		for _, r := range favs.ResolveDetails(entries) {
			resolved[r.LocationName] = true
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTHRESHOLD\tSTATUS")
		for _, e := range entries {
			status := "ok"
			if !resolved[e.Name] {
				status = "missing from dataset"
			}
			fmt.Fprintf(w, "%s\t%g\t%s\n", e.Name, e.Threshold, status)
		}
		return w.Flush()
	},
}

// -- favorites add --

var favoritesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		favs, catalog, st, err := openFavorites(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if _, err := catalog.Get(args[0]); err != nil {
			return err
		}
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if err := favs.Add(ctx, args[0], threshold); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
		return nil
	},
}

// -- favorites remove --

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		favs, _, st, err := openFavorites(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := favs.Remove(ctx, args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

// -- favorites clear --

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved city",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		favs, _, st, err := openFavorites(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := favs.Clear(ctx); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Cleared favorites")
		return nil
	},
}

func init() {
	favoritesAddCmd.Flags().Float64("threshold", domain.DefaultThreshold, "alert threshold in µg/m³")

	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesClearCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// openFavorites wires a FavoritesStore over the SQLite store; callers close the returned store
func openFavorites(cmd *cobra.Command) (*service.FavoritesStore, *dataset.Catalog, io.Closer, error) {
	catalog, err := openCatalog(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(cmd.Context(), cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	return service.NewFavoritesStore(st, catalog, metrics, log), catalog, st, nil
}
