package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/config"
	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/observability"
	"github.com/wellbreathe/backend/internal/repository/sqlite"
)

var (
	cfg     *config.Config
	log     *zap.Logger
	metrics *observability.Metrics
)

var rootCmd = &cobra.Command{
	Use:           "wbctl",
	Short:         "Operator CLI for the WellBreathe backend",
	Long:          "Runs risk simulations, browses the city dataset and manages the saved favorites list in a local SQLite store.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		l, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l
		metrics = observability.NewMetricsWith(prometheus.NewRegistry())

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("dataset", "", "path to the city dataset JSON (default: DATASET_PATH or the embedded sample)")
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite store (default: SQLITE_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openCatalog loads --dataset, falling back to the configured path and then the embedded sample
func openCatalog(cmd *cobra.Command) (*dataset.Catalog, error) {
	path, _ := cmd.Flags().GetString("dataset")
	if path == "" {
		path = cfg.DatasetPath
	}
	if path == "" {
		return dataset.LoadEmbedded(cfg.Locale())
	}
	return dataset.LoadFile(path, cfg.Locale())
}

// openStore opens and migrates the SQLite store named by --db or SQLITE_PATH
func openStore(ctx context.Context, cmd *cobra.Command) (*sqlite.SQLiteRepository, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.SQLitePath
	}

	st, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}
