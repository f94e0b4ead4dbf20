package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salesboard/database"
	"salesboard/internal/config"
	sharedinfra "salesboard/internal/shared/infrastructure"
)

var (
	filePath  string
	delimiter string
	driver    string

	rootCmd = &cobra.Command{
		Use:   "load",
		Short: "Load the sales exports into the persistence database",
		Long: `load copies products.csv and stands.csv into their database tables.

Each table is truncated (or created) and reloaded in a single transaction.
Rows that cannot be transformed or inserted are reported and skipped.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "source file (defaults to the configured path)")
	rootCmd.PersistentFlags().StringVarP(&delimiter, "delimiter", "d", "", "field delimiter (defaults to PRODUCTS_DELIMITER or CSV_DELIMITER)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver: postgres or sqlite (defaults to DB_DRIVER)")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(standsCmd)
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Reload the products table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), productsSource, (*database.Loader).LoadProducts)
	},
}

var standsCmd = &cobra.Command{
	Use:   "stands",
	Short: "Reload the stands table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), standsSource, (*database.Loader).LoadStands)
	},
}

// sourceFunc retourne le fichier et le séparateur configurés d'un export
type sourceFunc func(cfg config.Config) (path string, delimiter rune)

func productsSource(cfg config.Config) (string, rune) {
	return cfg.ProductsPath, cfg.ProductsDelim
}

func standsSource(cfg config.Config) (string, rune) {
	return cfg.StandsPath, cfg.Delimiter
}

type loadFunc func(l *database.Loader, ctx context.Context, path string, delimiter rune) (*database.LoadReport, error)

func run(ctx context.Context, source sourceFunc, load loadFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, delim := source(cfg)
	if filePath != "" {
		path = filePath
	}
	if delimiter != "" {
		if delim, err = sharedinfra.ParseDelimiter(delimiter); err != nil {
			return err
		}
	}
	if driver != "" {
		cfg.DB.Driver = driver
	}

	logger := sharedinfra.NewLogger(cfg.LogLevel)

	db, err := database.Open(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := load(database.NewLoader(db, logger), ctx, path, delim)
	if err != nil {
		return err
	}

	for _, skipped := range report.Skipped {
		fmt.Fprintf(os.Stderr, "row %d: %v\n", skipped.Index, skipped.Err)
	}
	fmt.Printf("%s: %d rows inserted, %d rows skipped\n", report.Table, report.Inserted, len(report.Skipped))
	return nil
}
