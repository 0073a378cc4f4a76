package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/productboard/config"
	"github.com/jpalmerr/productboard/internal/client"
	"github.com/jpalmerr/productboard/product"
)

// exportCmd fetches the product list once and writes the filtered rows as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the product list as CSV",
	Long: `Fetch the product list once, apply the same search, category and sort
rules as the dashboard and write the result as CSV.

The CSV has the header Name,Category,Price and one row per product.
Fields are not quoted. When no product matches, nothing is written.

Example:
  productboard export
  productboard export --category Fruit --sort desc -o fruit.csv
  productboard export --search apple -o -`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("config", "c", "", "path to config file")
	exportCmd.Flags().String("search", "", "case-insensitive name filter")
	exportCmd.Flags().String("category", product.AllCategories, "category filter")
	exportCmd.Flags().String("sort", string(product.SortAsc), "price sort direction (asc or desc)")
	exportCmd.Flags().StringP("output", "o", product.ExportFilename, "output file, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	sortFlag, _ := cmd.Flags().GetString("sort")
	output, _ := cmd.Flags().GetString("output")

	dir := product.SortDir(sortFlag)
	if !dir.Valid() {
		return fmt.Errorf("invalid --sort %q (expected asc or desc)", sortFlag)
	}

	apiClient, err := client.New(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout.Duration()),
		client.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer apiClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, err := apiClient.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	visible := product.Apply(products, product.Params{
		SearchTerm: search,
		Category:   category,
		SortDir:    dir,
	})

	data, ok := product.ExportCSV(visible)
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "No products to export.")
		return nil
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d products to %s\n", len(visible), len(products), output)
	return nil
}
