// Package main is the entry point for the productboard CLI.
//
// ProductBoard can be run either as a library (SDK) or as a standalone binary
// with optional YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	productboard serve -c config.yaml    # Start the browser dashboard
//	productboard tui                     # Start the terminal view
//	productboard export --category Fruit # Write the filtered list as CSV
//	productboard validate -c config.yaml # Validate configuration
//	productboard version                 # Show version info
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "productboard",
	Short: "A small product catalog dashboard",
	Long: `ProductBoard fetches a product list from an HTTP API and shows it in a
searchable, filterable, sortable table with CSV export.

Quick start:
  1. Point it at your API: export PRODUCTBOARD_API_BASE_URL=http://localhost:5103
  2. Run: productboard serve
  3. Open http://localhost:8080 in your browser

Or stay in the terminal with: productboard tui

Example config:
  title: Product Catalog
  port: 8080
  api_base_url: ${PRODUCTBOARD_API_BASE_URL:-http://localhost:5103}
  request_timeout: 10s`,
	PersistentPreRunE: loadEnvFile,
	SilenceUsage:      true,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this productboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("productboard %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "path to a .env file loaded before the command runs")

	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads the --env-file into the process environment.
// A missing file is not an error; variables already set are kept.
func loadEnvFile(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	return nil
}
