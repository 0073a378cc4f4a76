package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/productboard/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a ProductBoard configuration file without starting the server.

This command parses the YAML, expands environment variables, applies the
PRODUCTBOARD_API_BASE_URL override and validates all fields. It's useful
for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  productboard validate -c config.yaml
  productboard validate --config /etc/productboard/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	timeout := "none"
	if cfg.RequestTimeout != 0 {
		timeout = cfg.RequestTimeout.Duration().String()
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Port:            %d\n", cfg.Port)
	fmt.Printf("  API base URL:    %s\n", cfg.APIBaseURL)
	fmt.Printf("  Request timeout: %s\n", timeout)

	return nil
}
