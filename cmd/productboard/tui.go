package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/productboard/config"
	"github.com/jpalmerr/productboard/internal/client"
	"github.com/jpalmerr/productboard/internal/tui"
)

// tuiCmd starts the terminal view.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse products in the terminal",
	Long: `Browse the product list in an interactive terminal view.

Keys:
  /            focus search (esc or enter to leave)
  tab          next category (shift+tab for previous)
  s            toggle price sort
  c            clear filters
  r            refresh
  e            export products.csv in the current directory
  q, ctrl+c    quit

Logs are discarded unless --log-file is given.

Example:
  productboard tui
  productboard tui -c config.yaml --log-file productboard.log`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringP("config", "c", "", "path to config file")
	tuiCmd.Flags().String("log-file", "", "write JSON logs to this file")
}

func runTUI(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// the terminal owns stdout and stderr while the program runs
	var logOut io.Writer = io.Discard
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

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

	return tui.Run(ctx, apiClient,
		tui.WithTitle(cfg.Title),
		tui.WithLogger(logger),
	)
}
