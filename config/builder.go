package config

import (
	"log/slog"

	"github.com/jpalmerr/productboard"
)

// BuildOptions converts parsed configuration into Board options.
//
// A nil logger leaves the Board on slog.Default().
func BuildOptions(cfg *Config, logger *slog.Logger) []productboard.Option {
	opts := []productboard.Option{
		productboard.WithBaseURL(cfg.APIBaseURL),
		productboard.WithPort(cfg.Port),
	}

	if cfg.Title != "" {
		opts = append(opts, productboard.WithTitle(cfg.Title))
	}

	if cfg.RequestTimeout != 0 {
		opts = append(opts, productboard.WithRequestTimeout(cfg.RequestTimeout.Duration()))
	}

	if logger != nil {
		opts = append(opts, productboard.WithLogger(logger))
	}

	return opts
}

// NewBoard builds a Board from cfg.
func NewBoard(cfg *Config, logger *slog.Logger) (*productboard.Board, error) {
	return productboard.New(BuildOptions(cfg, logger)...)
}
