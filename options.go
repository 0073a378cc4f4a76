package productboard

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jpalmerr/productboard/internal/client"
	"github.com/jpalmerr/productboard/view"
)

// boardConfig holds mutable state during Board construction.
type boardConfig struct {
	title          string
	baseURL        string
	port           int
	requestTimeout time.Duration
	logger         *slog.Logger
	stateCallbacks []func(view.State)
	now            func() time.Time
}

// Option is a function that configures a [Board] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*boardConfig) error

// WithBaseURL sets the upstream API base URL.
//
// Products are fetched from {baseURL}/api/product and health is probed at
// {baseURL}/health. Defaults to http://localhost:5103.
//
// Returns an error if the URL is not an absolute http or https URL.
func WithBaseURL(baseURL string) Option {
	return func(cfg *boardConfig) error {
		if err := client.ValidateBaseURL(baseURL); err != nil {
			return err
		}
		cfg.baseURL = baseURL
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server.
//
// Defaults to 8080 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *boardConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithRequestTimeout bounds each upstream request.
//
// Zero, the default, applies no timeout beyond the transport defaults.
// Returns an error if the duration is negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *boardConfig) error {
		if d < 0 {
			return errors.New("request timeout cannot be negative")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Board.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *boardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStateCallback registers a function called after every state transition.
//
// Multiple callbacks may be registered; they execute in registration order
// on the goroutine that dispatched the action. Callbacks must not block and
// must not call [Board.Dispatch]. Panics are recovered and logged.
//
// Example:
//
//	b, err := productboard.New(
//	    productboard.WithStateCallback(func(s view.State) {
//	        if s.Status() == view.FetchError {
//	            log.Printf("catalog unavailable: %s", s.Err())
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithStateCallback(cb func(view.State)) Option {
	return func(cfg *boardConfig) error {
		if cb == nil {
			return nil
		}
		cfg.stateCallbacks = append(cfg.stateCallbacks, cb)
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and header.
//
// If not specified, defaults to "ProductBoard".
func WithTitle(title string) Option {
	return func(cfg *boardConfig) error {
		cfg.title = title
		return nil
	}
}

// withClock overrides the time source used for last-updated timestamps.
func withClock(now func() time.Time) Option {
	return func(cfg *boardConfig) error {
		cfg.now = now
		return nil
	}
}
