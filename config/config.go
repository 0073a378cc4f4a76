// Package config provides YAML configuration parsing for ProductBoard.
//
// This package enables running ProductBoard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Product Catalog
//	port: 8080
//	api_base_url: ${PRODUCTBOARD_API_BASE_URL:-http://localhost:5103}
//	request_timeout: 10s
//
// The PRODUCTBOARD_API_BASE_URL environment variable, when set and non-empty,
// overrides api_base_url whether or not a configuration file is used.
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/productboard/internal/client"
)

const (
	// BaseURLEnv names the environment variable that overrides the API base URL.
	BaseURLEnv = "PRODUCTBOARD_API_BASE_URL"

	// DefaultBaseURL is used when neither the file nor the environment set one.
	DefaultBaseURL = client.DefaultBaseURL

	// DefaultPort is the dashboard port used when the file does not set one.
	DefaultPort = 8080
)

// Config is the root configuration structure for ProductBoard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML, or [Default] when no
// file is given.
type Config struct {
	// Title is the dashboard title. Defaults to "ProductBoard" if not set.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// APIBaseURL is the upstream API the product list and health probe are
	// fetched from. Supports environment variable substitution.
	// Defaults to http://localhost:5103.
	APIBaseURL string `yaml:"api_base_url"`

	// RequestTimeout bounds each upstream request.
	// Accepts duration strings like "10s", "1m", "500ms".
	// Zero means no timeout beyond the transport defaults.
	RequestTimeout Duration `yaml:"request_timeout"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Default returns the configuration used when no file is given.
//
// The environment override for the API base URL is applied.
func Default() *Config {
	cfg := &Config{
		Port:       DefaultPort,
		APIBaseURL: DefaultBaseURL,
	}
	cfg.applyEnvOverride()
	return cfg
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads path, or returns [Default] when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Title and APIBaseURL. Defaults are
// applied for Port (8080) and APIBaseURL (http://localhost:5103), then the
// PRODUCTBOARD_API_BASE_URL override.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expand(); err != nil {
		return nil, err
	}

	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultBaseURL
	}
	cfg.applyEnvOverride()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expand substitutes environment variables in string fields.
func (c *Config) expand() error {
	title, err := expandEnvVars(c.Title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	c.Title = title

	baseURL, err := expandEnvVars(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}
	c.APIBaseURL = strings.TrimSpace(baseURL)
	return nil
}

func (c *Config) applyEnvOverride() {
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		c.APIBaseURL = v
	}
}

// validate checks ranges and the base URL shape.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	parsedURL, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api_base_url: invalid url: %w", err)
	}
	if parsedURL.Scheme == "" {
		return fmt.Errorf("api_base_url: url must have a scheme (http:// or https://)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("api_base_url: url scheme must be http or https, got %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("api_base_url: url must have a host")
	}

	if c.RequestTimeout.Duration() < 0 {
		return fmt.Errorf("request_timeout cannot be negative, got %s", c.RequestTimeout.Duration())
	}

	return nil
}
