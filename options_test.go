package productboard

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/productboard/view"
)

func TestNew_Defaults(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.Port() != 8080 {
		t.Errorf("Port() = %v, want %v", b.Port(), 8080)
	}
	if b.BaseURL() != "http://localhost:5103" {
		t.Errorf("BaseURL() = %q, want %q", b.BaseURL(), "http://localhost:5103")
	}
	if b.Title() != "" {
		t.Errorf("Title() = %q, want empty", b.Title())
	}
	if b.State().Status() != view.FetchLoading {
		t.Errorf("State().Status() = %v, want %v", b.State().Status(), view.FetchLoading)
	}
	if b.State().Health() != view.HealthChecking {
		t.Errorf("State().Health() = %v, want %v", b.State().Health(), view.HealthChecking)
	}
}

func TestWithBaseURL(t *testing.T) {
	b, err := New(WithBaseURL("https://catalog.example.com/"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// trailing slash is trimmed so paths join cleanly
	if b.BaseURL() != "https://catalog.example.com" {
		t.Errorf("BaseURL() = %q, want %q", b.BaseURL(), "https://catalog.example.com")
	}
}

func TestWithBaseURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "catalog.example.com"},
		{"ftp scheme", "ftp://catalog.example.com"},
		{"no host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithBaseURL(tt.url))
			if err == nil {
				t.Errorf("New(WithBaseURL(%q)) expected error, got nil", tt.url)
			}
		})
	}
}

func TestWithPort(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port", 3000, false},
		{"min port", 1, false},
		{"max port", 65535, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too high", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(WithPort(tt.port))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(WithPort(%d)) error = %v, wantErr %v", tt.port, err, tt.wantErr)
			}
			if !tt.wantErr && b.Port() != tt.port {
				t.Errorf("Port() = %v, want %v", b.Port(), tt.port)
			}
		})
	}
}

func TestWithRequestTimeout(t *testing.T) {
	if _, err := New(WithRequestTimeout(5 * time.Second)); err != nil {
		t.Errorf("New() error = %v", err)
	}
	if _, err := New(WithRequestTimeout(0)); err != nil {
		t.Errorf("New() with zero timeout error = %v", err)
	}

	_, err := New(WithRequestTimeout(-time.Second))
	if err == nil {
		t.Fatal("New() expected error for negative timeout, got nil")
	}
	if !strings.Contains(err.Error(), "negative") {
		t.Errorf("error = %v, want error containing 'negative'", err)
	}
}

func TestWithTitle(t *testing.T) {
	b, err := New(WithTitle("Product Catalog"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.Title() != "Product Catalog" {
		t.Errorf("Title() = %q, want %q", b.Title(), "Product Catalog")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	b, err := New(WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.logger != logger {
		t.Error("logger was not applied")
	}
}

func TestWithLogger_Nil(t *testing.T) {
	_, err := New(WithLogger(nil))
	if err == nil {
		t.Error("New(WithLogger(nil)) expected error, got nil")
	}
}

func TestNew_OptionErrorStopsConstruction(t *testing.T) {
	// the first failing option wins; later options are not applied
	_, err := New(WithPort(0), WithLogger(nil))
	if err == nil {
		t.Fatal("New() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "port") {
		t.Errorf("error = %v, want port error", err)
	}
}
