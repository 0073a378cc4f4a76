package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/product" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"data": [
			{"id": 1, "name": "Apple", "category": "Fruit", "price": 3},
			{"id": 2, "name": "Carrot", "category": "Veg", "price": 1.5},
			{"id": 3, "name": "Banana", "category": "Fruit", "price": 2}
		]}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRunExport_WritesFile(t *testing.T) {
	t.Setenv("PRODUCTBOARD_API_BASE_URL", "")
	ts := newCatalogServer(t)
	configPath := writeConfig(t, "api_base_url: "+ts.URL+"\n")
	outPath := filepath.Join(t.TempDir(), "fruit.csv")

	output, err := executeCmd(t, "export", "--env-file", "",
		"-c", configPath,
		"--search", "",
		"--category", "Fruit",
		"--sort", "desc",
		"-o", outPath,
	)
	if err != nil {
		t.Fatalf("export command error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "Name,Category,Price\nApple,Fruit,3\nBanana,Fruit,2"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
	if !strings.Contains(output, "Exported 2 of 3 products") {
		t.Errorf("output missing summary\nGot: %s", output)
	}
}

func TestRunExport_Stdout(t *testing.T) {
	ts := newCatalogServer(t)
	t.Setenv("PRODUCTBOARD_API_BASE_URL", ts.URL)

	output, err := executeCmd(t, "export", "--env-file", "",
		"-c", "",
		"--search", "CAR",
		"--category", "All",
		"--sort", "asc",
		"-o", "-",
	)
	if err != nil {
		t.Fatalf("export command error = %v", err)
	}
	if !strings.Contains(output, "Name,Category,Price\nCarrot,Veg,1.5") {
		t.Errorf("stdout = %q, want CSV with Carrot", output)
	}
}

func TestRunExport_EmptyResultWritesNothing(t *testing.T) {
	ts := newCatalogServer(t)
	t.Setenv("PRODUCTBOARD_API_BASE_URL", ts.URL)
	outPath := filepath.Join(t.TempDir(), "empty.csv")

	output, err := executeCmd(t, "export", "--env-file", "",
		"-c", "",
		"--search", "nothing matches",
		"--category", "All",
		"--sort", "asc",
		"-o", outPath,
	)
	if err != nil {
		t.Fatalf("export command error = %v", err)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat error = %v", err)
	}
	if !strings.Contains(output, "No products to export.") {
		t.Errorf("output missing empty notice\nGot: %s", output)
	}
}

func TestRunExport_InvalidSort(t *testing.T) {
	_, err := executeCmd(t, "export", "--env-file", "",
		"-c", "",
		"--search", "",
		"--category", "All",
		"--sort", "sideways",
		"-o", "-",
	)
	if err == nil {
		t.Fatal("export command expected error for invalid sort, got nil")
	}
	if !strings.Contains(err.Error(), "invalid --sort") {
		t.Errorf("error = %v, want invalid --sort", err)
	}
}

func TestRunExport_FetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	t.Setenv("PRODUCTBOARD_API_BASE_URL", ts.URL)

	_, err := executeCmd(t, "export", "--env-file", "",
		"-c", "",
		"--search", "",
		"--category", "All",
		"--sort", "asc",
		"-o", "-",
	)
	if err == nil {
		t.Fatal("export command expected error for failed fetch, got nil")
	}
	if !strings.Contains(err.Error(), "failed to fetch products") {
		t.Errorf("error = %v, want fetch failure", err)
	}
}
