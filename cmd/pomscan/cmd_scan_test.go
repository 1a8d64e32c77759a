package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

const commonsIOResponse = `<searchNGResponse><data><artifact>` +
	`<groupId>commons-io</groupId><artifactId>commons-io</artifactId><version>2.11.0</version>` +
	`</artifact></data></searchNGResponse>`

func newScanServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sha1") != "" {
			_, _ = w.Write([]byte(commonsIOResponse))
			return
		}
		_, _ = w.Write([]byte(`<searchNGResponse><data></data></searchNGResponse>`))
	}))
	t.Cleanup(server.Close)
	return server
}

func scanConfigFor(t *testing.T, serviceURL string) entities.ScanConfig {
	t.Helper()
	libDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(libDir, "commons-io-2.11.0.jar"), []byte("not really a jar"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg := entities.DefaultScanConfig()
	cfg.ServiceURL = serviceURL
	cfg.LibDir = libDir
	return cfg
}

func TestExecuteScan_POM(t *testing.T) {
	server := newScanServer(t)
	cfg := scanConfigFor(t, server.URL)
	cfg.Wrap = true

	var out bytes.Buffer
	if err := executeScan(context.Background(), cfg, &out); err != nil {
		t.Fatalf("executeScan() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"<dependencies>",
		"<!--  commons-io-2.11.0.jar -->",
		"<!--  Search by Checksum -->",
		"<groupId>commons-io</groupId>",
		"<version>2.11.0</version>",
		"</dependencies>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestExecuteScan_CycloneDX(t *testing.T) {
	server := newScanServer(t)
	cfg := scanConfigFor(t, server.URL)
	cfg.Format = entities.FormatCycloneDX

	var out bytes.Buffer
	if err := executeScan(context.Background(), cfg, &out); err != nil {
		t.Fatalf("executeScan() error = %v", err)
	}

	var bom entities.SBOM
	if err := json.Unmarshal(out.Bytes(), &bom); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(bom.Components) != 1 {
		t.Fatalf("components = %d, want 1", len(bom.Components))
	}
	if got, want := bom.Components[0].PURL, "pkg:maven/commons-io/commons-io@2.11.0"; got != want {
		t.Errorf("purl = %q, want %q", got, want)
	}
}

func TestExecuteScan_MissingDirectory(t *testing.T) {
	server := newScanServer(t)
	cfg := scanConfigFor(t, server.URL)
	cfg.LibDir = filepath.Join(cfg.LibDir, "missing")

	var out bytes.Buffer
	if err := executeScan(context.Background(), cfg, &out); err == nil {
		t.Error("executeScan() should fail for a missing directory")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", out.String())
	}
}

func TestExecuteScan_BadKeyring(t *testing.T) {
	server := newScanServer(t)
	cfg := scanConfigFor(t, server.URL)
	cfg.KeyringPath = filepath.Join(t.TempDir(), "missing.asc")

	var out bytes.Buffer
	if err := executeScan(context.Background(), cfg, &out); err == nil {
		t.Error("executeScan() should fail when the keyring cannot be loaded")
	}
}
