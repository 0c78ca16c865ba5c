// Package testutil provides shared helpers for fixedsecret tests: manifest
// writers, a capturing logger, and deterministic key material.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/systmms/fixedsecret/internal/config"
)

// WriteTestConfig writes a raw YAML manifest to a temp directory and returns
// its path.
//
// Example:
//
//	path := WriteTestConfig(t, `
//	version: 1
//	keys:
//	  signing:
//	    size: 32
//	    from:
//	      env: SIGNING_KEY
//	`)
func WriteTestConfig(t *testing.T, yamlContent string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixedsecret.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	return path
}

// NewTestConfig writes yamlContent and returns an unloaded Config pointing at
// it, with a debug-enabled TestLogger attached.
func NewTestConfig(t *testing.T, yamlContent string) (*config.Config, *TestLogger) {
	t.Helper()

	logger := NewTestLogger(t, true)
	return &config.Config{
		Path:   WriteTestConfig(t, yamlContent),
		Logger: logger.Logger,
	}, logger
}

// LoadTestConfig loads the manifest at path, failing the test on error.
func LoadTestConfig(t *testing.T, path string) *config.Config {
	t.Helper()

	cfg := &config.Config{Path: path}
	if err := cfg.Load(); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	return cfg
}
