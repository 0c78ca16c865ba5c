package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// KeyMaterial returns size deterministic, non-zero-prefixed bytes. Tests use
// it wherever a recognisable key is needed.
func KeyMaterial(size int) []byte {
	k := make([]byte, size)
	for i := range k {
		k[i] = byte(i*7 + 1)
	}
	return k
}

// WriteSecretFile writes data to name inside a fresh temp directory with
// mode 0600 and returns the full path.
func WriteSecretFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write secret file: %v", err)
	}

	return path
}
