package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/systmms/fixedsecret/pkg/secret"
)

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, true)

	logger.Info("loaded %s", "signing")
	logger.Warn("slow source")
	logger.Error("failed %d keys", 2)
	logger.Debug("hidden")

	assert.Equal(t, "✓ loaded signing\n⚠ slow source\n✗ failed 2 keys\n", buf.String())
}

func TestLoggerDebugMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true, true)

	logger.Debug("fetching %s", "session")

	assert.Equal(t, "[DEBUG] fetching session\n", buf.String())
}

func TestLoggerColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, false)

	logger.Info("ok")

	assert.Equal(t, "\033[32m✓\033[0m ok\n", buf.String())
}

// TestSecretContainerRedactedInLogs verifies a key container never prints
// its bytes, at any level.
func TestSecretContainerRedactedInLogs(t *testing.T) {
	t.Parallel()

	var key [16]byte
	copy(key[:], "log-me-never-123")
	s := secret.New(&key)
	defer s.Destroy()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true, true)
	logger.Info("key: %v", s)
	logger.Debug("key: %#v", s)
	logger.Error("key: %s", s)

	assert.NotContains(t, buf.String(), "log-me-never-123")
	assert.Contains(t, buf.String(), "[REDACTED]")
}
