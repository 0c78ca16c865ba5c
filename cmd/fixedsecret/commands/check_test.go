package commands

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/fixedsecret/internal/config"
	dserrors "github.com/systmms/fixedsecret/internal/errors"
	"github.com/systmms/fixedsecret/internal/source"
	"github.com/systmms/fixedsecret/tests/fakes"
	"github.com/systmms/fixedsecret/tests/testutil"
)

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	keyFile := testutil.WriteSecretFile(t, "session.key", []byte(base64.StdEncoding.EncodeToString(testutil.KeyMaterial(16))+"\n"))
	t.Setenv("FIXEDSECRET_CHECK_SIGNING", hex.EncodeToString(testutil.KeyMaterial(32)))

	cfg, logs := testutil.NewTestConfig(t, `
version: 1
keys:
  signing:
    size: 32
    encoding: hex
    from:
      env: FIXEDSECRET_CHECK_SIGNING
  session:
    size: 16
    encoding: base64
    from:
      file: `+keyFile+`
  piped:
    size: 24
    encoding: hex
    from:
      file: "-"
`)

	stdin := hex.EncodeToString(testutil.KeyMaterial(24)) + "\n"

	t.Run("all keys", func(t *testing.T) {
		out, err := execute(t, NewCheckCommand(cfg), stdin)
		require.NoError(t, err)

		assert.Contains(t, out, "✓ signing: 32 bytes from env:FIXEDSECRET_CHECK_SIGNING")
		assert.Contains(t, out, "✓ session: 16 bytes from file:"+keyFile)
		assert.Contains(t, out, "✓ piped: 24 bytes from file:<stdin>")
		logs.AssertContains(t, "[DEBUG] loading signing from env:FIXEDSECRET_CHECK_SIGNING")
		logs.AssertContains(t, "[DEBUG] opened signing: [REDACTED]")
		logs.AssertRedacted(t, hex.EncodeToString(testutil.KeyMaterial(32)))
		logs.AssertRedacted(t, hex.EncodeToString(testutil.KeyMaterial(24)))
	})

	t.Run("selected key with fingerprint", func(t *testing.T) {
		out, err := execute(t, NewCheckCommand(cfg), "", "signing", "--fingerprint")
		require.NoError(t, err)

		sum := sha256.Sum256(testutil.KeyMaterial(32))
		assert.Equal(t, "✓ signing: 32 bytes from env:FIXEDSECRET_CHECK_SIGNING (sha256:"+hex.EncodeToString(sum[:8])+")\n", out)
		assert.NotContains(t, out, hex.EncodeToString(testutil.KeyMaterial(32)))
	})

	t.Run("stats", func(t *testing.T) {
		out, err := execute(t, NewCheckCommand(cfg), "", "session", "--stats")
		require.NoError(t, err)

		assert.Contains(t, out, "fixedsecret_containers_live ")
		assert.Contains(t, out, "fixedsecret_containers_destroyed_total ")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := execute(t, NewCheckCommand(cfg), "", "missing")

		var configErr dserrors.ConfigError
		require.ErrorAs(t, err, &configErr)
	})
}

func TestCheckCommand_ReportsFailures(t *testing.T) {
	t.Setenv("FIXEDSECRET_CHECK_SHORT", hex.EncodeToString(testutil.KeyMaterial(31)))

	cfg, logs := testutil.NewTestConfig(t, `
version: 1
keys:
  short:
    size: 32
    encoding: hex
    from:
      env: FIXEDSECRET_CHECK_SHORT
  unset:
    size: 32
    from:
      env: FIXEDSECRET_CHECK_DEFINITELY_UNSET
`)

	_, err := execute(t, NewCheckCommand(cfg), "")

	var userErr dserrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "2 of 2 keys failed to load", userErr.Message)

	logs.AssertContains(t, `loading key "short" from env source`)
	logs.AssertContains(t, "length mismatch")
	logs.AssertContains(t, `loading key "unset" from env source`)
	logs.AssertNotContains(t, hex.EncodeToString(testutil.KeyMaterial(31)))
	logs.AssertLogCount(t, "error", 2)
}

func TestCheckCommand_AWS(t *testing.T) {
	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretBinary("prod/db-key", testutil.KeyMaterial(64))

	original := sourceOptions
	sourceOptions = []source.Option{source.WithAWSOptions(source.WithSecretsManagerClient(fake))}
	t.Cleanup(func() { sourceOptions = original })

	cfg, _ := testutil.NewTestConfig(t, `
version: 1
keys:
  db:
    size: 64
    from:
      aws:
        secret_id: prod/db-key
        region: us-east-1
`)

	out, err := execute(t, NewCheckCommand(cfg), "")
	require.NoError(t, err)
	assert.Equal(t, "✓ db: 64 bytes from aws:prod/db-key\n", out)
}

func TestCheckCommand_RetriesThrottling(t *testing.T) {
	fake := fakes.NewFakeSecretsManagerClient()
	calls := 0
	fake.GetSecretValueFunc = func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("ThrottlingException: Rate exceeded")
		}
		return &secretsmanager.GetSecretValueOutput{SecretBinary: testutil.KeyMaterial(32)}, nil
	}

	original := sourceOptions
	sourceOptions = []source.Option{source.WithAWSOptions(source.WithSecretsManagerClient(fake))}
	t.Cleanup(func() { sourceOptions = original })

	cfg, logs := testutil.NewTestConfig(t, `
version: 1
keys:
  db:
    size: 32
    from:
      aws:
        secret_id: prod/db-key
`)

	out, err := execute(t, NewCheckCommand(cfg), "")
	require.NoError(t, err)
	assert.Equal(t, "✓ db: 32 bytes from aws:prod/db-key\n", out)
	assert.Equal(t, 2, calls)
	logs.AssertContains(t, "retrying db")
}

func TestCheckCommand_MissingManifest(t *testing.T) {
	cfg := &config.Config{
		Path:   filepath.Join(t.TempDir(), "nope.yaml"),
		Logger: testutil.NewTestLogger(t, false).Logger,
	}

	_, err := execute(t, NewCheckCommand(cfg), "")

	var configErr dserrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "path", configErr.Field)
}
