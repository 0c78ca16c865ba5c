package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/systmms/fixedsecret/internal/errors"
	"github.com/systmms/fixedsecret/tests/testutil"
)

func TestKeysCommand(t *testing.T) {
	t.Parallel()

	cfg, _ := testutil.NewTestConfig(t, `
version: 1
keys:
  signing:
    size: 32
    encoding: hex
    from:
      env: SIGNING_KEY
  api:
    size: 16
    from:
      keyring:
        service: fixedsecret
        account: api
`)

	out, err := execute(t, NewKeysCommand(cfg), "")
	require.NoError(t, err)

	assert.Equal(t, ""+
		"NAME     SIZE  ENCODING  SOURCE\n"+
		"api      16    raw       keyring:fixedsecret/api\n"+
		"signing  32    hex       env:SIGNING_KEY\n", out)
}

func TestKeysCommand_RejectsArgs(t *testing.T) {
	t.Parallel()

	cfg, _ := testutil.NewTestConfig(t, "version: 1\nkeys:\n  a:\n    size: 16\n    from:\n      env: A\n")

	_, err := execute(t, NewKeysCommand(cfg), "", "extra")
	assert.Error(t, err)
}

func TestWriteKeyTable_UnknownKey(t *testing.T) {
	t.Parallel()

	cfg := testutil.LoadTestConfig(t, testutil.WriteTestConfig(t, "version: 1\nkeys:\n  a:\n    size: 16\n    from:\n      env: A\n"))

	var out bytes.Buffer
	err := writeKeyTable(&out, cfg, []string{"a", "b"})

	var configErr dserrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "b", configErr.Value)
}
