package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/core/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.Reset()

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "accessd "+version)
}

func TestIDRoundTrip(t *testing.T) {
	t.Setenv("IDCODEC_SECRET", "cli test secret")
	t.Setenv("IDCODEC_SALT", "cli-test-salt")
	t.Setenv("IDCODEC_KDF_TIME", "1")
	t.Setenv("IDCODEC_KDF_MEMORY_KB", "8192")
	t.Setenv("IDCODEC_KDF_THREADS", "1")

	out, err := run(t, "id", "encode", "12345")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	out, err = run(t, "id", "decode", token)
	require.NoError(t, err)
	assert.Equal(t, "12345", strings.TrimSpace(out))

	_, err = run(t, "id", "decode", "not-a-token")
	assert.Error(t, err)
}

func TestSessionRequiresPersistentStore(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memory")

	_, err := run(t, "session", "create", "--user", "1")
	assert.ErrorIs(t, err, errMemoryStore)
}

func TestRequiredFlags(t *testing.T) {
	_, err := run(t, "grant", "--user", "1")
	assert.Error(t, err)

	_, err = run(t, "seed")
	assert.Error(t, err)
}
