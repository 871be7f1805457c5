package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(body), 0o600))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	l := NewLoader(DefaultFile, t.TempDir())
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "secp256k1", cfg.Curve)
	assert.Equal(t, "sha256", cfg.Hash)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, l.ConfigFileUsed())
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, `
curve: P-384
hash: SHA3-256
log:
  level: DEBUG
  format: json
`)
	l := NewLoader(DefaultFile, dir)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "P-384", cfg.Curve)
	assert.Equal(t, "sha3-256", cfg.Hash)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join(dir, DefaultFile), l.ConfigFileUsed())
}

func TestEnvOverride(t *testing.T) {
	dir := writeConfig(t, "curve: P-384\n")
	t.Setenv("ECBB_CURVE", "ed25519")
	t.Setenv("ECBB_LOG_FORMAT", "json")

	cfg, err := NewLoader(DefaultFile, dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "ed25519", cfg.Curve)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFlagOverride(t *testing.T) {
	dir := writeConfig(t, "curve: P-384\nhash: sha512\n")
	t.Setenv("ECBB_CURVE", "ed25519")

	l := NewLoader(DefaultFile, dir)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, l.RegisterFlags(fs))
	require.NoError(t, fs.Parse([]string{"--curve", "bn254", "--log-level", "warn"}))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "bn254", cfg.Curve)
	assert.Equal(t, "warn", cfg.Log.Level)
	// Unset flags do not mask the file.
	assert.Equal(t, "sha512", cfg.Hash)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown curve", "curve: brainpoolP256r1\n"},
		{"empty curve", "curve: \"\"\n"},
		{"unknown hash", "hash: md5\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewLoader(DefaultFile, writeConfig(t, test.body)).Load()
			assert.Error(t, err)
		})
	}
}

func TestSetFile(t *testing.T) {
	dir := writeConfig(t, "curve: P-521\n")
	l := NewLoader(DefaultFile)
	l.SetFile(filepath.Join(dir, DefaultFile))
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "P-521", cfg.Curve)

	l = NewLoader(DefaultFile)
	l.SetFile(filepath.Join(dir, "missing.yaml"))
	_, err = l.Load()
	assert.Error(t, err)
}

func TestMalformedFile(t *testing.T) {
	dir := writeConfig(t, "curve: [unterminated\n")
	_, err := NewLoader(DefaultFile, dir).Load()
	assert.Error(t, err)
}
