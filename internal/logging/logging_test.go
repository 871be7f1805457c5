package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsSilent(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, L().GetLevel())
}

func TestSetAndComponent(t *testing.T) {
	prev := *L()
	defer Set(prev)

	var out bytes.Buffer
	l, err := New(&out, "debug", FormatJSON)
	require.NoError(t, err)
	Set(l)

	log := Component("ec")
	log.Debug().Str("curve", "secp256k1").Msg("group resolved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "ec", entry["component"])
	assert.Equal(t, "secp256k1", entry["curve"])
	assert.Equal(t, "debug", entry["level"])
}

func TestComponentIsCached(t *testing.T) {
	prev := *L()
	defer Set(prev)
	Set(zerolog.Nop())

	a := Component("ec")
	assert.Same(t, a, Component("ec"))
	assert.NotSame(t, a, Component("bytebuf"))

	allocs := testing.AllocsPerRun(100, func() {
		Component("ec").Debug().Msg("dropped")
	})
	assert.Zero(t, allocs)

	var out bytes.Buffer
	l, err := New(&out, "info", FormatJSON)
	require.NoError(t, err)
	Set(l)

	b := Component("ec")
	assert.NotSame(t, a, b)
	b.Info().Msg("after set")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "ec", entry["component"])
	assert.Same(t, b, Component("ec"))
}

func TestLevelFilter(t *testing.T) {
	var out bytes.Buffer
	l, err := New(&out, "WARN", FormatJSON)
	require.NoError(t, err)
	l.Info().Msg("dropped")
	assert.Zero(t, out.Len())
	l.Warn().Msg("kept")
	assert.NotZero(t, out.Len())
}

func TestBadLevel(t *testing.T) {
	_, err := New(nil, "loud", FormatConsole)
	assert.Error(t, err)
}
