package dynconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapProvider map[string]string

func (m mapProvider) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestPrecedence(t *testing.T) {
	first := mapProvider{"payments.checkout_url": "https://first.example.com", "only.first": "yes"}
	second := mapProvider{"payments.checkout_url": "https://second.example.com"}

	cfg := New(first, second)

	assert.Equal(t, "https://second.example.com", cfg.Get("payments.checkout_url", ""), "the later provider wins")
	assert.Equal(t, "yes", cfg.Get("only.first", ""))
	assert.Equal(t, "fallback", cfg.Get("missing.key", "fallback"))
}

func TestGetBool(t *testing.T) {
	cfg := New(mapProvider{"feature.on": "true", "feature.bad": "not-a-bool"})

	assert.True(t, cfg.GetBool("feature.on", false))
	assert.False(t, cfg.GetBool("feature.bad", false))
	assert.True(t, cfg.GetBool("feature.missing", true))
}

func TestGetInt(t *testing.T) {
	cfg := New(mapProvider{"limits.max": " 42 ", "limits.bad": "many"})

	assert.Equal(t, 42, cfg.GetInt("limits.max", 0))
	assert.Equal(t, 7, cfg.GetInt("limits.bad", 7))
	assert.Equal(t, 7, cfg.GetInt("limits.missing", 7))
}

func TestViperProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	doc := "payments:\n  checkout_url: https://pay.example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := NewViperProvider(path)
	require.NoError(t, err)

	v, ok := p.Get("payments.checkout_url")
	require.True(t, ok)
	assert.Equal(t, "https://pay.example.com", v)

	_, ok = p.Get("payments.missing")
	assert.False(t, ok)
}

func TestViperProviderMissingFile(t *testing.T) {
	p, err := NewViperProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	_, ok := p.Get("anything")
	assert.False(t, ok)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("PLANORA_PAYMENTS_CHECKOUT_URL", "https://env.example.com")

	p := NewEnvProvider("PLANORA")

	v, ok := p.Get("payments.checkout_url")
	require.True(t, ok)
	assert.Equal(t, "https://env.example.com", v)

	_, ok = p.Get("payments.missing")
	assert.False(t, ok)
}
