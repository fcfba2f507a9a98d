package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherKeepsConfigOnPartialWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cur := Default()
	cur.Theme = "midnight"
	cur.Weapon = "Phantom"
	s := NewStore(path, cur)

	calls := 0
	w, err := NewWatcher(s, func(Config) { calls++ })
	require.NoError(t, err)
	defer w.watcher.Close()

	partial := []byte(`{"table":`)
	require.NoError(t, os.WriteFile(path, partial, 0o644))

	w.reload()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, partial, b)
	assert.Equal(t, "midnight", s.Get().Theme)
	assert.Equal(t, "Phantom", s.Get().Weapon)
	assert.Zero(t, calls)
}

func TestWatcherNormalizesOnReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewStore(path, Default())

	var got Config
	w, err := NewWatcher(s, func(c Config) { got = c }, WithNormalize(func(c *Config) {
		c.NormalizeWeapon([]string{"Vandal", "Phantom"})
		c.Port = 4321
	}))
	require.NoError(t, err)
	defer w.watcher.Close()

	next := Default()
	next.Weapon = "Nope"
	require.NoError(t, Save(path, next))

	w.reload()

	assert.Equal(t, "Vandal", got.Weapon)
	assert.Equal(t, 4321, got.Port)
	assert.Equal(t, "Vandal", s.Get().Weapon)
	assert.Equal(t, 4321, s.Get().Port)
}

func TestParseDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"light"}`), 0o644))

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.True(t, cfg.Table["skin"])

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, string(b))

	_, err = Parse(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
