package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/infra/config"
)

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func moveTo(t *testing.T, c Configurator, kind itemKind, name string) Configurator {
	t.Helper()
	for i, it := range c.items {
		if it.kind == kind && it.key == name {
			c.cursor = i
			return c
		}
	}
	t.Fatalf("item %s not found", name)
	return c
}

func send(c Configurator, msgs ...tea.Msg) Configurator {
	var m tea.Model = c
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m.(Configurator)
}

func TestConfiguratorToggleAndSave(t *testing.T) {
	var saved config.Config
	c := NewConfigurator(config.Default(), func(cfg config.Config) error { saved = cfg; return nil })

	c = moveTo(t, c, kindTable, "kd")
	c = send(c, key(tea.KeySpace))
	c = moveTo(t, c, kindFlag, "discord_rpc")
	c = send(c, key(tea.KeyEnter))
	c = moveTo(t, c, kindTheme, "theme")
	c = send(c, key(tea.KeyEnter))

	c = moveTo(t, c, kindPort, "port")
	c = send(c, key(tea.KeyEnter), key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2200")}, key(tea.KeyEnter))
	require.NoError(t, c.err)

	c = moveTo(t, c, kindSave, "save")
	c = send(c, key(tea.KeyEnter))
	assert.True(t, c.confirming)
	assert.True(t, saved.Table["kd"])
	assert.False(t, saved.Flags["discord_rpc"])
	assert.Equal(t, "light", saved.Theme)
	assert.Equal(t, 2200, saved.Port)

	c = send(c, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	cfg, start := c.Result()
	assert.True(t, start)
	assert.Equal(t, 2200, cfg.Port)
}

func TestConfiguratorRejectsBadPort(t *testing.T) {
	c := NewConfigurator(config.Default(), nil)
	c = moveTo(t, c, kindPort, "port")
	c = send(c, key(tea.KeyEnter), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, key(tea.KeyEnter))
	assert.Error(t, c.err)
	assert.True(t, c.editing)

	c = send(c, key(tea.KeyEsc))
	assert.False(t, c.editing)
	assert.Equal(t, 1100, c.cfg.Port)
}

func TestConfiguratorSaveError(t *testing.T) {
	c := NewConfigurator(config.Default(), func(config.Config) error { return errors.New("disk full") })
	c = moveTo(t, c, kindSave, "save")
	c = send(c, key(tea.KeyEnter))
	assert.False(t, c.confirming)
	assert.EqualError(t, c.err, "disk full")
	_, start := c.Result()
	assert.False(t, start)
}
