package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jose-valero/vry/internal/infra/config"
)

type itemKind int

const (
	kindFlag itemKind = iota
	kindTable
	kindPort
	kindWeapon
	kindTheme
	kindSave
)

type configItem struct {
	kind itemKind
	key  string
}

// Configurator edita config.json antes de arrancar (--config).
type Configurator struct {
	cfg        config.Config
	items      []configItem
	cursor     int
	editing    bool
	confirming bool
	input      textinput.Model
	save       func(config.Config) error
	styles     Styles

	err     error
	saved   bool
	started bool
}

func NewConfigurator(cfg config.Config, save func(config.Config) error) Configurator {
	cfg = cfg.Clone()
	c := Configurator{
		cfg:    cfg,
		save:   save,
		input:  textinput.New(),
		styles: NewStyles(ThemeFor(cfg.Theme, cfg.CustomTheme)),
	}
	for _, k := range sortedKeys(cfg.Table) {
		c.items = append(c.items, configItem{kind: kindTable, key: k})
	}
	for _, k := range sortedKeys(cfg.Flags) {
		c.items = append(c.items, configItem{kind: kindFlag, key: k})
	}
	c.items = append(c.items,
		configItem{kind: kindPort, key: "port"},
		configItem{kind: kindWeapon, key: "weapon"},
		configItem{kind: kindTheme, key: "theme"},
		configItem{kind: kindSave, key: "save"},
	)
	return c
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Result: la config editada y si el usuario eligió arrancar.
func (c Configurator) Result() (config.Config, bool) { return c.cfg, c.started }

func (c Configurator) Init() tea.Cmd { return nil }

func (c Configurator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if c.editing {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}
		return c, nil
	}
	if key.String() == "ctrl+c" {
		return c, tea.Quit
	}
	switch {
	case c.confirming:
		return c.updateConfirm(key)
	case c.editing:
		return c.updateEditing(key)
	}

	switch key.String() {
	case "q", "esc":
		return c, tea.Quit
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.items)-1 {
			c.cursor++
		}
	case " ", "enter":
		return c.activate()
	}
	return c, nil
}

func (c Configurator) activate() (tea.Model, tea.Cmd) {
	it := c.items[c.cursor]
	switch it.kind {
	case kindTable:
		c.cfg.Table[it.key] = !c.cfg.Table[it.key]
	case kindFlag:
		c.cfg.Flags[it.key] = !c.cfg.Flags[it.key]
	case kindTheme:
		c.cfg.Theme = NextTheme(c.cfg.Theme)
		c.styles = NewStyles(ThemeFor(c.cfg.Theme, c.cfg.CustomTheme))
	case kindPort:
		c.editing = true
		c.input.SetValue(strconv.Itoa(c.cfg.Port))
		c.input.CursorEnd()
		cmd := c.input.Focus()
		return c, cmd
	case kindWeapon:
		c.editing = true
		c.input.SetValue(c.cfg.Weapon)
		c.input.CursorEnd()
		cmd := c.input.Focus()
		return c, cmd
	case kindSave:
		c.err = nil
		if c.save != nil {
			c.err = c.save(c.cfg)
		}
		if c.err == nil {
			c.saved, c.confirming = true, true
		}
	}
	return c, nil
}

func (c Configurator) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		c.editing = false
		c.input.Blur()
		return c, nil
	case "enter":
		c.err = c.commit(strings.TrimSpace(c.input.Value()))
		if c.err == nil {
			c.editing = false
			c.input.Blur()
		}
		return c, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(key)
	return c, cmd
}

func (c *Configurator) commit(v string) error {
	switch c.items[c.cursor].kind {
	case kindPort:
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("invalid port %q", v)
		}
		c.cfg.Port = p
	case kindWeapon:
		if v == "" {
			return fmt.Errorf("weapon cannot be empty")
		}
		c.cfg.Weapon = v
	}
	return nil
}

func (c Configurator) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(key.String()) {
	case "y", "enter":
		c.started = true
		return c, tea.Quit
	case "n", "q", "esc":
		return c, tea.Quit
	}
	return c, nil
}

func (c Configurator) label(it configItem) string {
	switch it.kind {
	case kindTable:
		return fmt.Sprintf("[%s] table.%s", check(c.cfg.Table[it.key]), it.key)
	case kindFlag:
		return fmt.Sprintf("[%s] flags.%s", check(c.cfg.Flags[it.key]), it.key)
	case kindPort:
		return fmt.Sprintf("port: %d", c.cfg.Port)
	case kindWeapon:
		return fmt.Sprintf("weapon: %s", c.cfg.Weapon)
	case kindTheme:
		return fmt.Sprintf("theme: %s", c.cfg.Theme)
	}
	return "Save"
}

func check(b bool) string {
	if b {
		return "x"
	}
	return " "
}

func (c Configurator) View() string {
	var b strings.Builder
	b.WriteString(c.styles.Title.Render("vry configuration") + "\n\n")
	for i, it := range c.items {
		cursor := "  "
		if i == c.cursor {
			cursor = "> "
		}
		line := cursor + c.label(it)
		if i == c.cursor && c.editing {
			line = cursor + it.key + ": " + c.input.View()
		}
		b.WriteString(line + "\n")
	}
	if c.err != nil {
		b.WriteString("\n" + c.styles.Status.Render(c.err.Error()) + "\n")
	}
	if c.confirming {
		b.WriteString("\nSaved. Start vry now? (y/n)\n")
	}
	b.WriteString("\n" + c.styles.Footer.Render("↑/↓ move • space toggle • enter edit • q quit"))
	return b.String()
}
