package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jose-valero/vry/internal/app/service"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
	"github.com/jose-valero/vry/internal/infra/logging"
)

// SnapshotMsg llega desde el worker vía Program.Send.
type SnapshotMsg domain.Snapshot

// NoticeMsg es un mensaje corto para la barra de estado.
type NoticeMsg string

// ConfigMsg llega cuando el watcher recarga config.json.
type ConfigMsg config.Config

// ChatMsg es un mensaje del chat de la partida.
type ChatMsg domain.ChatMessage

type tickMsg time.Time

const consoleHeight = 8

type Deps struct {
	Config     func() config.Config
	Settings   service.UISettings
	OnSettings func(service.UISettings)
	Refresh    func()
	Ring       *logging.Ring
}

type Model struct {
	deps     Deps
	settings service.UISettings
	styles   Styles
	snap     domain.Snapshot
	console  viewport.Model
	chat     []domain.ChatMessage
	notice   string
	width    int
	now      func() time.Time
	quitting bool
}

func NewModel(d Deps) Model {
	if d.Config == nil {
		d.Config = config.Default
	}
	m := Model{
		deps:     d,
		settings: d.Settings,
		console:  viewport.New(80, consoleHeight),
		now:      time.Now,
		width:    80,
	}
	m.styles = NewStyles(ThemeFor(m.settings.Theme, d.Config().CustomTheme))
	return m
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.console.Width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.snap = domain.Snapshot(msg)
		return m, nil

	case ConfigMsg:
		cfg := config.Config(msg)
		if cfg.Theme != "" {
			m.settings.Theme = cfg.Theme
		}
		m.styles = NewStyles(ThemeFor(m.settings.Theme, cfg.CustomTheme))
		m.trimChat(cfg.ChatLimit)
		return m, nil

	case ChatMsg:
		m.chat = append(m.chat, domain.ChatMessage(msg))
		m.trimChat(m.deps.Config().ChatLimit)
		return m, nil

	case NoticeMsg:
		m.notice = string(msg)
		return m, nil

	case tickMsg:
		m.syncConsole()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		if m.deps.Refresh != nil {
			m.deps.Refresh()
		}
		m.notice = "Refreshing..."
	case "t":
		m.settings.Theme = NextTheme(m.settings.Theme)
		m.styles = NewStyles(ThemeFor(m.settings.Theme, m.deps.Config().CustomTheme))
		m.notice = "Theme: " + m.styles.Theme.Name
		m.saveSettings()
	case "i":
		m.settings.IncognitoPrivacy = !m.settings.IncognitoPrivacy
		m.notice = fmt.Sprintf("Incognito privacy: %s", onOff(m.settings.IncognitoPrivacy))
		m.saveSettings()
	case "c":
		m.settings.ShowConsole = !m.settings.ShowConsole
		m.syncConsole()
		m.saveSettings()
	case "v":
		m.settings.Verbosity = (m.settings.Verbosity + 1) % 4
		logging.SetVerbosity(m.settings.Verbosity)
		m.notice = fmt.Sprintf("Verbosity: %d", m.settings.Verbosity)
		m.saveSettings()
	case "up", "k":
		m.console.ScrollUp(1)
	case "down", "j":
		m.console.ScrollDown(1)
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) saveSettings() {
	if m.deps.OnSettings != nil {
		m.deps.OnSettings(m.settings)
	}
}

func (m *Model) trimChat(limit int) {
	if limit < 0 {
		limit = 0
	}
	if len(m.chat) > limit {
		m.chat = append([]domain.ChatMessage(nil), m.chat[len(m.chat)-limit:]...)
	}
}

func (m *Model) syncConsole() {
	if m.deps.Ring == nil || !m.settings.ShowConsole {
		return
	}
	atBottom := m.console.AtBottom()
	m.console.SetContent(strings.Join(m.deps.Ring.Lines(), "\n"))
	if atBottom {
		m.console.GotoBottom()
	}
}

// Settings devuelve las preferencias actuales (para tests y al salir).
func (m Model) Settings() service.UISettings { return m.settings }

func (m Model) StatusLine() string { return statusLine(m.snap, m.deps.Config()) }

func statusLine(snap domain.Snapshot, cfg config.Config) string {
	if snap.State == domain.StateUnknown {
		return "Status: Waiting for VALORANT"
	}
	s := "Status: " + snap.State.Display()
	if snap.Mode != "" {
		s += " • " + snap.Mode
	}
	if snap.Map != "" {
		s += " • " + snap.Map
	}
	if snap.Server != "" && cfg.FeatureFlag("server_id") {
		s += " • " + snap.Server
	}
	return s
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Status.Render(m.StatusLine()))
	if m.notice != "" {
		b.WriteString("  " + m.styles.Muted.Render(m.notice))
	}
	b.WriteString("\n\n")

	cfg := m.deps.Config()
	if len(m.snap.Rows) > 0 {
		o := Options(cfg, m.settings.IncognitoPrivacy)
		o.Now = m.now()
		b.WriteString(RenderTable(m.snap, cfg, m.styles, o))
		b.WriteString("\n")
	}

	if len(m.chat) > 0 && cfg.FeatureFlag("game_chat") {
		b.WriteString(m.styles.Title.Render("Chat") + "\n")
		for _, c := range m.chat {
			b.WriteString(m.styles.Muted.Render(c.GameName+"#"+c.GameTag+": ") + c.Body + "\n")
		}
		b.WriteString("\n")
	}

	if m.settings.ShowConsole {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.styles.Theme.Border))
		b.WriteString(m.styles.Title.Render("Console") + "\n")
		b.WriteString(box.Render(m.console.View()) + "\n")
	}

	b.WriteString(m.styles.Footer.Render("r refresh • t theme • i incognito • c console • v verbosity • q quit"))
	return m.styles.App.Render(b.String())
}
