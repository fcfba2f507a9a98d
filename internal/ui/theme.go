// Package ui es la interfaz de terminal: tabla de jugadores, consola y configurador.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme son los colores de la ventana y la tabla.
type Theme struct {
	Name       string
	Background string
	Text       string
	Border     string
	Alternate  string
	Selection  string
	Header     string
	TableBg    string
	TableText  string
	TableGrid  string
	StatusBg   string
	Accent     string
}

var Themes = map[string]Theme{
	"dark": {
		Name: "Dark", Background: "#1a1a1a", Text: "#e0e0e0", Border: "#333333", Alternate: "#252525",
		Selection: "#3d3d3d", Header: "#2b2b2b", TableBg: "#1e1e1e", TableText: "#ffffff",
		TableGrid: "#2a2a2a", StatusBg: "#007acc", Accent: "#007acc",
	},
	"light": {
		Name: "Light", Background: "#f5f5f5", Text: "#333333", Border: "#cccccc", Alternate: "#e8e8e8",
		Selection: "#d0e3ff", Header: "#e0e0e0", TableBg: "#ffffff", TableText: "#000000",
		TableGrid: "#dddddd", StatusBg: "#0078d4", Accent: "#0078d4",
	},
	"midnight": {
		Name: "Midnight", Background: "#0d1117", Text: "#c9d1d9", Border: "#30363d", Alternate: "#161b22",
		Selection: "#1f6feb", Header: "#010409", TableBg: "#0d1117", TableText: "#c9d1d9",
		TableGrid: "#21262d", StatusBg: "#1f6feb", Accent: "#58a6ff",
	},
	"valorant": {
		Name: "Valorant", Background: "#0f1923", Text: "#ffffff", Border: "#ff4655", Alternate: "#1b2838",
		Selection: "#ff4655", Header: "#111111", TableBg: "#0f1923", TableText: "#ffffff",
		TableGrid: "#ff4655", StatusBg: "#ff4655", Accent: "#ff4655",
	},
}

// ThemeOrder es el orden de la tecla t.
var ThemeOrder = []string{"dark", "light", "midnight", "valorant", "custom"}

// ThemeFor resuelve un nombre de config.json. "custom" parte de Dark y pisa
// los colores presentes en custom_theme.
func ThemeFor(name string, custom map[string]string) Theme {
	name = strings.ToLower(name)
	if t, ok := Themes[name]; ok {
		return t
	}
	t := Themes["dark"]
	if name != "custom" {
		return t
	}
	t.Name = "Custom"
	fields := map[string]*string{
		"background": &t.Background,
		"text":       &t.Text,
		"border":     &t.Border,
		"alternate":  &t.Alternate,
		"selection":  &t.Selection,
		"header":     &t.Header,
		"table_bg":   &t.TableBg,
		"table_text": &t.TableText,
		"table_grid": &t.TableGrid,
		"status_bg":  &t.StatusBg,
		"accent":     &t.Accent,
	}
	for k, v := range custom {
		if p, ok := fields[strings.ToLower(k)]; ok && strings.HasPrefix(v, "#") {
			*p = v
		}
	}
	return t
}

// NextTheme devuelve el tema que sigue a name en ThemeOrder.
func NextTheme(name string) string {
	name = strings.ToLower(name)
	for i, n := range ThemeOrder {
		if n == name {
			return ThemeOrder[(i+1)%len(ThemeOrder)]
		}
	}
	return ThemeOrder[0]
}

// Styles derivados del tema.
type Styles struct {
	Theme  Theme
	App    lipgloss.Style
	Status lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Odd    lipgloss.Style
	Border lipgloss.Style
	Muted  lipgloss.Style
	Footer lipgloss.Style
	Title  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		App: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(t.StatusBg)).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Header)).
			Foreground(lipgloss.Color(t.TableText)).
			Bold(true).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Background(lipgloss.Color(t.TableBg)).
			Foreground(lipgloss.Color(t.TableText)).
			Padding(0, 1),
		Odd: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Alternate)).
			Foreground(lipgloss.Color(t.TableText)).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TableGrid)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Border)),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Faint(true),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
	}
}
