package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
)

// Column es una columna de la tabla; Flag es la clave en config.table.
type Column struct {
	Key    string
	Title  string
	Flag   string
	Render func(domain.Row, FormatOptions) Cell
}

var Columns = []Column{
	{Key: "party", Title: "Party", Render: func(r domain.Row, _ FormatOptions) Cell { return PartyCell(r) }},
	{Key: "agent", Title: "Agent", Render: func(r domain.Row, _ FormatOptions) Cell { return AgentCell(r) }},
	{Key: "name", Title: "Name", Render: func(r domain.Row, o FormatOptions) Cell { return NameCell(r, o.Privacy) }},
	{Key: "skin", Title: "Skin", Flag: "skin", Render: func(r domain.Row, _ FormatOptions) Cell { return SkinCell(r) }},
	{Key: "rank", Title: "Rank", Render: RankCell},
	{Key: "rr", Title: "RR", Flag: "rr", Render: func(r domain.Row, _ FormatOptions) Cell { return RRCell(r) }},
	{Key: "peak", Title: "Peak Rank", Flag: "peakrank", Render: PeakCell},
	{Key: "previous", Title: "Prev. Rank", Flag: "previousrank", Render: PreviousCell},
	{Key: "leaderboard", Title: "Pos.", Flag: "leaderboard", Render: func(r domain.Row, _ FormatOptions) Cell { return LeaderCell(r) }},
	{Key: "hs", Title: "HS%", Flag: "headshot_percent", Render: func(r domain.Row, _ FormatOptions) Cell { return HSCell(r) }},
	{Key: "wr", Title: "WR%", Flag: "winrate", Render: func(r domain.Row, _ FormatOptions) Cell { return WRCell(r) }},
	{Key: "kd", Title: "K/D", Flag: "kd", Render: func(r domain.Row, _ FormatOptions) Cell { return KDCell(r) }},
	{Key: "level", Title: "Level", Flag: "level", Render: func(r domain.Row, _ FormatOptions) Cell { return LevelCell(r) }},
	{Key: "earned", Title: "ΔRR", Flag: "earned_rr", Render: func(r domain.Row, _ FormatOptions) Cell { return EarnedCell(r) }},
	{Key: "seen", Title: "Seen", Render: func(r domain.Row, o FormatOptions) Cell { return SeenCell(r, o.Now) }},
}

// VisibleColumns aplica estado, flags de tabla y flags de features.
func VisibleColumns(snap domain.Snapshot, cfg config.Config) []Column {
	var out []Column
	for _, c := range Columns {
		if c.Flag != "" && !cfg.TableFlag(c.Flag) {
			continue
		}
		switch c.Key {
		case "party", "agent":
			if snap.State == domain.StateMenus {
				continue
			}
		case "skin":
			if snap.State == domain.StateMenus || snap.State == domain.StatePregame {
				continue
			}
		case "rr":
			if cfg.FeatureFlag("aggregate_rank_rr") {
				continue
			}
		case "leaderboard":
			if cfg.FeatureFlag("auto_hide_leaderboard") && !anyLeader(snap.Rows) {
				continue
			}
		case "seen":
			if !cfg.FeatureFlag("last_played") {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func anyLeader(rows []domain.Row) bool {
	for _, r := range rows {
		if r.Leader > 0 {
			return true
		}
	}
	return false
}

func Options(cfg config.Config, privacy bool) FormatOptions {
	return FormatOptions{
		Privacy:     privacy,
		ShortRanks:  cfg.FeatureFlag("short_ranks"),
		PeakAct:     cfg.FeatureFlag("peak_rank_act"),
		AggregateRR: cfg.FeatureFlag("aggregate_rank_rr"),
	}
}

// Cells devuelve los encabezados y las celdas ya formateadas.
func Cells(snap domain.Snapshot, cols []Column, o FormatOptions) ([]string, [][]Cell) {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}
	rows := make([][]Cell, len(snap.Rows))
	for i, r := range snap.Rows {
		rows[i] = make([]Cell, len(cols))
		for j, c := range cols {
			rows[i][j] = c.Render(r, o)
		}
	}
	return headers, rows
}

// RenderTable dibuja la snapshot con lipgloss/table.
func RenderTable(snap domain.Snapshot, cfg config.Config, st Styles, o FormatOptions) string {
	cols := VisibleColumns(snap, cfg)
	headers, cells := Cells(snap, cols, o)

	text := make([][]string, len(cells))
	for i, row := range cells {
		text[i] = make([]string, len(row))
		for j, c := range row {
			text[i][j] = c.Text
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(text...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			base := st.Cell
			if row%2 == 1 {
				base = st.Odd
			}
			if row < 0 || row >= len(cells) || col >= len(cells[row]) {
				return base
			}
			c := cells[row][col]
			if c.Color != "" {
				base = base.Foreground(lipgloss.Color(c.Color))
			}
			if c.Bold {
				base = base.Bold(true)
			}
			return base
		})
	return t.Render()
}
