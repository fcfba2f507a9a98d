package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jose-valero/vry/internal/domain"
)

// Cell es un texto con color opcional (hex).
type Cell struct {
	Text  string
	Color string
	Bold  bool
}

const (
	colorSelf      = "#FFD700"
	colorParty     = "#4C97ED"
	colorAlly      = "#00FF7F"
	colorEnemy     = "#FF4500"
	colorIncognito = "#800000"
	colorLocked    = "#FFFFFF"
	colorSelected  = "#808080"
	colorPicking   = "#363533"
	colorGain      = "#00FF00"
	colorLoss      = "#FF0000"
)

// partyColors se reparten por índice de icono.
var partyColors = []string{"#FF4655", "#00BFFF", "#7CFC00", "#FFA500", "#DA70D6", "#FFFF00"}

// rankColors por grupo de tiers (de a tres).
var rankColors = []string{
	"#2E2E2E", "#4F514F", "#A5855D", "#BBC2C2", "#ECCF56",
	"#59A9B6", "#B489C4", "#6AE2AF", "#BB3D65", "#FFFFAA",
}

type FormatOptions struct {
	Privacy     bool
	ShortRanks  bool
	PeakAct     bool
	AggregateRR bool
	Now         time.Time
}

func PartyCell(r domain.Row) Cell {
	if r.Party == domain.NoParty || r.Party < 0 {
		return Cell{}
	}
	return Cell{Text: "■", Color: partyColors[r.Party%len(partyColors)]}
}

// AgentCell colorea según el estado de selección en PREGAME.
func AgentCell(r domain.Row) Cell {
	c := Cell{Text: r.Agent}
	if c.Text == "" && r.AgentID != "" {
		c.Text = "Unknown agent"
	}
	switch r.AgentState {
	case "":
	case "locked":
		c.Color = colorLocked
	case "selected":
		c.Color = colorSelected
	default:
		c.Color = colorPicking
	}
	return c
}

func NameCell(r domain.Row, privacy bool) Cell {
	if r.Incognito && privacy && !r.IsSelf && !r.IsParty {
		return Cell{Text: "Incognito", Color: colorIncognito, Bold: true}
	}
	c := Cell{Text: r.Name}
	if r.Incognito && !privacy {
		c.Text = "*" + r.Name
	}
	switch {
	case r.IsSelf:
		c.Color = colorSelf
	case r.IsParty:
		c.Color = colorParty
	case r.Team != "" && r.AllyTeam != "":
		if r.Team == r.AllyTeam {
			c.Color = colorAlly
		} else {
			c.Color = colorEnemy
		}
	}
	return c
}

func SkinCell(r domain.Row) Cell {
	return Cell{Text: r.Skin, Color: r.SkinColor}
}

// RankLabel: "Gold 2 E9A1"; sin acto conocido o unranked sólo el nombre.
func RankLabel(c domain.RankCell, short, withAct bool) string {
	name := domain.RankName(c.Tier)
	if short {
		name = shortRank(c.Tier)
	}
	if c.Tier < 3 || !withAct || !c.When.Known() {
		return name
	}
	return fmt.Sprintf("%s E%dA%d", name, c.When.Episode, c.When.Act)
}

var shortDivisions = map[string]string{
	"Unranked": "UR", "Iron": "I", "Bronze": "B", "Silver": "S", "Gold": "G", "Platinum": "P",
	"Diamond": "D", "Ascendant": "A", "Immortal": "IM", "Radiant": "R",
}

func shortRank(tier int) string {
	name := domain.RankName(tier)
	div, num, _ := strings.Cut(name, " ")
	return shortDivisions[div] + num
}

func rankColor(tier int) string {
	if tier < 3 {
		return rankColors[0]
	}
	i := tier / 3
	if i >= len(rankColors) {
		i = len(rankColors) - 1
	}
	return rankColors[i]
}

func RankCell(r domain.Row, o FormatOptions) Cell {
	text := RankLabel(r.Rank, o.ShortRanks, true)
	if o.AggregateRR && r.Rank.Tier >= 3 {
		text = fmt.Sprintf("%s (%d)", text, r.RR)
	}
	return Cell{Text: text, Color: rankColor(r.Rank.Tier)}
}

func PeakCell(r domain.Row, o FormatOptions) Cell {
	return Cell{Text: RankLabel(r.Peak, o.ShortRanks, o.PeakAct), Color: rankColor(r.Peak.Tier)}
}

func PreviousCell(r domain.Row, o FormatOptions) Cell {
	return Cell{Text: RankLabel(r.Previous, o.ShortRanks, true), Color: rankColor(r.Previous.Tier)}
}

func RRCell(r domain.Row) Cell { return Cell{Text: fmt.Sprint(r.RR)} }

// LeaderCell queda vacío sin posición.
func LeaderCell(r domain.Row) Cell {
	if r.Leader <= 0 {
		return Cell{}
	}
	return Cell{Text: fmt.Sprint(r.Leader)}
}

func HSCell(r domain.Row) Cell {
	if r.HS == nil {
		return Cell{Text: "N/A"}
	}
	return Cell{Text: fmt.Sprintf("%.1f%%", *r.HS)}
}

func WRCell(r domain.Row) Cell {
	if r.WinRate == nil {
		return Cell{Text: fmt.Sprintf("N/A (%d)", r.Games)}
	}
	return Cell{Text: fmt.Sprintf("%d%% (%d)", *r.WinRate, r.Games)}
}

func KDCell(r domain.Row) Cell {
	if r.KD == nil {
		return Cell{Text: "N/A"}
	}
	return Cell{Text: fmt.Sprintf("%.2f", *r.KD)}
}

// LevelCell oculta el nivel de quien lo esconde, salvo uno mismo y la party.
func LevelCell(r domain.Row) Cell {
	if r.HideLevel && !r.IsSelf && !r.IsParty {
		return Cell{}
	}
	return Cell{Text: fmt.Sprint(r.Level)}
}

func EarnedCell(r domain.Row) Cell {
	if r.EarnedRR == nil || r.AFKPenalty == nil {
		return Cell{}
	}
	c := Cell{Text: fmt.Sprintf("%+d", *r.EarnedRR)}
	if *r.AFKPenalty != 0 {
		c.Text += fmt.Sprintf(" (%d)", *r.AFKPenalty)
	}
	switch {
	case *r.EarnedRR > 0:
		c.Color = colorGain
	case *r.EarnedRR < 0:
		c.Color = colorLoss
	}
	return c
}

// SeenCell: "3 days ago (Ascent)".
func SeenCell(r domain.Row, now time.Time) Cell {
	if r.LastSeen == nil {
		return Cell{}
	}
	text := humanize.RelTime(r.LastSeen.SeenAt, now, "ago", "from now")
	if r.LastSeen.Map != "" {
		text += " (" + r.LastSeen.Map + ")"
	}
	return Cell{Text: text}
}
