package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jose-valero/vry/internal/domain"
)

// límite de Discord es 2000; dejamos margen para el bloque de código
const maxMessage = 1900

const embedColor = 0xFF4655

// displayName esconde a los incógnito que no son uno mismo ni la party.
func displayName(r domain.Row) string {
	if r.Incognito && !r.IsSelf && !r.IsParty {
		return "Incognito"
	}
	if r.Name == "" {
		return "?"
	}
	return r.Name
}

func rank(c domain.RankCell, short bool) string {
	name := domain.RankName(c.Tier)
	if short {
		div, num, _ := strings.Cut(name, " ")
		if div == "Unranked" {
			return "UR"
		}
		if div == "Immortal" {
			return "IM" + num
		}
		return div[:1] + num
	}
	return name
}

func header(snap domain.Snapshot) string {
	parts := []string{snap.State.Display()}
	if snap.Mode != "" {
		parts = append(parts, snap.Mode)
	}
	if snap.Map != "" {
		parts = append(parts, snap.Map)
	}
	return strings.Join(parts, " • ")
}

// LobbyBlock arma la tabla en un bloque de código para /lobby.
func LobbyBlock(snap domain.Snapshot, short bool) string {
	if snap.State == domain.StateUnknown || len(snap.Rows) == 0 {
		return "VALORANT is not running or the lobby is empty."
	}
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		Headers("Agent", "Name", "Rank", "RR", "Peak", "Lvl")
	for _, r := range snap.Rows {
		level := fmt.Sprint(r.Level)
		if r.HideLevel && !r.IsSelf && !r.IsParty {
			level = ""
		}
		t.Row(r.Agent, displayName(r), rank(r.Rank, short), fmt.Sprint(r.RR), rank(r.Peak, short), level)
	}
	body := truncate(t.Render(), maxMessage)
	return "**" + header(snap) + "**\n```\n" + body + "\n```"
}

// truncate corta s a n bytes sin partir una runa.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if r != utf8.RuneError || size != 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

func teamLines(rows []domain.Row, ally bool) string {
	var b strings.Builder
	for _, r := range rows {
		if (r.Team == r.AllyTeam) != ally {
			continue
		}
		agent := r.Agent
		if agent == "" {
			agent = "?"
		}
		fmt.Fprintf(&b, "%s · %s · %s\n", agent, displayName(r), domain.RankName(r.Rank.Tier))
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// MatchEmbed describe una partida INGAME con ambos equipos.
func MatchEmbed(snap domain.Snapshot) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Match started",
		Description: header(snap),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Allies", Value: teamLines(snap.Rows, true), Inline: true},
			{Name: "Enemies", Value: teamLines(snap.Rows, false), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "match " + snap.MatchID},
		Timestamp: snap.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
