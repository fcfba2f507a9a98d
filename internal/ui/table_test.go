package ui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
)

func keys(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

func TestVisibleColumns(t *testing.T) {
	cfg := config.Default()
	ingame := domain.Snapshot{State: domain.StateIngame, Rows: []domain.Row{{Leader: 5}}}

	want := []string{"party", "agent", "name", "skin", "rank", "rr", "peak", "leaderboard", "hs", "wr", "level", "earned", "seen"}
	if diff := cmp.Diff(want, keys(VisibleColumns(ingame, cfg))); diff != "" {
		t.Errorf("ingame columns (-want +got):\n%s", diff)
	}

	pregame := domain.Snapshot{State: domain.StatePregame}
	got := keys(VisibleColumns(pregame, cfg))
	assert.NotContains(t, got, "skin")
	assert.NotContains(t, got, "leaderboard")
	assert.Contains(t, got, "agent")

	menus := domain.Snapshot{State: domain.StateMenus}
	got = keys(VisibleColumns(menus, cfg))
	assert.NotContains(t, got, "party")
	assert.NotContains(t, got, "agent")
	assert.NotContains(t, got, "skin")
}

func TestVisibleColumnsFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Table["kd"] = true
	cfg.Table["previousrank"] = true
	cfg.Table["skin"] = false
	cfg.Flags["aggregate_rank_rr"] = true
	cfg.Flags["auto_hide_leaderboard"] = false
	cfg.Flags["last_played"] = false

	got := keys(VisibleColumns(domain.Snapshot{State: domain.StateIngame}, cfg))
	assert.Contains(t, got, "kd")
	assert.Contains(t, got, "previous")
	assert.Contains(t, got, "leaderboard")
	assert.NotContains(t, got, "skin")
	assert.NotContains(t, got, "rr")
	assert.NotContains(t, got, "seen")
}

func TestRenderTable(t *testing.T) {
	snap := domain.Snapshot{State: domain.StateIngame, Rows: []domain.Row{
		{Name: "Me#1", IsSelf: true, Agent: "Jett", Rank: domain.RankCell{Tier: 13}},
		{Name: "Foe#2", Team: "Red", AllyTeam: "Blue", Agent: "Sage"},
	}}
	out := RenderTable(snap, config.Default(), NewStyles(Themes["dark"]), FormatOptions{Privacy: true})
	for _, want := range []string{"Name", "Me#1", "Foe#2", "Gold 2", "Jett"} {
		assert.True(t, strings.Contains(out, want), want)
	}
}
