package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/domain"
)

func TestLookupCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"lookup", "Player#EUW"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "https://vtl.lol/id/Player_EUW\n", out.String())
}

func TestLookupCommandRejectsGarbage(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"lookup", "no-tag"})
	assert.Error(t, rootCmd.Execute())
}

func TestHistoryTable(t *testing.T) {
	now := time.Unix(1700000000, 0)
	out := historyTable([]domain.Encounter{{
		MatchID: "m1", Name: "Foe#1", Agent: "Sage", Map: "Bind", Tier: 13, RR: 20,
		SeenAt: now.Add(-2 * time.Hour),
	}}, now)
	for _, want := range []string{"2 hours ago", "Foe#1", "Sage", "Bind", "Gold 2", "m1"} {
		assert.Contains(t, out, want)
	}
}
