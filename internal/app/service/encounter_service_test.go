package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/storage"
)

func TestEncounterRecordAndLastSeen(t *testing.T) {
	ctx := context.Background()
	repo := &memEncounters{}
	s := NewEncounterService(repo)
	base := time.Unix(1700000000, 0)
	s.now = func() time.Time { return base }

	rows := []domain.Row{
		{PUUID: "me", IsSelf: true},
		{PUUID: "foe", Name: "Foe#1", Agent: "Jett", Rank: domain.RankCell{Tier: 14}, RR: 55},
	}
	require.NoError(t, s.Record(ctx, "m1", "Ascent", rows))
	require.Len(t, repo.rows, 1)
	assert.Equal(t, storage.EncounterRow{
		PUUID: "foe", MatchID: "m1", Name: "Foe#1", Agent: "Jett", Map: "Ascent", Rank: 14, RR: 55, SeenAt: base,
	}, repo.rows[0])

	seen, err := s.LastSeen(ctx, []string{"foe"}, "m2")
	require.NoError(t, err)
	require.Contains(t, seen, "foe")
	assert.Equal(t, "Ascent", seen["foe"].Map)
	assert.Equal(t, 14, seen["foe"].Tier)

	seen, err = s.LastSeen(ctx, []string{"foe"}, "m1")
	require.NoError(t, err)
	assert.Empty(t, seen)

	require.NoError(t, s.Record(ctx, "", "Ascent", rows))
	assert.Len(t, repo.rows, 1)
}

func TestEncounterHistoryAndPrune(t *testing.T) {
	ctx := context.Background()
	repo := &memEncounters{}
	s := NewEncounterService(repo)
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	for i, age := range []time.Duration{time.Hour, 40 * 24 * time.Hour, 2 * time.Hour} {
		require.NoError(t, repo.Upsert(ctx, storage.EncounterRow{
			PUUID: "foe", MatchID: string(rune('a' + i)), SeenAt: now.Add(-age),
		}))
	}

	hist, err := s.History(ctx, "foe", 2)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "a", hist[0].MatchID)
	assert.Equal(t, "c", hist[1].MatchID)

	n, err := s.Prune(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, repo.rows, 2)
}
