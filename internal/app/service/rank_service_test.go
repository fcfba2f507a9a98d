package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/infra/cache"
)

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func mmrWith(t *testing.T, seasons string) riot.MMR {
	return decode[riot.MMR](t, `{"QueueSkills":{"competitive":{"SeasonalInfoBySeasonID":`+seasons+`}}}`)
}

func TestComputeRankCurrentSeason(t *testing.T) {
	tests := []struct {
		name       string
		tier       int
		wantTier   int
		wantRR     int
		wantLeader int
	}{
		{"unranked", 2, 0, 0, 0},
		{"gold keeps rr", 13, 13, 45, 0},
		{"ascendant keeps position", 21, 21, 45, 310},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mmrWith(t, `{"cur":{"CompetitiveTier":`+itoa(tt.tier)+`,"RankedRating":45,"LeaderboardRank":310,
				"NumberOfWinsWithPlacements":7,"NumberOfGames":9}}`)
			info := ComputeRank(m, "cur", nil)
			assert.True(t, info.OK)
			assert.Equal(t, tt.wantTier, info.Tier)
			assert.Equal(t, tt.wantRR, info.RR)
			assert.Equal(t, tt.wantLeader, info.Leaderboard)
			require.NotNil(t, info.WinRate)
			assert.Equal(t, 77, *info.WinRate)
			assert.Equal(t, 9, info.Games)
		})
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestComputeRankWinRate(t *testing.T) {
	tests := []struct {
		wins, games, want int
	}{
		{29, 50, 58},
		{29, 100, 29},
		{57, 100, 57},
		{7, 9, 77},
		{1, 3, 33},
		{10, 10, 100},
	}
	for _, tt := range tests {
		m := mmrWith(t, `{"cur":{"CompetitiveTier":10,"NumberOfWinsWithPlacements":`+itoa(tt.wins)+`,"NumberOfGames":`+itoa(tt.games)+`}}`)
		info := ComputeRank(m, "cur", nil)
		require.NotNil(t, info.WinRate)
		assert.Equal(t, tt.want, *info.WinRate, "%d/%d", tt.wins, tt.games)
	}
}

func TestComputeRankWinRateAbsentWithoutGames(t *testing.T) {
	info := ComputeRank(mmrWith(t, `{"cur":{"CompetitiveTier":10,"NumberOfGames":0}}`), "cur", nil)
	assert.Nil(t, info.WinRate)
	assert.Zero(t, info.Games)
}

func TestComputeRankPeak(t *testing.T) {
	m := mmrWith(t, `{
		"old":{"WinsByTier":{"19":3,"22":1}},
		"new":{"WinsByTier":{"23":2,"12":4}}
	}`)

	info := ComputeRank(m, "new", func(id string) bool { return id == "old" })
	assert.Equal(t, 25, info.PeakTier)
	assert.Equal(t, "old", info.PeakSeason)

	info = ComputeRank(m, "new", nil)
	assert.Equal(t, 23, info.PeakTier)
	assert.Equal(t, "new", info.PeakSeason)
}

func TestComputeRankPeakCappedAtRadiant(t *testing.T) {
	m := mmrWith(t, `{"old":{"WinsByTier":{"26":1}}}`)
	info := ComputeRank(m, "x", func(string) bool { return true })
	assert.Equal(t, 27, info.PeakTier)
}

func TestComputeRankNoCompetitiveQueue(t *testing.T) {
	info := ComputeRank(riot.MMR{}, "cur", nil)
	assert.True(t, info.OK)
	assert.Zero(t, info.Tier)
	assert.Zero(t, info.PeakTier)
}

func TestRankServiceCachesUntilInvalidate(t *testing.T) {
	ctx := context.Background()
	api := &fakeMMR{mmr: map[string]riot.MMR{"p1": mmrWith(t, `{"cur":{"CompetitiveTier":15,"RankedRating":10}}`)}}
	seasons := NewSeasonService(fakeSeasons{})
	s := NewRankService(api, seasons, cache.NewMemory())

	info := s.Rank(ctx, "p1", "cur")
	assert.Equal(t, 15, info.Tier)
	s.Rank(ctx, "p1", "cur")
	assert.Equal(t, 1, api.calls)

	s.Invalidate(ctx)
	s.Rank(ctx, "p1", "cur")
	assert.Equal(t, 2, api.calls)
}

func TestRankServiceMissingPlayer(t *testing.T) {
	s := NewRankService(&fakeMMR{}, NewSeasonService(fakeSeasons{}), cache.NewMemory())
	info := s.Rank(context.Background(), "ghost", "cur")
	assert.False(t, info.OK)
	assert.Zero(t, info.Tier)
}
