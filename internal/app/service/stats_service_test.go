package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/adapters/riot"
)

const statsMatch = `{
	"players":[
		{"subject":"p1","stats":{"kills":20,"deaths":7}},
		{"subject":"p2","stats":{"kills":5,"deaths":0}}
	],
	"roundResults":[
		{"playerStats":[{"subject":"p1","damage":[{"headshots":3,"bodyshots":5,"legshots":1}]}]},
		{"playerStats":[{"subject":"p1","damage":[{"headshots":1,"bodyshots":2,"legshots":0}]},
		                {"subject":"p2","damage":[]}]}
	]
}`

func TestMatchStats(t *testing.T) {
	md := decode[riot.MatchDetails](t, statsMatch)

	hs, kd := MatchStats(md, "p1")
	require.NotNil(t, hs)
	require.NotNil(t, kd)
	assert.InDelta(t, 33.3, *hs, 1e-9)
	assert.InDelta(t, 2.86, *kd, 1e-9)

	hs, kd = MatchStats(md, "p2")
	assert.Nil(t, hs)
	require.NotNil(t, kd)
	assert.InDelta(t, 5.0, *kd, 1e-9)

	hs, kd = MatchStats(md, "nobody")
	assert.Nil(t, hs)
	assert.Nil(t, kd)
}

func newStatsAPI(t *testing.T) fakeStats {
	return fakeStats{
		updates: map[string]riot.CompetitiveUpdates{
			"p1": {Matches: []riot.CompetitiveUpdate{{MatchID: "m1", RankedRatingEarned: -18, AFKPenalty: -3}}},
			"p3": {},
		},
		details: map[string]riot.MatchDetails{"m1": decode[riot.MatchDetails](t, statsMatch)},
	}
}

func TestPlayerStats(t *testing.T) {
	s := NewPlayerStatsService(newStatsAPI(t))
	ctx := context.Background()

	st, err := s.Stats(ctx, "p1", StatsOptions{HS: true, KD: true, EarnedRR: true})
	require.NoError(t, err)
	require.NotNil(t, st.EarnedRR)
	assert.Equal(t, -18, *st.EarnedRR)
	assert.Equal(t, -3, *st.AFKPenalty)
	assert.NotNil(t, st.HS)
	assert.NotNil(t, st.KD)

	st, err = s.Stats(ctx, "p1", StatsOptions{EarnedRR: true})
	require.NoError(t, err)
	assert.Nil(t, st.HS)
	assert.Nil(t, st.KD)
}

func TestPlayerStatsMissingData(t *testing.T) {
	s := NewPlayerStatsService(newStatsAPI(t))
	ctx := context.Background()

	for _, puuid := range []string{"p3", "unknown"} {
		st, err := s.Stats(ctx, puuid, StatsOptions{HS: true, KD: true, EarnedRR: true})
		require.NoError(t, err)
		assert.Equal(t, PlayerStats{}, st)
	}

	st, err := s.Stats(ctx, "p1", StatsOptions{})
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{}, st)
}
