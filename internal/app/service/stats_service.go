package service

import (
	"context"
	"errors"
	"math"

	"github.com/jose-valero/vry/internal/adapters/riot"
)

type StatsOptions struct {
	HS       bool
	KD       bool
	EarnedRR bool
}

func (o StatsOptions) any() bool { return o.HS || o.KD || o.EarnedRR }

// PlayerStats: nil significa N/A.
type PlayerStats struct {
	HS         *float64
	KD         *float64
	EarnedRR   *int
	AFKPenalty *int
}

type PlayerStatsService struct {
	api StatsAPI
}

func NewPlayerStatsService(api StatsAPI) *PlayerStatsService {
	return &PlayerStatsService{api: api}
}

// Stats mira la última partida competitiva del jugador.
func (s *PlayerStatsService) Stats(ctx context.Context, puuid string, opts StatsOptions) (PlayerStats, error) {
	var out PlayerStats
	if !opts.any() {
		return out, nil
	}
	cu, err := s.api.CompetitiveUpdates(ctx, puuid, 0, 1, "competitive")
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return out, nil
		}
		return out, err
	}
	if len(cu.Matches) == 0 {
		return out, nil
	}
	last := cu.Matches[0]
	if opts.EarnedRR {
		earned, afk := last.RankedRatingEarned, last.AFKPenalty
		out.EarnedRR, out.AFKPenalty = &earned, &afk
	}
	if !opts.HS && !opts.KD {
		return out, nil
	}
	md, err := s.api.MatchDetails(ctx, last.MatchID)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return out, nil
		}
		return out, err
	}
	hs, kd := MatchStats(md, puuid)
	if opts.HS {
		out.HS = hs
	}
	if opts.KD {
		out.KD = kd
	}
	return out, nil
}

// MatchStats calcula HS% sobre todos los impactos y K/D a dos decimales.
func MatchStats(md riot.MatchDetails, puuid string) (hs, kd *float64) {
	var head, body, leg int
	for _, round := range md.RoundResults {
		for _, ps := range round.PlayerStats {
			if ps.Subject != puuid {
				continue
			}
			for _, d := range ps.Damage {
				head += d.Headshots
				body += d.Bodyshots
				leg += d.Legshots
			}
		}
	}
	if total := head + body + leg; total > 0 {
		v := math.Round(float64(head)/float64(total)*1000) / 10
		hs = &v
	}

	for _, p := range md.Players {
		if p.Subject != puuid || p.Stats == nil {
			continue
		}
		v := float64(p.Stats.Kills)
		if p.Stats.Deaths > 0 {
			v = math.Round(float64(p.Stats.Kills)/float64(p.Stats.Deaths)*100) / 100
		}
		kd = &v
		break
	}
	return hs, kd
}
