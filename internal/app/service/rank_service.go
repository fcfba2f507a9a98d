package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/cache"
	"github.com/rs/zerolog/log"
)

const mmrTTL = 30 * time.Minute

type RankService struct {
	api     MMRAPI
	seasons *SeasonService
	cache   cache.Store
}

func NewRankService(api MMRAPI, seasons *SeasonService, store cache.Store) *RankService {
	return &RankService{api: api, seasons: seasons, cache: store}
}

// mmr pega a la API una vez por jugador hasta el próximo Invalidate.
func (s *RankService) mmr(ctx context.Context, puuid string) (riot.MMR, error) {
	key := "mmr:" + puuid
	if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var m riot.MMR
		if err := json.Unmarshal(b, &m); err == nil {
			return m, nil
		}
	}
	m, err := s.api.MMR(ctx, puuid)
	if err != nil {
		return riot.MMR{}, err
	}
	if b, err := json.Marshal(m); err == nil {
		if err := s.cache.Set(ctx, key, b, mmrTTL); err != nil {
			log.Debug().Err(err).Msg("mmr cache set")
		}
	}
	return m, nil
}

// Rank nunca falla: sin MMR devuelve OK=false y todo en cero.
func (s *RankService) Rank(ctx context.Context, puuid, seasonID string) domain.RankInfo {
	m, err := s.mmr(ctx, puuid)
	if err != nil {
		log.Error().Err(err).Str("puuid", puuid).Msg("mmr")
		return domain.RankInfo{}
	}
	info := ComputeRank(m, seasonID, s.seasons.BeforeAscendant)
	info.Peak = s.seasons.ActEpisode(info.PeakSeason)
	return info
}

func (s *RankService) Invalidate(ctx context.Context) {
	if err := s.cache.Flush(ctx); err != nil {
		log.Error().Err(err).Msg("rank cache flush")
	}
}

// ComputeRank aplica las reglas de tier, leaderboard, peak y win rate.
func ComputeRank(m riot.MMR, seasonID string, beforeAscendant func(string) bool) domain.RankInfo {
	info := domain.RankInfo{OK: true}
	comp, ok := m.QueueSkills["competitive"]
	if !ok {
		return info
	}

	if si, ok := comp.SeasonalInfoBySeasonID[seasonID]; ok {
		switch tier := si.CompetitiveTier; {
		case tier >= domain.TierAscendant1:
			info.Tier, info.RR, info.Leaderboard = tier, si.RankedRating, si.LeaderboardRank
		case tier > 2:
			info.Tier, info.RR = tier, si.RankedRating
		}
		info.Games = si.NumberOfGames
		if si.NumberOfGames > 0 {
			wr := si.NumberOfWinsWithPlacements * 100 / si.NumberOfGames
			info.WinRate = &wr
		}
	}

	for sid, si := range comp.SeasonalInfoBySeasonID {
		for k := range si.WinsByTier {
			t, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			if beforeAscendant != nil && beforeAscendant(sid) && t > 20 {
				t += 3
			}
			if t > info.PeakTier || (t == info.PeakTier && sid < info.PeakSeason) {
				info.PeakTier, info.PeakSeason = t, sid
			}
		}
	}
	if info.PeakTier > domain.TierRadiant {
		info.PeakTier = domain.TierRadiant
	}
	return info
}
