package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/storage"
)

type EncounterService struct {
	repo EncounterRepo
	now  func() time.Time
}

func NewEncounterService(repo EncounterRepo) *EncounterService {
	return &EncounterService{repo: repo, now: time.Now}
}

// Record guarda a todos los jugadores de la partida menos a uno mismo.
func (s *EncounterService) Record(ctx context.Context, matchID, mapName string, rows []domain.Row) error {
	if matchID == "" {
		return nil
	}
	now := s.now()
	for _, r := range rows {
		if r.IsSelf {
			continue
		}
		err := s.repo.Upsert(ctx, storage.EncounterRow{
			PUUID:   r.PUUID,
			MatchID: matchID,
			Name:    r.Name,
			Agent:   r.Agent,
			Map:     mapName,
			Rank:    r.Rank.Tier,
			RR:      r.RR,
			SeenAt:  now,
		})
		if err != nil {
			return fmt.Errorf("record encounter %s: %w", r.PUUID, err)
		}
	}
	return nil
}

// LastSeen devuelve la última partida (distinta de la actual) de cada puuid.
func (s *EncounterService) LastSeen(ctx context.Context, puuids []string, currentMatch string) (map[string]*domain.Encounter, error) {
	rows, err := s.repo.LastSeen(ctx, puuids, currentMatch)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Encounter, len(rows))
	for puuid, r := range rows {
		e := toEncounter(r)
		out[puuid] = &e
	}
	return out, nil
}

func (s *EncounterService) History(ctx context.Context, puuid string, limit int) ([]domain.Encounter, error) {
	rows, err := s.repo.History(ctx, puuid, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Encounter, 0, len(rows))
	for _, r := range rows {
		out = append(out, toEncounter(r))
	}
	return out, nil
}

// Prune borra lo más viejo que maxAge.
func (s *EncounterService) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.repo.PruneBefore(ctx, s.now().Add(-maxAge))
}

func toEncounter(r storage.EncounterRow) domain.Encounter {
	return domain.Encounter{
		PUUID:   r.PUUID,
		MatchID: r.MatchID,
		Name:    r.Name,
		Agent:   r.Agent,
		Map:     r.Map,
		Tier:    r.Rank,
		RR:      r.RR,
		SeenAt:  r.SeenAt,
	}
}
