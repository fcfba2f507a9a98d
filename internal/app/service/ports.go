package service

import (
	"context"
	"time"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/infra/storage"
)

// Lo implementa internal/adapters/riot.Client
type SeasonAPI interface {
	Seasons(ctx context.Context) ([]riot.Season, error)
}

type MMRAPI interface {
	MMR(ctx context.Context, puuid string) (riot.MMR, error)
}

type StatsAPI interface {
	CompetitiveUpdates(ctx context.Context, puuid string, start, end int, queue string) (riot.CompetitiveUpdates, error)
	MatchDetails(ctx context.Context, matchID string) (riot.MatchDetails, error)
}

type MatchAPI interface {
	PregameMatchID(ctx context.Context, puuid string) (string, error)
	PregameMatch(ctx context.Context, matchID string) (riot.PregameMatch, error)
	PregameLoadouts(ctx context.Context, matchID string) (riot.PregameLoadouts, error)
	CoregameMatchID(ctx context.Context, puuid string) (string, error)
	CoregameMatch(ctx context.Context, matchID string) (riot.CoregameMatch, error)
	CoregameLoadouts(ctx context.Context, matchID string) (riot.CoregameLoadouts, error)
	Names(ctx context.Context, puuids []string) (map[string]string, error)
}

// Lo implementa internal/infra/storage.EncounterRepo
type EncounterRepo interface {
	Upsert(ctx context.Context, e storage.EncounterRow) error
	LastSeen(ctx context.Context, puuids []string, excludeMatch string) (map[string]storage.EncounterRow, error)
	History(ctx context.Context, puuid string, limit int) ([]storage.EncounterRow, error)
	PruneBefore(ctx context.Context, t time.Time) (int64, error)
}

// Lo implementa internal/infra/storage.SettingsRepo
type SettingsRepo interface {
	Get(ctx context.Context, key string) (storage.Setting, error)
	Upsert(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
