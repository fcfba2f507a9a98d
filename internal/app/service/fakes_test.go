package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/infra/storage"
)

type fakeSeasons struct {
	seasons []riot.Season
	err     error
}

func (f fakeSeasons) Seasons(context.Context) ([]riot.Season, error) { return f.seasons, f.err }

type fakeMMR struct {
	mu    sync.Mutex
	calls int
	mmr   map[string]riot.MMR
}

func (f *fakeMMR) MMR(_ context.Context, puuid string) (riot.MMR, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	m, ok := f.mmr[puuid]
	if !ok {
		return riot.MMR{}, riot.ErrNotFound
	}
	return m, nil
}

type fakeStats struct {
	updates map[string]riot.CompetitiveUpdates
	details map[string]riot.MatchDetails
}

func (f fakeStats) CompetitiveUpdates(_ context.Context, puuid string, _, _ int, _ string) (riot.CompetitiveUpdates, error) {
	cu, ok := f.updates[puuid]
	if !ok {
		return riot.CompetitiveUpdates{}, riot.ErrNotFound
	}
	return cu, nil
}

func (f fakeStats) MatchDetails(_ context.Context, matchID string) (riot.MatchDetails, error) {
	md, ok := f.details[matchID]
	if !ok {
		return riot.MatchDetails{}, riot.ErrNotFound
	}
	return md, nil
}

type fakeMatch struct {
	pregameID  string
	pregame    riot.PregameMatch
	preLoad    riot.PregameLoadouts
	coreID     string
	core       riot.CoregameMatch
	coreLoad   riot.CoregameLoadouts
	loadoutErr error
	names      map[string]string
}

func (f fakeMatch) PregameMatchID(context.Context, string) (string, error) {
	if f.pregameID == "" {
		return "", riot.ErrNotFound
	}
	return f.pregameID, nil
}
func (f fakeMatch) PregameMatch(context.Context, string) (riot.PregameMatch, error) {
	return f.pregame, nil
}
func (f fakeMatch) PregameLoadouts(context.Context, string) (riot.PregameLoadouts, error) {
	return f.preLoad, f.loadoutErr
}
func (f fakeMatch) CoregameMatchID(context.Context, string) (string, error) {
	if f.coreID == "" {
		return "", riot.ErrNotFound
	}
	return f.coreID, nil
}
func (f fakeMatch) CoregameMatch(context.Context, string) (riot.CoregameMatch, error) {
	return f.core, nil
}
func (f fakeMatch) CoregameLoadouts(context.Context, string) (riot.CoregameLoadouts, error) {
	return f.coreLoad, f.loadoutErr
}
func (f fakeMatch) Names(_ context.Context, puuids []string) (map[string]string, error) {
	out := map[string]string{}
	for _, p := range puuids {
		if n, ok := f.names[p]; ok {
			out[p] = n
		}
	}
	return out, nil
}

type memEncounters struct {
	mu   sync.Mutex
	rows []storage.EncounterRow
}

func (m *memEncounters) Upsert(_ context.Context, e storage.EncounterRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.PUUID == e.PUUID && r.MatchID == e.MatchID {
			m.rows[i] = e
			return nil
		}
	}
	m.rows = append(m.rows, e)
	return nil
}

func (m *memEncounters) LastSeen(_ context.Context, puuids []string, exclude string) (map[string]storage.EncounterRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, p := range puuids {
		want[p] = true
	}
	out := map[string]storage.EncounterRow{}
	for _, r := range m.rows {
		if !want[r.PUUID] || r.MatchID == exclude {
			continue
		}
		if cur, ok := out[r.PUUID]; !ok || r.SeenAt.After(cur.SeenAt) {
			out[r.PUUID] = r
		}
	}
	return out, nil
}

func (m *memEncounters) History(_ context.Context, puuid string, limit int) ([]storage.EncounterRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.EncounterRow
	for _, r := range m.rows {
		if r.PUUID == puuid {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeenAt.After(out[j].SeenAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memEncounters) PruneBefore(_ context.Context, t time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	var n int64
	for _, r := range m.rows {
		if r.SeenAt.Before(t) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

type memSettings map[string]string

func (m memSettings) Get(_ context.Context, key string) (storage.Setting, error) {
	v, ok := m[key]
	if !ok {
		return storage.Setting{}, storage.ErrNotFound
	}
	return storage.Setting{Key: key, Value: v}, nil
}

func (m memSettings) Upsert(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m memSettings) All(context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}
