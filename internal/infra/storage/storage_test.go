package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "vry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, Postgres, DialectFor("postgres://u:p@localhost/vry"))
	assert.Equal(t, Postgres, DialectFor("postgresql://localhost/vry"))
	assert.Equal(t, SQLite, DialectFor("vry.db"))
	assert.Equal(t, SQLite, DialectFor("sqlite://vry.db"))
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = ?1 AND b = ?12", SQLite.rebind("a = $1 AND b = $12"))
	assert.Equal(t, "a = $1", Postgres.rebind("a = $1"))
}

func TestEncounterLastSeen(t *testing.T) {
	db := openTestDB(t)
	repo := NewEncounterRepo(db)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)

	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "m1", Name: "Old#1", Rank: 10, SeenAt: base}))
	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "m2", Name: "New#1", Rank: 12, SeenAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "m3", Name: "Now#1", SeenAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "b", MatchID: "m3", Name: "B#1", SeenAt: base}))

	got, err := repo.LastSeen(ctx, []string{"a", "b", "c"}, "m3")
	require.NoError(t, err)
	require.Contains(t, got, "a")
	assert.Equal(t, "m2", got["a"].MatchID)
	assert.Equal(t, "New#1", got["a"].Name)
	assert.Equal(t, base.Add(time.Hour).Unix(), got["a"].SeenAt.Unix())
	assert.NotContains(t, got, "b")
	assert.NotContains(t, got, "c")
}

func TestEncounterUpsertOverwrites(t *testing.T) {
	db := openTestDB(t)
	repo := NewEncounterRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "m1", Agent: "Jett", SeenAt: time.Unix(10, 0)}))
	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "m1", Agent: "Sage", SeenAt: time.Unix(20, 0)}))

	h, err := repo.History(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "Sage", h[0].Agent)
}

func TestEncounterPrune(t *testing.T) {
	db := openTestDB(t)
	repo := NewEncounterRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "old", SeenAt: time.Unix(100, 0)}))
	require.NoError(t, repo.Upsert(ctx, EncounterRow{PUUID: "a", MatchID: "new", SeenAt: time.Unix(300, 0)}))

	n, err := repo.PruneBefore(ctx, time.Unix(200, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	h, err := repo.History(ctx, "a", 0)
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "new", h[0].MatchID)
}

func TestSettingsRepo(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, "theme", "dark"))
	require.NoError(t, repo.Upsert(ctx, "theme", "midnight"))
	require.NoError(t, repo.Upsert(ctx, "incognito", "true"))

	s, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "midnight", s.Value)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"theme": "midnight", "incognito": "true"}, all)
}
