package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	pq "github.com/lib/pq"
)

type EncounterRepo struct{ db *DB }

func NewEncounterRepo(db *DB) *EncounterRepo { return &EncounterRepo{db: db} }

// Upsert por (puuid, match_id); el último visto gana.
func (r *EncounterRepo) Upsert(ctx context.Context, e EncounterRow) error {
	_, err := r.db.ExecContext(ctx, r.db.Dialect.rebind(`
INSERT INTO encounters (puuid, match_id, name, agent, map, rank, rr, seen_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (puuid, match_id) DO UPDATE SET
  name    = EXCLUDED.name,
  agent   = EXCLUDED.agent,
  map     = EXCLUDED.map,
  rank    = EXCLUDED.rank,
  rr      = EXCLUDED.rr,
  seen_at = EXCLUDED.seen_at
`), e.PUUID, e.MatchID, e.Name, e.Agent, e.Map, e.Rank, e.RR, e.SeenAt.Unix())
	return err
}

// LastSeen: puuid -> encuentro más reciente fuera de excludeMatch.
func (r *EncounterRepo) LastSeen(ctx context.Context, puuids []string, excludeMatch string) (map[string]EncounterRow, error) {
	out := map[string]EncounterRow{}
	if len(puuids) == 0 {
		return out, nil
	}

	var (
		q    string
		args []any
	)
	if r.db.Dialect == Postgres {
		q = `
SELECT puuid, match_id, name, agent, map, rank, rr, seen_at
  FROM encounters
 WHERE puuid = ANY($1) AND match_id <> $2
 ORDER BY seen_at DESC`
		args = []any{pq.Array(puuids), excludeMatch}
	} else {
		ph := make([]string, len(puuids))
		args = make([]any, 0, len(puuids)+1)
		args = append(args, excludeMatch)
		for i, p := range puuids {
			ph[i] = fmt.Sprintf("?%d", i+2)
			args = append(args, p)
		}
		q = `
SELECT puuid, match_id, name, agent, map, rank, rr, seen_at
  FROM encounters
 WHERE match_id <> ?1 AND puuid IN (` + strings.Join(ph, ",") + `)
 ORDER BY seen_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, err
		}
		if _, ok := out[e.PUUID]; !ok {
			out[e.PUUID] = e
		}
	}
	return out, rows.Err()
}

// History devuelve los encuentros de un jugador, el más reciente primero.
func (r *EncounterRepo) History(ctx context.Context, puuid string, limit int) ([]EncounterRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, r.db.Dialect.rebind(`
SELECT puuid, match_id, name, agent, map, rank, rr, seen_at
  FROM encounters
 WHERE puuid = $1
 ORDER BY seen_at DESC
 LIMIT $2
`), puuid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []EncounterRow
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PruneBefore borra encuentros viejos y devuelve cuántos.
func (r *EncounterRepo) PruneBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Dialect.rebind(`DELETE FROM encounters WHERE seen_at < $1`), t.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEncounter(s scanner) (EncounterRow, error) {
	var (
		e    EncounterRow
		seen int64
	)
	if err := s.Scan(&e.PUUID, &e.MatchID, &e.Name, &e.Agent, &e.Map, &e.Rank, &e.RR, &seen); err != nil {
		return EncounterRow{}, err
	}
	e.SeenAt = time.Unix(seen, 0)
	return e, nil
}
