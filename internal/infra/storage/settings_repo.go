package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SettingsRepo struct{ db *DB }

func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context, key string) (Setting, error) {
	var (
		s  Setting
		ts int64
	)
	err := r.db.QueryRowContext(ctx, r.db.Dialect.rebind(`
SELECT key, value, updated_at
  FROM ui_settings
 WHERE key = $1
`), key).Scan(&s.Key, &s.Value, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Setting{}, ErrNotFound
	}
	if err != nil {
		return Setting{}, err
	}
	s.UpdatedAt = time.Unix(ts, 0)
	return s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, r.db.Dialect.rebind(`
INSERT INTO ui_settings (key, value, updated_at)
VALUES ($1,$2,$3)
ON CONFLICT (key) DO UPDATE SET
  value      = EXCLUDED.value,
  updated_at = EXCLUDED.updated_at
`), key, value, time.Now().Unix())
	return err
}

func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM ui_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
