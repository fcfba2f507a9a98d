package storage

import "time"

// EncounterRow es la fila de encounters; seen_at se guarda en epoch.
type EncounterRow struct {
	PUUID   string
	MatchID string
	Name    string
	Agent   string
	Map     string
	Rank    int
	RR      int
	SeenAt  time.Time
}

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
