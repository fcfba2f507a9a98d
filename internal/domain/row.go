package domain

import "time"

// NoParty marca una fila sin icono de party.
const NoParty = -1

type RankCell struct {
	Tier int        `json:"tier"`
	When ActEpisode `json:"when"`
}

// Encounter es una aparición guardada de un jugador.
type Encounter struct {
	PUUID   string    `json:"puuid"`
	MatchID string    `json:"match_id"`
	Name    string    `json:"name"`
	Agent   string    `json:"agent"`
	Map     string    `json:"map"`
	Tier    int       `json:"rank"`
	RR      int       `json:"rr"`
	SeenAt  time.Time `json:"seen_at"`
}

// Row es una línea de la tabla de jugadores.
type Row struct {
	PUUID      string     `json:"puuid"`
	Party      int        `json:"party"`
	AgentID    string     `json:"agent_id"`
	Agent      string     `json:"agent"`
	AgentState string     `json:"agent_state,omitempty"`
	Name       string     `json:"name"`
	Incognito  bool       `json:"incognito"`
	Team       string     `json:"team,omitempty"`
	AllyTeam   string     `json:"ally_team,omitempty"`
	IsSelf     bool       `json:"is_self"`
	IsParty    bool       `json:"is_party"`
	Skin       string     `json:"skin,omitempty"`
	SkinColor  string     `json:"skin_color,omitempty"`
	Rank       RankCell   `json:"rank"`
	RR         int        `json:"rr"`
	Peak       RankCell   `json:"peak_rank"`
	Previous   RankCell   `json:"previous_rank"`
	Leader     int        `json:"leaderboard"`
	HS         *float64   `json:"hs"`
	KD         *float64   `json:"kd"`
	WinRate    *int       `json:"wr"`
	Games      int        `json:"games"`
	Level      int        `json:"level"`
	HideLevel  bool       `json:"hide_level"`
	EarnedRR   *int       `json:"earned_rr"`
	AFKPenalty *int       `json:"afk_penalty"`
	LastSeen   *Encounter `json:"last_seen,omitempty"`
}

// Snapshot es lo que produce cada pasada del worker.
type Snapshot struct {
	State     GameState `json:"state"`
	Mode      string    `json:"mode"`
	Map       string    `json:"map,omitempty"`
	MatchID   string    `json:"match_id,omitempty"`
	Server    string    `json:"server,omitempty"`
	Rows      []Row     `json:"rows"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage llega por el websocket local.
type ChatMessage struct {
	ID       string    `json:"id"`
	PUUID    string    `json:"puuid"`
	GameName string    `json:"game_name"`
	GameTag  string    `json:"game_tag"`
	Body     string    `json:"body"`
	CID      string    `json:"cid"`
	Type     string    `json:"type"`
	Time     time.Time `json:"time"`
}
