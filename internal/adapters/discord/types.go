package discord

import "github.com/jose-valero/vry/internal/domain"

// LobbySource lo implementa el worker: última snapshot y refresco manual.
type LobbySource interface {
	Last() domain.Snapshot
	Refresh()
}

// custom_id de los botones
const (
	componentRefresh = "lobby_refresh"
)
