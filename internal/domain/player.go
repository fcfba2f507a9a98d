package domain

// PlayerIdentity viene de pregame/core-game.
type PlayerIdentity struct {
	Subject          string `json:"Subject"`
	PlayerCardID     string `json:"PlayerCardID"`
	PlayerTitleID    string `json:"PlayerTitleID"`
	AccountLevel     int    `json:"AccountLevel"`
	Incognito        bool   `json:"Incognito"`
	HideAccountLevel bool   `json:"HideAccountLevel"`
}

// Player es un jugador del lobby, del partido o de la party.
type Player struct {
	Subject                 string         `json:"Subject"`
	TeamID                  string         `json:"TeamID"`
	CharacterID             string         `json:"CharacterID"`
	CharacterSelectionState string         `json:"CharacterSelectionState"`
	PlayerIdentity          PlayerIdentity `json:"PlayerIdentity"`
}

func PUUIDs(players []Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Subject)
	}
	return out
}
