package riot

import "github.com/jose-valero/vry/internal/domain"

type PregameMatch struct {
	ID        string `json:"ID"`
	MapID     string `json:"MapID"`
	Mode      string `json:"Mode"`
	QueueID   string `json:"QueueID"`
	GamePodID string `json:"GamePodID"`
	AllyTeam  struct {
		TeamID  string          `json:"TeamID"`
		Players []domain.Player `json:"Players"`
	} `json:"AllyTeam"`
	Teams []struct {
		TeamID string `json:"TeamID"`
	} `json:"Teams"`
}

// TeamID del equipo aliado; Teams[0] como en el cliente.
func (m PregameMatch) TeamID() string {
	if len(m.Teams) > 0 {
		return m.Teams[0].TeamID
	}
	return m.AllyTeam.TeamID
}

type CoregameMatch struct {
	MatchID   string          `json:"MatchID"`
	MapID     string          `json:"MapID"`
	ModeID    string          `json:"ModeID"`
	GamePodID string          `json:"GamePodID"`
	Players   []domain.Player `json:"Players"`
}

type Socket struct {
	ID   string `json:"ID"`
	Item struct {
		ID     string `json:"ID"`
		TypeID string `json:"TypeID"`
	} `json:"Item"`
}

type LoadoutItem struct {
	ID      string            `json:"ID"`
	TypeID  string            `json:"TypeID"`
	Sockets map[string]Socket `json:"Sockets"`
}

type Loadout struct {
	Subject     string                 `json:"Subject"`
	Items       map[string]LoadoutItem `json:"Items"`
	Expressions struct {
		AESSelections []struct {
			SocketID string `json:"SocketID"`
			AssetID  string `json:"AssetID"`
			TypeID   string `json:"TypeID"`
		} `json:"AESSelections"`
	} `json:"Expressions"`
}

type CoregameLoadouts struct {
	Loadouts []struct {
		CharacterID string  `json:"CharacterID"`
		Loadout     Loadout `json:"Loadout"`
	} `json:"Loadouts"`
}

// Flat deja la lista de loadouts igual que la de pregame.
func (l CoregameLoadouts) Flat() []Loadout {
	out := make([]Loadout, 0, len(l.Loadouts))
	for _, x := range l.Loadouts {
		out = append(out, x.Loadout)
	}
	return out
}

type PregameLoadouts struct {
	Loadouts      []Loadout `json:"Loadouts"`
	LoadoutsValid bool      `json:"LoadoutsValid"`
}

type SeasonalInfo struct {
	SeasonID                   string         `json:"SeasonID"`
	NumberOfWins               int            `json:"NumberOfWins"`
	NumberOfWinsWithPlacements int            `json:"NumberOfWinsWithPlacements"`
	NumberOfGames              int            `json:"NumberOfGames"`
	CompetitiveTier            int            `json:"CompetitiveTier"`
	RankedRating               int            `json:"RankedRating"`
	LeaderboardRank            int            `json:"LeaderboardRank"`
	WinsByTier                 map[string]int `json:"WinsByTier"`
}

type QueueSkill struct {
	TotalGamesNeededForRating int                     `json:"TotalGamesNeededForRating"`
	SeasonalInfoBySeasonID    map[string]SeasonalInfo `json:"SeasonalInfoBySeasonID"`
}

type MMR struct {
	Subject     string                `json:"Subject"`
	QueueSkills map[string]QueueSkill `json:"QueueSkills"`
}

type CompetitiveUpdate struct {
	MatchID                  string `json:"MatchID"`
	MapID                    string `json:"MapID"`
	SeasonID                 string `json:"SeasonID"`
	MatchStartTime           int64  `json:"MatchStartTime"`
	TierAfterUpdate          int    `json:"TierAfterUpdate"`
	TierBeforeUpdate         int    `json:"TierBeforeUpdate"`
	RankedRatingAfterUpdate  int    `json:"RankedRatingAfterUpdate"`
	RankedRatingBeforeUpdate int    `json:"RankedRatingBeforeUpdate"`
	RankedRatingEarned       int    `json:"RankedRatingEarned"`
	AFKPenalty               int    `json:"AFKPenalty"`
}

type CompetitiveUpdates struct {
	Subject string              `json:"Subject"`
	Matches []CompetitiveUpdate `json:"Matches"`
}

type DamageEvent struct {
	Receiver  string `json:"receiver"`
	Damage    int    `json:"damage"`
	Legshots  int    `json:"legshots"`
	Bodyshots int    `json:"bodyshots"`
	Headshots int    `json:"headshots"`
}

type MatchDetails struct {
	MatchInfo struct {
		MatchID         string `json:"matchId"`
		MapID           string `json:"mapId"`
		QueueID         string `json:"queueID"`
		GameStartMillis int64  `json:"gameStartMillis"`
	} `json:"matchInfo"`
	Players []struct {
		Subject     string `json:"subject"`
		TeamID      string `json:"teamId"`
		CharacterID string `json:"characterId"`
		Stats       *struct {
			Kills   int `json:"kills"`
			Deaths  int `json:"deaths"`
			Assists int `json:"assists"`
			Score   int `json:"score"`
		} `json:"stats"`
	} `json:"players"`
	RoundResults []struct {
		PlayerStats []struct {
			Subject string        `json:"subject"`
			Damage  []DamageEvent `json:"damage"`
		} `json:"playerStats"`
	} `json:"roundResults"`
}

type Season struct {
	ID        string `json:"ID"`
	Name      string `json:"Name"`
	Type      string `json:"Type"`
	StartTime string `json:"StartTime"`
	EndTime   string `json:"EndTime"`
	IsActive  bool   `json:"IsActive"`
}

type Content struct {
	Seasons []Season `json:"Seasons"`
}
