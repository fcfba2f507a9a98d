package domain

// RankNames indexa por CompetitiveTier (0..27).
var RankNames = [...]string{
	"Unranked", "Unranked", "Unranked",
	"Iron 1", "Iron 2", "Iron 3",
	"Bronze 1", "Bronze 2", "Bronze 3",
	"Silver 1", "Silver 2", "Silver 3",
	"Gold 1", "Gold 2", "Gold 3",
	"Platinum 1", "Platinum 2", "Platinum 3",
	"Diamond 1", "Diamond 2", "Diamond 3",
	"Ascendant 1", "Ascendant 2", "Ascendant 3",
	"Immortal 1", "Immortal 2", "Immortal 3",
	"Radiant",
}

const (
	TierAscendant1 = 21
	TierRadiant    = 27
)

func RankName(tier int) string {
	if tier < 0 || tier >= len(RankNames) {
		return RankNames[0]
	}
	return RankNames[tier]
}

// ActEpisode identifica un acto. Cero significa desconocido.
type ActEpisode struct {
	Act     int `json:"act"`
	Episode int `json:"episode"`
}

func (a ActEpisode) Known() bool { return a.Act > 0 && a.Episode > 0 }

// RankInfo es el resultado de RankService.Rank.
type RankInfo struct {
	Tier        int
	RR          int
	Leaderboard int
	PeakTier    int
	PeakSeason  string
	Peak        ActEpisode
	WinRate     *int
	Games       int
	OK          bool
}
