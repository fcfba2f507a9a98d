package domain

// Presence es una entrada de /chat/v4/presences ya decodificada.
type Presence struct {
	PUUID   string
	Product string
	Private *PrivatePresence // nil si el blob no es de valorant o no decodifica
}

// PrivatePresence normaliza el formato plano viejo y el anidado
// (matchPresenceData / partyPresenceData / playerPresenceData).
type PrivatePresence struct {
	SessionLoopState    GameState
	PartyID             string
	PartySize           int
	MaxPartySize        int
	PartyState          string
	QueueID             string
	ProvisioningFlow    string
	MatchMap            string
	AccountLevel        int
	CompetitiveTier     int
	LeaderboardPosition int
	AllyScore           int
	EnemyScore          int
	IsIdle              bool
}

// Own busca la presencia privada del puuid dado.
func Own(presences []Presence, puuid string) *PrivatePresence {
	for _, p := range presences {
		if p.PUUID == puuid && p.Private != nil {
			return p.Private
		}
	}
	return nil
}
