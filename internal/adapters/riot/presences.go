package riot

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/jose-valero/vry/internal/domain"
)

type presenceDTO struct {
	PUUID   string `json:"puuid"`
	Product string `json:"product"`
	Private string `json:"private"`
}

// privateDTO cubre el formato plano y el anidado.
type privateDTO struct {
	SessionLoopState              string `json:"sessionLoopState"`
	PartyID                       string `json:"partyId"`
	PartySize                     int    `json:"partySize"`
	MaxPartySize                  int    `json:"maxPartySize"`
	PartyState                    string `json:"partyState"`
	QueueID                       string `json:"queueId"`
	ProvisioningFlow              string `json:"provisioningFlow"`
	MatchMap                      string `json:"matchMap"`
	AccountLevel                  int    `json:"accountLevel"`
	CompetitiveTier               int    `json:"competitiveTier"`
	LeaderboardPosition           int    `json:"leaderboardPosition"`
	PartyOwnerMatchScoreAllyTeam  int    `json:"partyOwnerMatchScoreAllyTeam"`
	PartyOwnerMatchScoreEnemyTeam int    `json:"partyOwnerMatchScoreEnemyTeam"`
	IsIdle                        bool   `json:"isIdle"`

	MatchPresenceData *struct {
		SessionLoopState string `json:"sessionLoopState"`
		ProvisioningFlow string `json:"provisioningFlow"`
		MatchMap         string `json:"matchMap"`
		QueueID          string `json:"queueId"`
	} `json:"matchPresenceData"`
	PartyPresenceData *struct {
		PartyID                       string `json:"partyId"`
		PartySize                     int    `json:"partySize"`
		MaxPartySize                  int    `json:"maxPartySize"`
		PartyState                    string `json:"partyState"`
		PartyOwnerMatchScoreAllyTeam  int    `json:"partyOwnerMatchScoreAllyTeam"`
		PartyOwnerMatchScoreEnemyTeam int    `json:"partyOwnerMatchScoreEnemyTeam"`
	} `json:"partyPresenceData"`
	PlayerPresenceData *struct {
		AccountLevel        int `json:"accountLevel"`
		CompetitiveTier     int `json:"competitiveTier"`
		LeaderboardPosition int `json:"leaderboardPosition"`
	} `json:"playerPresenceData"`
}

// DecodePrivate decodifica el campo private (base64 JSON).
func DecodePrivate(b64 string) (*domain.PrivatePresence, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var d privateDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	p := &domain.PrivatePresence{
		SessionLoopState:    domain.ParseGameState(d.SessionLoopState),
		PartyID:             d.PartyID,
		PartySize:           d.PartySize,
		MaxPartySize:        d.MaxPartySize,
		PartyState:          d.PartyState,
		QueueID:             d.QueueID,
		ProvisioningFlow:    d.ProvisioningFlow,
		MatchMap:            d.MatchMap,
		AccountLevel:        d.AccountLevel,
		CompetitiveTier:     d.CompetitiveTier,
		LeaderboardPosition: d.LeaderboardPosition,
		AllyScore:           d.PartyOwnerMatchScoreAllyTeam,
		EnemyScore:          d.PartyOwnerMatchScoreEnemyTeam,
		IsIdle:              d.IsIdle,
	}
	if m := d.MatchPresenceData; m != nil {
		p.SessionLoopState = domain.ParseGameState(m.SessionLoopState)
		p.ProvisioningFlow = m.ProvisioningFlow
		p.MatchMap = m.MatchMap
		p.QueueID = m.QueueID
	}
	if pp := d.PartyPresenceData; pp != nil {
		p.PartyID = pp.PartyID
		p.PartySize = pp.PartySize
		p.MaxPartySize = pp.MaxPartySize
		p.PartyState = pp.PartyState
		p.AllyScore = pp.PartyOwnerMatchScoreAllyTeam
		p.EnemyScore = pp.PartyOwnerMatchScoreEnemyTeam
	}
	if pl := d.PlayerPresenceData; pl != nil {
		p.AccountLevel = pl.AccountLevel
		p.CompetitiveTier = pl.CompetitiveTier
		p.LeaderboardPosition = pl.LeaderboardPosition
	}
	return p, nil
}

// DecodePresences convierte la lista cruda; los blobs que no son de valorant quedan con Private nil.
func DecodePresences(in []presenceDTO) []domain.Presence {
	out := make([]domain.Presence, 0, len(in))
	for _, p := range in {
		dp := domain.Presence{PUUID: p.PUUID, Product: p.Product}
		if p.Product == "valorant" && p.Private != "" {
			if priv, err := DecodePrivate(p.Private); err == nil {
				dp.Private = priv
			}
		}
		out = append(out, dp)
	}
	return out
}

// ParsePresences decodifica el cuerpo de /chat/v4/presences (también el data del evento ws).
func ParsePresences(b []byte) ([]domain.Presence, error) {
	var body struct {
		Presences []presenceDTO `json:"presences"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, err
	}
	return DecodePresences(body.Presences), nil
}

func (c *Client) Presences(ctx context.Context) ([]domain.Presence, error) {
	var body struct {
		Presences []presenceDTO `json:"presences"`
	}
	if err := c.doJSON(ctx, call{op: "riot.Presences", svc: Local, method: http.MethodGet, path: "/chat/v4/presences"}, &body); err != nil {
		return nil, err
	}
	return DecodePresences(body.Presences), nil
}
