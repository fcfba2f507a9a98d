package service

import (
	"github.com/jose-valero/vry/internal/domain"
)

type PartyService struct{}

func NewPartyService() *PartyService { return &PartyService{} }

// PartyMembers: las presencias que comparten partyId con self (self incluido).
func (PartyService) PartyMembers(self string, presences []domain.Presence) []domain.Player {
	own := domain.Own(presences, self)
	if own == nil || own.PartyID == "" {
		return nil
	}
	var out []domain.Player
	for _, p := range presences {
		if p.Private == nil || p.Private.PartyID != own.PartyID {
			continue
		}
		out = append(out, domain.Player{
			Subject:        p.PUUID,
			PlayerIdentity: domain.PlayerIdentity{Subject: p.PUUID, AccountLevel: p.Private.AccountLevel},
		})
	}
	return out
}

// Parties agrupa los puuids listados por partyId y deja sólo grupos de 2 o más.
func (PartyService) Parties(puuids []string, presences []domain.Presence) map[string][]string {
	listed := make(map[string]bool, len(puuids))
	for _, p := range puuids {
		listed[p] = true
	}
	groups := map[string][]string{}
	for _, p := range presences {
		if p.Private == nil || p.Private.PartyID == "" || !listed[p.PUUID] {
			continue
		}
		if contains(groups[p.Private.PartyID], p.PUUID) {
			continue
		}
		groups[p.Private.PartyID] = append(groups[p.Private.PartyID], p.PUUID)
	}
	for id, members := range groups {
		if len(members) < 2 {
			delete(groups, id)
		}
	}
	return groups
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// IconAssigner reparte índices de icono en orden de aparición.
type IconAssigner struct {
	partyOf map[string]string
	icons   map[string]int
	next    int
}

func NewIconAssigner(parties map[string][]string) *IconAssigner {
	a := &IconAssigner{partyOf: map[string]string{}, icons: map[string]int{}}
	for id, members := range parties {
		for _, m := range members {
			a.partyOf[m] = id
		}
	}
	return a
}

// Icon devuelve domain.NoParty si el jugador no está en una party.
func (a *IconAssigner) Icon(puuid string) int {
	id, ok := a.partyOf[puuid]
	if !ok {
		return domain.NoParty
	}
	if i, ok := a.icons[id]; ok {
		return i
	}
	i := a.next
	a.icons[id] = i
	a.next++
	return i
}
