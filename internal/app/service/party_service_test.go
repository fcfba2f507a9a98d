package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jose-valero/vry/internal/domain"
)

func presence(puuid, party string, level int) domain.Presence {
	return domain.Presence{PUUID: puuid, Product: "valorant", Private: &domain.PrivatePresence{
		SessionLoopState: domain.StateMenus,
		PartyID:          party,
		AccountLevel:     level,
	}}
}

func TestPartyMembers(t *testing.T) {
	ps := []domain.Presence{
		presence("me", "pA", 10),
		presence("mate", "pA", 20),
		presence("other", "pB", 30),
		{PUUID: "lol", Product: "league_of_legends"},
	}
	members := NewPartyService().PartyMembers("me", ps)
	assert.Equal(t, []string{"me", "mate"}, domain.PUUIDs(members))
	assert.Equal(t, 20, members[1].PlayerIdentity.AccountLevel)

	assert.Empty(t, NewPartyService().PartyMembers("ghost", ps))
}

func TestPartiesKeepsOnlyGroups(t *testing.T) {
	ps := []domain.Presence{
		presence("a", "p1", 1),
		presence("b", "p1", 1),
		presence("c", "p2", 1),
		presence("d", "p3", 1),
		presence("e", "p3", 1),
	}
	got := NewPartyService().Parties([]string{"a", "b", "c", "d"}, ps)
	assert.Equal(t, map[string][]string{"p1": {"a", "b"}}, got)
}

func TestIconAssignerFirstSeenOrder(t *testing.T) {
	a := NewIconAssigner(map[string][]string{
		"p1": {"a", "b"},
		"p2": {"c", "d"},
	})
	assert.Equal(t, 0, a.Icon("c"))
	assert.Equal(t, domain.NoParty, a.Icon("solo"))
	assert.Equal(t, 1, a.Icon("a"))
	assert.Equal(t, 0, a.Icon("d"))
	assert.Equal(t, 1, a.Icon("b"))
}
