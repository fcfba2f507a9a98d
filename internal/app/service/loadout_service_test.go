package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/adapters/valapi"
	"github.com/jose-valero/vry/internal/domain"
)

const (
	vandalID  = "9c82e19d-4575-0200-1a81-3eacf00cf872"
	classicID = "29a0cfab-485b-f5d5-779a-b59f85e204a8"
	jettID    = "add6443a-41bd-e414-f6ad-e58d267f4e95"
)

func sp(s string) *string { return &s }

func testCatalog() *valapi.Catalog {
	return valapi.NewCatalog(
		valapi.Version{RiotClientVersion: "release-09.00"},
		[]valapi.Agent{{UUID: jettID, DisplayName: "Jett", DisplayIcon: "jett.png"}},
		[]valapi.Map{{UUID: "m", DisplayName: "Ascent", MapURL: "/Game/Maps/Ascent/Ascent"}},
		[]valapi.Weapon{
			{UUID: vandalID, DisplayName: "Vandal", DisplayIcon: "vandal.png", Skins: []valapi.Skin{{
				UUID: "skin-prime", DisplayName: "Prime Vandal", DisplayIcon: sp("prime.png"),
				ContentTierUUID: sp("60bca009-4182-7998-dee7-b8a2558dc369"),
				Chromas:         []valapi.Chroma{{UUID: "chroma-1", FullRender: sp("prime-render.png")}},
			}, {
				UUID: "skin-odd", DisplayName: "Odd Vandal", ContentTierUUID: sp("tier-x"),
			}}},
			{UUID: classicID, DisplayName: "Classic", DisplayIcon: "classic.png", Skins: []valapi.Skin{{
				UUID: "skin-std", DisplayName: "Standard Classic",
				Chromas: []valapi.Chroma{{UUID: "chroma-std", DisplayIcon: sp("std.png")}},
			}}},
		},
		[]valapi.Buddy{{UUID: "buddy-1", DisplayName: "Lucky", DisplayIcon: "lucky.png"}},
		[]valapi.Spray{{UUID: "spray-1", DisplayName: "Nice", DisplayIcon: "nice.png", FullTransparentIcon: "nice-t.png"}},
		[]valapi.PlayerTitle{{UUID: "title-1", TitleText: sp("Ace")}},
		[]valapi.PlayerCard{{UUID: "card-1", LargeArt: "card.png"}},
		[]valapi.ContentTier{{UUID: "tier-x", HighlightColor: "aabbcc33"}},
	)
}

func loadoutJSON(subject, skin, chroma string) string {
	return `{"Subject":"` + subject + `","Items":{
		"` + vandalID + `":{"Sockets":{
			"bcef87d6-209b-46c6-8b19-fbe40bd95abc":{"Item":{"ID":"` + skin + `"}},
			"3ad1b2b2-acdb-4524-852f-954a76ddae0a":{"Item":{"ID":"` + chroma + `"}},
			"77258665-71d1-4623-bc72-44db9bd5b3b3":{"Item":{"ID":"buddy-1"}}}},
		"` + classicID + `":{"Sockets":{
			"bcef87d6-209b-46c6-8b19-fbe40bd95abc":{"Item":{"ID":"skin-std"}},
			"3ad1b2b2-acdb-4524-852f-954a76ddae0a":{"Item":{"ID":"chroma-std"}}}}},
		"Expressions":{"AESSelections":[
			{"TypeID":"d5f120f8-ff8c-4aac-92ea-f2b5acbe9475","AssetID":"spray-1"},
			{"TypeID":"other-type","AssetID":"flex"},
			{"TypeID":"d5f120f8-ff8c-4aac-92ea-f2b5acbe9475","AssetID":"unknown-spray"}]}}`
}

func TestPairBySubjectAndPosition(t *testing.T) {
	players := []domain.Player{{Subject: "a"}, {Subject: "b"}}

	bySubject := Pair(players, []riot.Loadout{{Subject: "b"}, {Subject: "a"}}, false)
	assert.Equal(t, "a", bySubject["a"].Subject)
	assert.Equal(t, "b", bySubject["b"].Subject)

	l1 := riot.Loadout{Items: map[string]riot.LoadoutItem{"x": {ID: "first"}}}
	l2 := riot.Loadout{Items: map[string]riot.LoadoutItem{"x": {ID: "second"}}}
	l3 := riot.Loadout{Items: map[string]riot.LoadoutItem{"x": {ID: "third"}}}

	blue := Pair(players, []riot.Loadout{l1, l2, l3}, false)
	assert.Equal(t, "first", blue["a"].Items["x"].ID)
	assert.Equal(t, "second", blue["b"].Items["x"].ID)

	red := Pair(players, []riot.Loadout{l1, l2, l3}, true)
	assert.Equal(t, "third", red["a"].Items["x"].ID)
	assert.Equal(t, "first", red["b"].Items["x"].ID)
}

func TestSkins(t *testing.T) {
	s := NewLoadoutService(testCatalog())
	paired := map[string]riot.Loadout{
		"a": decode[riot.Loadout](t, loadoutJSON("a", "skin-prime", "chroma-1")),
		"b": decode[riot.Loadout](t, loadoutJSON("b", "skin-odd", "")),
		"c": decode[riot.Loadout](t, loadoutJSON("c", "missing", "")),
	}

	got := s.Skins(paired, "vandal")
	assert.Equal(t, SkinCell{Name: "Prime", Color: "#D1548D"}, got["a"])
	assert.Equal(t, SkinCell{Name: "Odd", Color: "#AABBCC"}, got["b"])
	assert.NotContains(t, got, "c")

	assert.Empty(t, s.Skins(paired, "Bazooka"))
}

func TestMatchLoadout(t *testing.T) {
	s := NewLoadoutService(testCatalog())
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	players := []domain.Player{{
		Subject: "a", TeamID: "Blue", CharacterID: jettID,
		PlayerIdentity: domain.PlayerIdentity{AccountLevel: 42, PlayerTitleID: "title-1", PlayerCardID: "card-1"},
	}}
	paired := map[string]riot.Loadout{"a": decode[riot.Loadout](t, loadoutJSON("a", "skin-prime", "chroma-1"))}

	ml := s.MatchLoadout(players, paired, map[string]string{"a": "Alpha#EUW"}, "Ascent", false)
	assert.Equal(t, int64(1700000000), ml.Time)
	assert.Equal(t, "Ascent", ml.Map)

	p := ml.Players["a"]
	require.NotNil(t, p)
	assert.Equal(t, "Alpha#EUW", p.Name)
	assert.Equal(t, "Blue", p.Team)
	assert.Equal(t, 42, p.Level)
	assert.Equal(t, "Ace", p.Title)
	assert.Equal(t, "card.png", p.PlayerCard)
	assert.Equal(t, "JettArtwork", p.AgentArtworkName)
	assert.Equal(t, "jett.png", p.Agent)

	require.Len(t, p.Sprays, 2)
	assert.Equal(t, "Nice", p.Sprays[0].DisplayName)
	assert.Equal(t, domain.LoadoutSpray{}, p.Sprays[1])

	vandal := p.Weapons[vandalID]
	require.NotNil(t, vandal)
	assert.Equal(t, "Vandal", vandal.Weapon)
	assert.Equal(t, "Prime Vandal", vandal.SkinDisplayName)
	assert.Equal(t, "prime-render.png", vandal.SkinDisplayIcon)
	assert.Equal(t, "buddy-1", vandal.BuddyUUID)
	assert.Equal(t, "Lucky", vandal.BuddyDisplayName)
	assert.Equal(t, "lucky.png", vandal.BuddyDisplayIcon)

	classic := p.Weapons[classicID]
	require.NotNil(t, classic)
	assert.Equal(t, "classic.png", classic.SkinDisplayIcon)

	hidden := s.MatchLoadout(players, paired, map[string]string{"a": "Alpha#EUW"}, "Ascent", true)
	assert.Equal(t, "Jett", hidden.Players["a"].Name)
}
