package valapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func fakeAPI(t *testing.T, broken string) *httptest.Server {
	t.Helper()
	data := map[string]any{
		"/version": Version{RiotClientVersion: "release-09.00-shipping-1"},
		"/agents":  []Agent{{UUID: "ADD6443A-41BD-E414-F6AD-E58D267F4E95", DisplayName: "Jett"}},
		"/maps":    []Map{{UUID: "m1", DisplayName: "Ascent", MapURL: "/Game/Maps/Ascent/Ascent"}},
		"/weapons": []Weapon{{
			UUID: "9c82e19d-4575-0200-1a81-3eacf00cf872", DisplayName: "Vandal",
			Skins: []Skin{{UUID: "SKIN-1", DisplayName: "Prime Vandal", ContentTierUUID: ptr("tier-1")}},
		}},
		"/buddies":      []Buddy{{UUID: "buddy-1", DisplayName: "Buddy"}},
		"/sprays":       []Spray{{UUID: "spray-1", DisplayName: "Spray"}},
		"/playertitles": []PlayerTitle{{UUID: "title-1", TitleText: ptr("Ace")}, {UUID: "title-2"}},
		"/playercards":  []PlayerCard{{UUID: "card-1", LargeArt: "large.png"}},
		"/contenttiers": []ContentTier{{UUID: "tier-1", DevName: "Premium"}},
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == broken {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		d, ok := data[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": 200, "data": d})
	}))
}

func TestLoadCatalog(t *testing.T) {
	srv := fakeAPI(t, "")
	defer srv.Close()

	cat, err := New(WithBaseURL(srv.URL)).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "release-09.00-shipping-1", cat.ClientVersion)
	assert.Equal(t, "Jett", cat.AgentName("add6443a-41bd-e414-f6ad-e58d267f4e95"))
	assert.Equal(t, "", cat.AgentName("unknown"))
	assert.Equal(t, "Ascent", cat.MapName("/game/maps/ascent/ascent"))

	w, ok := cat.WeaponByName("vandal")
	require.True(t, ok)
	assert.Equal(t, "Vandal", w.DisplayName)
	assert.Equal(t, []string{"Vandal"}, cat.WeaponNames())

	s, sw, ok := cat.Skin("skin-1")
	require.True(t, ok)
	assert.Equal(t, "Prime Vandal", s.DisplayName)
	assert.Equal(t, "Vandal", sw.DisplayName)

	assert.Equal(t, "Ace", cat.TitleText("TITLE-1"))
	assert.Equal(t, "", cat.TitleText("title-2"))
	assert.Equal(t, "large.png", cat.CardArt("card-1"))
	tier, ok := cat.ContentTier("tier-1")
	require.True(t, ok)
	assert.Equal(t, "Premium", tier.DevName)
}

func TestLoadCatalogFails(t *testing.T) {
	srv := fakeAPI(t, "/sprays")
	defer srv.Close()

	_, err := New(WithBaseURL(srv.URL)).Load(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}
