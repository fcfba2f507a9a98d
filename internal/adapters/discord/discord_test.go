package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/vry/internal/domain"
)

func TestUserLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newUserLimiter(3 * time.Second)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"))

	now = now.Add(3 * time.Second)
	assert.True(t, l.Allow("u1"))
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, hasAnyRole([]string{"a", "b"}, []string{"b"}))
	assert.False(t, hasAnyRole([]string{"a"}, []string{"c"}))
	assert.False(t, hasAnyRole([]string{"a"}, nil))
}

func ingameSnap() domain.Snapshot {
	return domain.Snapshot{
		State: domain.StateIngame, Mode: "Competitive", Map: "Ascent", MatchID: "m1",
		UpdatedAt: time.Unix(1700000000, 0),
		Rows: []domain.Row{
			{Name: "Foe#1", Agent: "Sage", Team: "Red", AllyTeam: "Blue", Rank: domain.RankCell{Tier: 24}, Incognito: true, Level: 40, HideLevel: true},
			{Name: "Me#1", Agent: "Jett", Team: "Blue", AllyTeam: "Blue", IsSelf: true, Rank: domain.RankCell{Tier: 13}, RR: 55, Level: 120},
		},
	}
}

func TestLobbyBlock(t *testing.T) {
	out := LobbyBlock(ingameSnap(), false)
	assert.True(t, strings.HasPrefix(out, "**In-Game • Competitive • Ascent**\n```\n"))
	assert.True(t, strings.HasSuffix(out, "\n```"))
	assert.Contains(t, out, "Incognito")
	assert.NotContains(t, out, "Foe#1")
	assert.Contains(t, out, "Me#1")
	assert.Contains(t, out, "Gold 2")
	assert.Contains(t, out, "Immortal 1")
	assert.Contains(t, out, "120")
	assert.NotContains(t, out, "40")

	short := LobbyBlock(ingameSnap(), true)
	assert.Contains(t, short, "G2")
	assert.Contains(t, short, "IM1")

	assert.Equal(t, "VALORANT is not running or the lobby is empty.", LobbyBlock(domain.Snapshot{}, false))
}

func TestTruncateKeepsRunes(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abé", 3))
	assert.Equal(t, "abé", truncate("abé", 4))
	assert.Equal(t, "a", truncate("a🙂", 4))

	long := strings.Repeat("José ", 500)
	out := truncate(long, maxMessage)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), maxMessage)
	assert.GreaterOrEqual(t, len(out), maxMessage-3)
}

func TestMatchEmbed(t *testing.T) {
	e := MatchEmbed(ingameSnap())
	assert.Equal(t, "In-Game • Competitive • Ascent", e.Description)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Jett · Me#1 · Gold 2\n", e.Fields[0].Value)
	assert.Equal(t, "Sage · Incognito · Immortal 1\n", e.Fields[1].Value)
	assert.Equal(t, "match m1", e.Footer.Text)
	assert.Equal(t, "2023-11-14T22:13:20Z", e.Timestamp)
}

func TestParseWebhookURL(t *testing.T) {
	id, token, err := ParseWebhookURL("https://discord.com/api/webhooks/123/abc-def")
	require.NoError(t, err)
	assert.Equal(t, "123", id)
	assert.Equal(t, "abc-def", token)

	_, _, err = ParseWebhookURL("https://discord.com/api/channels/1")
	assert.Error(t, err)
}

type fakeExec struct {
	calls int
	err   error
	last  *discordgo.WebhookParams
}

func (f *fakeExec) WebhookExecute(id, token string, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.calls++
	f.last = data
	return nil, f.err
}

func TestNotifierOncePerMatch(t *testing.T) {
	exec := &fakeExec{}
	n, err := NewNotifier(exec, "https://discord.com/api/webhooks/1/tok")
	require.NoError(t, err)
	ctx := context.Background()

	n.Notify(ctx, domain.Snapshot{State: domain.StateMenus})
	n.Notify(ctx, ingameSnap())
	n.Notify(ctx, ingameSnap())
	assert.Equal(t, 1, exec.calls)
	require.Len(t, exec.last.Embeds, 1)

	next := ingameSnap()
	next.MatchID = "m2"
	n.Notify(ctx, next)
	assert.Equal(t, 2, exec.calls)
}

func TestNotifierRetriesAfterError(t *testing.T) {
	exec := &fakeExec{err: errors.New("boom")}
	n, err := NewNotifier(exec, "https://discord.com/api/webhooks/1/tok")
	require.NoError(t, err)

	n.Notify(context.Background(), ingameSnap())
	exec.err = nil
	n.Notify(context.Background(), ingameSnap())
	assert.Equal(t, 2, exec.calls)
}
