package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/jose-valero/vry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, opFrame, map[string]string{"cmd": "X"}))
	raw := buf.Bytes()
	assert.Equal(t, []byte{1, 0, 0, 0}, raw[:4])
	assert.Equal(t, byte(len(`{"cmd":"X"}`)), raw[4])

	op, body, err := readFrame(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, opFrame, op)
	assert.JSONEq(t, `{"cmd":"X"}`, string(body))
}

func TestBuildActivity(t *testing.T) {
	since := time.Unix(1_700_000_000, 0)

	menu := BuildActivity(&domain.PrivatePresence{SessionLoopState: domain.StateMenus, PartyID: "p", PartySize: 1, MaxPartySize: 5}, Extra{Since: since})
	assert.Equal(t, "In Menu", menu.Details)
	assert.Equal(t, "Solo", menu.State)
	assert.Equal(t, []int{1, 5}, menu.Party.Size)
	assert.Equal(t, since.Unix(), menu.Timestamps.Start)

	queue := BuildActivity(&domain.PrivatePresence{SessionLoopState: domain.StateMenus, PartyState: "MATCHMAKING", PartySize: 2, MaxPartySize: 5}, Extra{Mode: "Competitive"})
	assert.Equal(t, "In Queue - Competitive", queue.Details)
	assert.Equal(t, "In a Party (2 of 5)", queue.State)
	assert.Nil(t, queue.Party)

	pre := BuildActivity(&domain.PrivatePresence{SessionLoopState: domain.StatePregame}, Extra{Mode: "Unrated", MapImage: "ascent", MapName: "Ascent"})
	assert.Equal(t, "Agent Select - Unrated", pre.Details)
	assert.Equal(t, "ascent", pre.Assets.LargeImage)

	game := BuildActivity(&domain.PrivatePresence{SessionLoopState: domain.StateIngame, AllyScore: 9, EnemyScore: 4},
		Extra{Mode: "Competitive", MapImage: "bind", MapName: "Bind", AgentImg: "jett", Agent: "Jett"})
	assert.Equal(t, "Competitive // 9-4", game.Details)
	assert.Equal(t, "bind", game.Assets.LargeImage)
	assert.Equal(t, "jett", game.Assets.SmallImage)
	assert.Equal(t, "Jett", game.Assets.SmallText)

	assert.Equal(t, "Idle", BuildActivity(nil, Extra{}).Details)
}

// fakeDiscord responde al handshake y a cada frame.
func fakeDiscord(t *testing.T, server net.Conn, frames chan<- map[string]any) {
	go func() {
		defer server.Close()
		op, body, err := readFrame(server)
		if err != nil || op != opHandshake {
			return
		}
		var hs map[string]any
		_ = json.Unmarshal(body, &hs)
		frames <- hs
		_ = writeFrame(server, opFrame, map[string]any{"cmd": "DISPATCH", "evt": "READY"})
		for {
			op, body, err := readFrame(server)
			if err != nil || op != opFrame {
				return
			}
			var m map[string]any
			_ = json.Unmarshal(body, &m)
			frames <- m
			_ = writeFrame(server, opFrame, map[string]any{"cmd": "SET_ACTIVITY", "evt": nil})
		}
	}()
}

func TestSetActivity(t *testing.T) {
	client, server := net.Pipe()
	frames := make(chan map[string]any, 4)
	fakeDiscord(t, server, frames)

	c := New("123")
	c.dial = func(context.Context) (net.Conn, error) { return client, nil }
	defer c.Close()

	a := Activity{Details: "In Menu", State: "Solo"}
	require.NoError(t, c.SetActivity(context.Background(), a))

	hs := <-frames
	assert.Equal(t, "123", hs["client_id"])
	req := <-frames
	assert.Equal(t, "SET_ACTIVITY", req["cmd"])
	args := req["args"].(map[string]any)
	assert.Equal(t, "In Menu", args["activity"].(map[string]any)["details"])

	// misma actividad: no se manda nada
	require.NoError(t, c.SetActivity(context.Background(), a))
	select {
	case f := <-frames:
		t.Fatalf("unexpected frame %v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSetActivityWithoutClientID(t *testing.T) {
	c := New("")
	assert.ErrorIs(t, c.SetActivity(context.Background(), Activity{}), ErrDisabled)
}
