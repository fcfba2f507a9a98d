package rpc

import (
	"fmt"
	"strings"
	"time"

	"github.com/jose-valero/vry/internal/domain"
)

type Timestamps struct {
	Start int64 `json:"start,omitempty"`
}

type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

type Party struct {
	ID   string `json:"id,omitempty"`
	Size []int  `json:"size,omitempty"`
}

type Activity struct {
	Details    string      `json:"details,omitempty"`
	State      string      `json:"state,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"`
	Assets     *Assets     `json:"assets,omitempty"`
	Party      *Party      `json:"party,omitempty"`
}

// Extra completa lo que no trae la presencia.
type Extra struct {
	Mode     string
	MapName  string
	MapImage string
	Agent    string
	AgentImg string
	Since    time.Time
}

// BuildActivity traduce la presencia privada a una Rich Presence.
func BuildActivity(p *domain.PrivatePresence, x Extra) Activity {
	if p == nil {
		return Activity{Details: "Idle"}
	}
	a := Activity{
		Assets: &Assets{LargeImage: "game_icon", LargeText: "VALORANT"},
	}
	if !x.Since.IsZero() {
		a.Timestamps = &Timestamps{Start: x.Since.Unix()}
	}
	size := p.MaxPartySize
	if size < p.PartySize {
		size = p.PartySize
	}
	if p.PartyID != "" && p.PartySize > 0 {
		a.Party = &Party{ID: p.PartyID, Size: []int{p.PartySize, size}}
	}
	if p.PartySize > 1 {
		a.State = fmt.Sprintf("In a Party (%d of %d)", p.PartySize, size)
	} else {
		a.State = "Solo"
	}

	switch p.SessionLoopState {
	case domain.StateMenus:
		if strings.EqualFold(p.PartyState, "MATCHMAKING") {
			a.Details = "In Queue"
			if x.Mode != "" {
				a.Details += " - " + x.Mode
			}
		} else {
			a.Details = "In Menu"
		}
	case domain.StatePregame:
		a.Details = "Agent Select"
		if x.Mode != "" {
			a.Details += " - " + x.Mode
		}
		if x.MapImage != "" {
			a.Assets.LargeImage, a.Assets.LargeText = x.MapImage, x.MapName
		}
	case domain.StateIngame:
		a.Details = fmt.Sprintf("%s // %d-%d", x.Mode, p.AllyScore, p.EnemyScore)
		if x.MapImage != "" {
			a.Assets.LargeImage, a.Assets.LargeText = x.MapImage, x.MapName
		}
		if x.AgentImg != "" {
			a.Assets.SmallImage, a.Assets.SmallText = x.AgentImg, x.Agent
		}
	default:
		a.Details = "Idle"
	}
	return a
}
