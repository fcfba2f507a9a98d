package riotws

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/domain"
)

const (
	opSubscribe = 5
	opEvent     = 8

	EventPresences = "OnJsonApiEvent_chat_v4_presences"
	EventMessages  = "OnJsonApiEvent_chat_v6_messages"
)

// Event es el tercer elemento de [8, name, {...}].
type Event struct {
	Name      string
	Data      json.RawMessage `json:"data"`
	EventType string          `json:"eventType"`
	URI       string          `json:"uri"`
}

// parseEvent devuelve ok=false para frames que no son eventos (vacíos, acks).
func parseEvent(b []byte) (Event, bool, error) {
	if len(b) == 0 {
		return Event{}, false, nil
	}
	var frame []json.RawMessage
	if err := json.Unmarshal(b, &frame); err != nil {
		return Event{}, false, fmt.Errorf("riotws frame: %w", err)
	}
	if len(frame) < 3 {
		return Event{}, false, nil
	}
	var op int
	if err := json.Unmarshal(frame[0], &op); err != nil || op != opEvent {
		return Event{}, false, nil
	}
	var ev Event
	if err := json.Unmarshal(frame[1], &ev.Name); err != nil {
		return Event{}, false, err
	}
	if err := json.Unmarshal(frame[2], &ev); err != nil {
		return Event{}, false, err
	}
	return ev, true, nil
}

type messageDTO struct {
	ID       string `json:"id"`
	PUUID    string `json:"puuid"`
	GameName string `json:"game_name"`
	GameTag  string `json:"game_tag"`
	Body     string `json:"body"`
	CID      string `json:"cid"`
	Type     string `json:"type"`
	Time     string `json:"time"`
}

func parseMessages(data []byte) ([]domain.ChatMessage, error) {
	var body struct {
		Messages []messageDTO `json:"messages"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	out := make([]domain.ChatMessage, 0, len(body.Messages))
	for _, m := range body.Messages {
		cm := domain.ChatMessage{
			ID: m.ID, PUUID: m.PUUID, GameName: m.GameName, GameTag: m.GameTag,
			Body: m.Body, CID: m.CID, Type: m.Type,
		}
		var ms int64
		if _, err := fmt.Sscan(m.Time, &ms); err == nil {
			cm.Time = time.UnixMilli(ms)
		}
		out = append(out, cm)
	}
	return out, nil
}

// ownPresence devuelve la presencia privada de puuid en el evento, o nil.
func ownPresence(data []byte, puuid string) *domain.PrivatePresence {
	presences, err := riot.ParsePresences(data)
	if err != nil {
		return nil
	}
	return domain.Own(presences, puuid)
}
