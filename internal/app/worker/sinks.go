package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/adapters/rpc"
	"github.com/jose-valero/vry/internal/domain"
)

// Lo implementa overlay.Hub
type PayloadSender interface {
	SendPayload(typ string, payload any) error
	UpdateLoadouts(payload any) error
}

type overlaySink struct {
	s PayloadSender

	mu          sync.Mutex
	hadLoadouts bool
}

// OverlaySink manda la tabla como "players" y los loadouts como "matchLoadout".
// Al salir de la partida limpia los loadouts guardados en el hub.
func OverlaySink(s PayloadSender) Sink {
	return &overlaySink{s: s}
}

func (o *overlaySink) Publish(_ context.Context, u Update) {
	if err := o.s.SendPayload("players", u.Snapshot); err != nil {
		log.Debug().Err(err).Msg("overlay players")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if u.Loadout == nil {
		if o.hadLoadouts {
			if err := o.s.UpdateLoadouts(map[string]any{}); err != nil {
				log.Debug().Err(err).Msg("overlay loadouts")
			}
			o.hadLoadouts = false
		}
		return
	}
	o.hadLoadouts = true
	if err := o.s.SendPayload("matchLoadout", u.Loadout); err != nil {
		log.Debug().Err(err).Msg("overlay matchLoadout")
	}
}

// Lo implementa rpc.Client
type ActivitySetter interface {
	SetActivity(ctx context.Context, a rpc.Activity) error
}

// RPCPublisher mantiene la Rich Presence; se apaga con flags.discord_rpc.
type RPCPublisher struct {
	client ActivitySetter
	now    func() time.Time

	mu    sync.Mutex
	state domain.GameState
	since time.Time
	last  *Update
}

func RPCSink(c ActivitySetter) *RPCPublisher {
	return &RPCPublisher{client: c, now: time.Now}
}

func (s *RPCPublisher) Publish(ctx context.Context, u Update) {
	s.mu.Lock()
	if u.Snapshot.State != s.state || s.since.IsZero() {
		s.state, s.since = u.Snapshot.State, s.now()
	}
	s.last = &u
	since := s.since
	s.mu.Unlock()
	s.set(ctx, u, since)
}

// UpdatePresence refresca el marcador entre pasadas del worker.
// Sólo actúa si la presencia sigue en el mismo estado y el marcador cambió.
func (s *RPCPublisher) UpdatePresence(ctx context.Context, p domain.PrivatePresence) {
	s.mu.Lock()
	if s.last == nil || p.SessionLoopState != s.state {
		s.mu.Unlock()
		return
	}
	if old := s.last.Presence; old != nil && old.AllyScore == p.AllyScore && old.EnemyScore == p.EnemyScore {
		s.mu.Unlock()
		return
	}
	u := *s.last
	u.Presence = &p
	s.last = &u
	since := s.since
	s.mu.Unlock()
	s.set(ctx, u, since)
}

func (s *RPCPublisher) set(ctx context.Context, u Update, since time.Time) {
	if !u.Config.FeatureFlag("discord_rpc") {
		return
	}
	x := rpc.Extra{Mode: u.Snapshot.Mode, MapName: u.Snapshot.Map, Since: since}
	if u.Snapshot.Map != "" {
		x.MapImage = assetKey(u.Snapshot.Map)
	}
	for _, r := range u.Snapshot.Rows {
		if r.IsSelf && r.Agent != "" {
			x.Agent, x.AgentImg = r.Agent, assetKey(r.Agent)
		}
	}
	err := s.client.SetActivity(ctx, rpc.BuildActivity(u.Presence, x))
	if err != nil && !errors.Is(err, rpc.ErrDisabled) {
		log.Debug().Err(err).Msg("discord rpc")
	}
}

// assetKey: "KAY/O" -> "kayo", "Abyss" -> "abyss".
func assetKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
