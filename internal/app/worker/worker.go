package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/app/service"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
)

// Lo implementa riot.Client
type PresenceSource interface {
	Presences(ctx context.Context) ([]domain.Presence, error)
}

// Lo implementa riotws.Client
type StateWaiter interface {
	WaitForStateChange(ctx context.Context, puuid string, current domain.GameState) (domain.GameState, error)
}

// Lo implementa service.LobbyService
type LobbyBuilder interface {
	Build(ctx context.Context, in service.LobbyInput) (service.LobbyResult, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context)
}

type PerformanceMode interface {
	PerformanceMode() bool
}

// Update es lo que recibe cada sink al final de una pasada.
type Update struct {
	Snapshot domain.Snapshot
	Loadout  *domain.MatchLoadout
	Presence *domain.PrivatePresence
	Config   config.Config
}

type Sink interface {
	Publish(ctx context.Context, u Update)
}

type SinkFunc func(ctx context.Context, u Update)

func (f SinkFunc) Publish(ctx context.Context, u Update) { f(ctx, u) }

type Option func(*Worker)

func WithWaiter(w StateWaiter) Option { return func(x *Worker) { x.waiter = w } }
func WithInvalidator(i Invalidator) Option { return func(x *Worker) { x.ranks = i } }
func WithPerformance(p PerformanceMode) Option { return func(x *Worker) { x.perf = p } }
func WithSinks(s ...Sink) Option { return func(x *Worker) { x.sinks = append(x.sinks, s...) } }

type Worker struct {
	self      string
	presences PresenceSource
	lobby     LobbyBuilder
	cfg       func() config.Config

	waiter StateWaiter
	ranks  Invalidator
	perf   PerformanceMode
	sinks  []Sink

	refresh chan struct{}

	idle, perfIdle, backoff, firstPoll time.Duration

	mu    sync.RWMutex
	state domain.GameState
	last  domain.Snapshot
	first bool
}

func New(self string, presences PresenceSource, lobby LobbyBuilder, cfg func() config.Config, opts ...Option) *Worker {
	w := &Worker{
		self:      self,
		presences: presences,
		lobby:     lobby,
		cfg:       cfg,
		refresh:   make(chan struct{}, 1),
		idle:      2 * time.Second,
		perfIdle:  4 * time.Second,
		backoff:   5 * time.Second,
		firstPoll: 2 * time.Second,
		first:     true,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Refresh fuerza una pasada sin esperar cambio de estado.
func (w *Worker) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

func (w *Worker) State() domain.GameState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Last devuelve la última snapshot publicada.
func (w *Worker) Last() domain.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

// Run corre hasta que se cancela ctx. Un error de pasada nunca lo corta.
func (w *Worker) Run(ctx context.Context) error {
	for {
		pause := w.idle
		if w.perf != nil && w.perf.PerformanceMode() {
			pause = w.perfIdle
		}
		if err := w.Pass(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error().Err(err).Msg("worker pass")
			pause = w.backoff
		}
		if !sleep(ctx, pause) {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Pass: espera el próximo estado, arma la snapshot y la reparte.
func (w *Worker) Pass(ctx context.Context) error {
	prev := w.State()
	var (
		next domain.GameState
		err  error
	)
	if w.isFirst() {
		next, err = w.firstState(ctx)
	} else {
		next, err = w.wait(ctx, prev)
	}
	if err != nil {
		return err
	}
	w.setState(next)
	if prev != next {
		log.Info().Str("from", string(prev)).Str("to", string(next)).Msg("game state")
	}
	if prev != "" && prev != next && next == domain.StateMenus && w.ranks != nil {
		w.ranks.Invalidate(ctx)
	}

	presences, err := w.presences.Presences(ctx)
	if err != nil {
		return fmt.Errorf("presences: %w", err)
	}
	cfg := w.cfg()
	res, err := w.lobby.Build(ctx, service.LobbyInput{
		State:     next,
		Self:      w.self,
		Presences: presences,
		Config:    cfg,
	})
	if err != nil {
		return fmt.Errorf("build %s: %w", next, err)
	}

	w.mu.Lock()
	w.last = res.Snapshot
	w.mu.Unlock()

	u := Update{Snapshot: res.Snapshot, Loadout: res.Loadout, Presence: domain.Own(presences, w.self), Config: cfg}
	for _, s := range w.sinks {
		s.Publish(ctx, u)
	}
	return nil
}

func (w *Worker) isFirst() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.first
}

func (w *Worker) setState(s domain.GameState) {
	w.mu.Lock()
	w.state, w.first = s, false
	w.mu.Unlock()
}

// firstState hace polling hasta que la presencia propia tenga estado.
func (w *Worker) firstState(ctx context.Context) (domain.GameState, error) {
	for {
		ps, err := w.presences.Presences(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("presences")
		} else if own := domain.Own(ps, w.self); own != nil && own.SessionLoopState != domain.StateUnknown {
			log.Info().Str("state", string(own.SessionLoopState)).Msg("first game state")
			return own.SessionLoopState, nil
		}
		if !sleep(ctx, w.firstPoll) {
			return "", ctx.Err()
		}
	}
}

var errNoWaiter = errors.New("no local websocket")

// wait vuelve con el nuevo estado, o con el mismo si se pidió Refresh.
func (w *Worker) wait(ctx context.Context, current domain.GameState) (domain.GameState, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		state domain.GameState
		err   error
	}
	ch := make(chan result, 1)
	if w.waiter != nil {
		go func() {
			s, err := w.waiter.WaitForStateChange(wctx, w.self, current)
			ch <- result{s, err}
		}()
	} else {
		ch <- result{err: errNoWaiter}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-w.refresh:
		return current, nil
	case r := <-ch:
		if r.err == nil {
			return r.state, nil
		}
		if !errors.Is(r.err, errNoWaiter) {
			log.Warn().Err(r.err).Msg("local websocket, polling presences")
		}
	}
	return w.poll(ctx, current)
}

// poll consulta presencias cada cooldown segundos.
func (w *Worker) poll(ctx context.Context, current domain.GameState) (domain.GameState, error) {
	every := time.Duration(w.cfg().Cooldown) * time.Second
	if every <= 0 {
		every = w.firstPoll
	}
	for {
		t := time.NewTimer(every)
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-w.refresh:
			t.Stop()
			return current, nil
		case <-t.C:
		}
		ps, err := w.presences.Presences(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("presences")
			continue
		}
		if own := domain.Own(ps, w.self); own != nil && own.SessionLoopState != domain.StateUnknown && own.SessionLoopState != current {
			return own.SessionLoopState, nil
		}
	}
}
