package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/adapters/discord"
	"github.com/jose-valero/vry/internal/adapters/overlay"
	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/adapters/riotws"
	"github.com/jose-valero/vry/internal/adapters/rpc"
	"github.com/jose-valero/vry/internal/adapters/valapi"
	"github.com/jose-valero/vry/internal/app/service"
	"github.com/jose-valero/vry/internal/app/worker"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/cache"
	"github.com/jose-valero/vry/internal/infra/config"
	"github.com/jose-valero/vry/internal/infra/logging"
	"github.com/jose-valero/vry/internal/infra/storage"
	"github.com/jose-valero/vry/internal/infra/sysmon"
	"github.com/jose-valero/vry/internal/infra/telemetry"
	"github.com/jose-valero/vry/internal/ui"
)

const (
	encounterMaxAge = 30 * 24 * time.Hour
	clientRetry     = 5 * time.Second
)

func runApp(ctx context.Context) error {
	env := config.LoadEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if runConfig {
		next, start, err := configure(cfg)
		if err != nil || !start {
			return err
		}
		cfg = next
	}

	ring := logging.NewRing(500)
	var accessLog io.Writer = ring
	if headless {
		logging.SetupStderr(2)
		accessLog = os.Stderr
	} else {
		logging.Setup(ring, 2, false)
	}

	shutdownTrace, err := telemetry.Setup(ctx, env.TraceFile, version)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = shutdownTrace(context.Background()) }()

	// DB
	db, err := storage.Open(ctx, env.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	encounters := service.NewEncounterService(storage.NewEncounterRepo(db))
	settingsSvc := service.NewSettingsService(storage.NewSettingsRepo(db))
	if n, err := encounters.Prune(ctx, encounterMaxAge); err != nil {
		log.Warn().Err(err).Msg("prune encounters")
	} else if n > 0 {
		log.Info().Int64("rows", n).Msg("old encounters pruned")
	}

	settings, err := settingsSvc.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("ui settings, using defaults")
		settings = service.DefaultUISettings()
	}
	if cfg.Theme != "" {
		settings.Theme = cfg.Theme
	}
	if verbosity >= 0 {
		settings.Verbosity = verbosity
	}
	logging.SetVerbosity(settings.Verbosity)

	store := rankCache(ctx, env.RedisAddr)

	cat, err := valapi.New().Load(ctx)
	if err != nil {
		return fmt.Errorf("valorant-api: %w", err)
	}
	normalize := func(c *config.Config) {
		c.NormalizeWeapon(cat.WeaponNames())
		if env.PortOverride > 0 {
			c.Port = env.PortOverride
		}
	}
	normalize(&cfg)
	cfgStore := config.NewStore(configPath, cfg)

	// Overlay
	var w *worker.Worker
	srv := overlay.New(version, settings.Theme,
		overlay.WithAccessLog(accessLog),
		overlay.WithSnapshot(func() any { return w.Last() }),
	)

	var program *tea.Program
	if !headless {
		model := ui.NewModel(ui.Deps{
			Config:   cfgStore.Get,
			Settings: settings,
			Refresh:  func() { w.Refresh() },
			Ring:     ring,
			OnSettings: func(s service.UISettings) {
				sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := settingsSvc.Save(sctx, s); err != nil {
					log.Error().Err(err).Msg("save ui settings")
				}
				if err := cfgStore.Update(func(c *config.Config) { c.Theme = s.Theme }); err != nil {
					log.Error().Err(err).Msg("save theme")
				}
				_ = srv.UpdateTheme(s.Theme)
			},
		})
		program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	}

	watcher, err := config.NewWatcher(cfgStore, func(c config.Config) {
		log.Info().Msg("config reloaded")
		if err := srv.UpdateTheme(c.Theme); err != nil {
			log.Debug().Err(err).Msg("overlay theme")
		}
		if program != nil {
			program.Send(ui.ConfigMsg(c))
		}
	}, config.WithNormalize(normalize))
	if err != nil {
		log.Warn().Err(err).Msg("config watcher")
	} else if err := watcher.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("config watcher")
	} else {
		defer watcher.Stop()
	}

	mon := sysmon.New()
	if err := mon.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("resource monitor")
	}
	defer func() { _ = mon.Stop() }()

	// Riot
	rc, lock, err := connectRiot(ctx, cat.ClientVersion)
	if err != nil {
		return err
	}
	seasons := service.NewSeasonService(rc)
	if err := retry(ctx, func() error { return seasons.Load(ctx) }); err != nil {
		return err
	}
	ranks := service.NewRankService(rc, seasons, store)
	lobby := service.NewLobbyService(rc, cat, seasons, ranks, service.NewPlayerStatsService(rc), encounters)

	presence := rpc.New(cfg.RPCClientID)
	defer func() { _ = presence.Close() }()
	rpcSink := worker.RPCSink(presence)

	ws := riotws.New(lock.Port, lock.Password, riotws.WithPresenceHandler(func(p domain.PrivatePresence) {
		rpcSink.UpdatePresence(ctx, p)
	}), riotws.WithChatHandler(func(m domain.ChatMessage) {
		if !cfgStore.Get().FeatureFlag("game_chat") {
			return
		}
		if err := srv.SendPayload("chat", m); err != nil {
			log.Debug().Err(err).Msg("overlay chat")
		}
		if program != nil {
			program.Send(ui.ChatMsg(m))
		}
	}))

	sinks := []worker.Sink{worker.OverlaySink(srv), rpcSink}
	if env.DiscordWebhook != "" {
		if n, err := newNotifier(env.DiscordWebhook); err != nil {
			log.Warn().Err(err).Msg("discord webhook")
		} else {
			sinks = append(sinks, worker.SinkFunc(func(ctx context.Context, u worker.Update) { n.Notify(ctx, u.Snapshot) }))
		}
	}

	if program != nil {
		sinks = append(sinks, worker.SinkFunc(func(_ context.Context, u worker.Update) {
			program.Send(ui.SnapshotMsg(u.Snapshot))
		}))
	} else {
		sinks = append(sinks, worker.SinkFunc(func(_ context.Context, u worker.Update) {
			ui.PrintSnapshot(os.Stdout, u.Snapshot, u.Config)
		}))
	}

	w = worker.New(rc.PUUID(), rc, lobby, cfgStore.Get,
		worker.WithWaiter(ws),
		worker.WithInvalidator(ranks),
		worker.WithPerformance(mon),
		worker.WithSinks(sinks...),
	)

	// el server arranca recién con w listo: /api/snapshot lo usa
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
		log.Info().Str("addr", addr).Msg("overlay server")
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("overlay server")
		}
	}()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	if env.DiscordToken != "" {
		bot, err := startBot(env, w, cfgStore.Get)
		if err != nil {
			log.Error().Err(err).Msg("discord bot")
		} else {
			defer bot.Close()
		}
	}

	if headless {
		return w.Run(ctx)
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := w.Run(wctx); err != nil {
			log.Error().Err(err).Msg("worker")
		}
	}()
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func configure(cfg config.Config) (config.Config, bool, error) {
	m, err := tea.NewProgram(ui.NewConfigurator(cfg, func(c config.Config) error {
		return config.Save(configPath, c)
	})).Run()
	if err != nil {
		return cfg, false, err
	}
	next, start := m.(ui.Configurator).Result()
	return next, start, nil
}

func rankCache(ctx context.Context, redisAddr string) cache.Store {
	if redisAddr == "" {
		return cache.NewMemory()
	}
	r, err := cache.NewRedis(ctx, redisAddr, "vry:mmr:")
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using memory cache")
		return cache.NewMemory()
	}
	return r
}

// retry reintenta fn cada clientRetry hasta que funcione o se cancele ctx.
func retry(ctx context.Context, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Msg("retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(clientRetry):
		}
	}
}

// connectRiot espera el lockfile y el log del juego y autentica.
func connectRiot(ctx context.Context, clientVersion string) (*riot.Client, riot.Lockfile, error) {
	log.Info().Msg("waiting for VALORANT")
	var (
		lock          riot.Lockfile
		region, shard string
	)
	err := retry(ctx, func() (err error) {
		if lock, err = riot.ReadLockfile(riot.DefaultLockfilePath()); err != nil {
			return err
		}
		region, shard, err = riot.ReadRegion(riot.DefaultLogPath())
		return err
	})
	if err != nil {
		return nil, lock, err
	}
	rc := riot.New(lock, region, shard,
		riot.WithClientVersion(clientVersion),
		riot.WithTracer(telemetry.Tracer("vry/riot")),
	)
	if err := retry(ctx, func() error { return rc.Authenticate(ctx) }); err != nil {
		return nil, lock, err
	}
	log.Info().Str("region", region).Str("shard", shard).Str("puuid", rc.PUUID()).Msg("connected to riot client")
	return rc, lock, nil
}

func newNotifier(webhookURL string) (*discord.Notifier, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	return discord.NewNotifier(s, webhookURL)
}

func startBot(env config.Env, lobby discord.LobbySource, cfg func() config.Config) (*discordgo.Session, error) {
	auth := strings.TrimSpace(env.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	s, err := discordgo.New(auth)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	if err := s.Open(); err != nil {
		return nil, err
	}
	r := discord.NewRouter(s, env.DiscordGuild, lobby, cfg, env.DiscordAdminRoles)
	if err := r.Register(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("registering commands: %w", err)
	}
	r.Handlers()
	log.Info().Str("guild", env.DiscordGuild).Msg("discord commands registered")
	return s, nil
}
