package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const DefaultWeapon = "Vandal"

// Config es el contenido de config.json.
type Config struct {
	Cooldown    int               `json:"cooldown"`
	Port        int               `json:"port"`
	Weapon      string            `json:"weapon"`
	ChatLimit   int               `json:"chat_limit"`
	Theme       string            `json:"theme"`
	Table       map[string]bool   `json:"table"`
	Flags       map[string]bool   `json:"flags"`
	RPCClientID string            `json:"rpc_client_id"`
	CustomTheme map[string]string `json:"custom_theme,omitempty"`
}

func defaultTable() map[string]bool {
	return map[string]bool{
		"skin":             true,
		"rr":               true,
		"peakrank":         true,
		"previousrank":     false,
		"leaderboard":      true,
		"headshot_percent": true,
		"winrate":          true,
		"kd":               false,
		"level":            true,
		"earned_rr":        true,
	}
}

func defaultFlags() map[string]bool {
	return map[string]bool{
		"last_played":           true,
		"auto_hide_leaderboard": true,
		"pre_cls":               false,
		"game_chat":             true,
		"peak_rank_act":         true,
		"discord_rpc":           true,
		"aggregate_rank_rr":     false,
		"short_ranks":           false,
		"server_id":             false,
	}
}

func Default() Config {
	return Config{
		Cooldown:  10,
		Port:      1100,
		Weapon:    DefaultWeapon,
		ChatLimit: 5,
		Theme:     "dark",
		Table:     defaultTable(),
		Flags:     defaultFlags(),
	}
}

// TableFlag y FeatureFlag caen al default si la clave no está.
func (c Config) TableFlag(key string) bool {
	if v, ok := c.Table[key]; ok {
		return v
	}
	return defaultTable()[key]
}

func (c Config) FeatureFlag(key string) bool {
	if v, ok := c.Flags[key]; ok {
		return v
	}
	return defaultFlags()[key]
}

// Clone copia los mapas para que el llamador pueda mutar sin carreras.
func (c Config) Clone() Config {
	out := c
	out.Table = make(map[string]bool, len(c.Table))
	for k, v := range c.Table {
		out.Table[k] = v
	}
	out.Flags = make(map[string]bool, len(c.Flags))
	for k, v := range c.Flags {
		out.Flags[k] = v
	}
	if c.CustomTheme != nil {
		out.CustomTheme = make(map[string]string, len(c.CustomTheme))
		for k, v := range c.CustomTheme {
			out.CustomTheme[k] = v
		}
	}
	return out
}

// Load lee path. Si no existe o es JSON inválido se escriben los defaults;
// si faltan claves se completan y se reescribe el archivo.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", path).Msg("config not found, creating new one")
		cfg := Default()
		return cfg, Save(path, cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, missing, err := parse(b)
	if err != nil {
		log.Warn().Err(err).Msg("invalid config, rewriting defaults")
		cfg = Default()
		return cfg, Save(path, cfg)
	}
	if len(missing) > 0 {
		log.Info().Strs("missing", missing).Msg("config is missing keys")
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Parse lee y valida path sin escribir nada; lo usa la recarga en caliente.
func Parse(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, _, err := parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// parse superpone b sobre Default y devuelve las claves que faltaban.
func parse(b []byte) (Config, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return Config{}, nil, err
	}
	cfg := Default()
	cfg.Table, cfg.Flags = nil, nil
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, nil, err
	}

	var missing []string
	for _, k := range []string{"cooldown", "port", "weapon", "chat_limit", "theme", "table", "flags", "rpc_client_id"} {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k, v := range defaultTable() {
		if _, ok := cfg.Table[k]; !ok {
			if cfg.Table == nil {
				cfg.Table = map[string]bool{}
			}
			cfg.Table[k] = v
			missing = append(missing, "table."+k)
		}
	}
	for k, v := range defaultFlags() {
		if _, ok := cfg.Flags[k]; !ok {
			if cfg.Flags == nil {
				cfg.Flags = map[string]bool{}
			}
			cfg.Flags[k] = v
			missing = append(missing, "flags."+k)
		}
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 10
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = 1100
	}
	return cfg, missing, nil
}

func Save(path string, cfg Config) error {
	b, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// NormalizeWeapon deja el arma configurada si existe en names, si no Vandal.
// Con names vacío (catálogo caído) no se toca.
func (c *Config) NormalizeWeapon(names []string) {
	if len(names) == 0 {
		return
	}
	for _, n := range names {
		if strings.EqualFold(n, c.Weapon) {
			c.Weapon = n
			return
		}
	}
	log.Warn().Str("weapon", c.Weapon).Msg("unknown weapon, falling back to Vandal")
	c.Weapon = DefaultWeapon
}

// Env son las variables de entorno (.env opcional).
type Env struct {
	DatabaseURL    string
	RedisAddr      string
	TraceFile      string
	DiscordToken   string
	DiscordGuild   string
	DiscordWebhook string
	// DISCORD_ADMIN_ROLE_IDS separados por coma
	DiscordAdminRoles []string
	PortOverride      int
}

func LoadEnv() Env {
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	env := Env{
		DatabaseURL:    get("VRY_DATABASE_URL", "vry.db"),
		RedisAddr:      get("VRY_REDIS_ADDR", ""),
		TraceFile:      get("VRY_TRACE", ""),
		DiscordToken:   get("DISCORD_BOT_TOKEN", ""),
		DiscordGuild:   get("DISCORD_GUILD_ID", ""),
		DiscordWebhook: get("DISCORD_WEBHOOK_URL", ""),
	}
	for _, id := range strings.Split(get("DISCORD_ADMIN_ROLE_IDS", ""), ",") {
		if id = strings.TrimSpace(id); id != "" {
			env.DiscordAdminRoles = append(env.DiscordAdminRoles, id)
		}
	}
	if p, err := strconv.Atoi(get("VRY_PORT", "")); err == nil && p > 0 {
		env.PortOverride = p
	}
	return env
}

// Store guarda la config vigente; la recarga en caliente la reemplaza.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  Config
}

func NewStore(path string, cfg Config) *Store {
	return &Store{path: path, cfg: cfg}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

func (s *Store) Set(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg.Clone()
	s.mu.Unlock()
}

func (s *Store) Path() string { return s.path }

// Update aplica fn, guarda a disco y deja la nueva config.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cfg.Clone()
	fn(&next)
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.cfg = next
	return nil
}
