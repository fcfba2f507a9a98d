package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/adapters/valapi"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
)

// fetchLimit acota las llamadas de rank/stats en paralelo.
const fetchLimit = 5

type LobbyService struct {
	match      MatchAPI
	seasons    *SeasonService
	ranks      *RankService
	stats      *PlayerStatsService
	parties    *PartyService
	loadouts   *LoadoutService
	encounters *EncounterService
	cat        *valapi.Catalog
	now        func() time.Time
}

// encounters puede ser nil (sin storage).
func NewLobbyService(match MatchAPI, cat *valapi.Catalog, seasons *SeasonService, ranks *RankService,
	stats *PlayerStatsService, encounters *EncounterService) *LobbyService {
	return &LobbyService{
		match:      match,
		seasons:    seasons,
		ranks:      ranks,
		stats:      stats,
		parties:    NewPartyService(),
		loadouts:   NewLoadoutService(cat),
		encounters: encounters,
		cat:        cat,
		now:        time.Now,
	}
}

type LobbyInput struct {
	State     domain.GameState
	Self      string
	Presences []domain.Presence
	Config    config.Config
}

// LobbyResult: Loadout sólo existe en PREGAME/INGAME.
type LobbyResult struct {
	Snapshot domain.Snapshot
	Loadout  *domain.MatchLoadout
}

func (s *LobbyService) Build(ctx context.Context, in LobbyInput) (LobbyResult, error) {
	own := domain.Own(in.Presences, in.Self)
	snap := domain.Snapshot{State: in.State, UpdatedAt: s.now()}
	if own != nil {
		snap.Mode = domain.ModeName(own.QueueID, own.ProvisioningFlow, own.PartyState)
	}

	switch in.State {
	case domain.StateIngame:
		return s.ingame(ctx, in, own, snap)
	case domain.StatePregame:
		return s.pregame(ctx, in, own, snap)
	case domain.StateMenus:
		return s.menus(ctx, in, snap)
	}
	return LobbyResult{Snapshot: snap}, nil
}

func (s *LobbyService) ingame(ctx context.Context, in LobbyInput, own *domain.PrivatePresence, snap domain.Snapshot) (LobbyResult, error) {
	matchID, err := s.match.CoregameMatchID(ctx, in.Self)
	if err != nil {
		return LobbyResult{}, fmt.Errorf("coregame match id: %w", err)
	}
	match, err := s.match.CoregameMatch(ctx, matchID)
	if err != nil {
		return LobbyResult{}, fmt.Errorf("coregame match: %w", err)
	}
	snap.MatchID = matchID
	snap.Server = domain.ServerName(match.GamePodID)
	snap.Map = s.mapName(match.MapID, own)

	players := slices.Clone(match.Players)
	slices.SortStableFunc(players, func(a, b domain.Player) int {
		return cmp.Compare(b.PlayerIdentity.AccountLevel, a.PlayerIdentity.AccountLevel)
	})
	slices.SortStableFunc(players, func(a, b domain.Player) int {
		return cmp.Compare(b.TeamID, a.TeamID)
	})

	allyTeam := ""
	for _, p := range players {
		if p.Subject == in.Self {
			allyTeam = p.TeamID
		}
	}

	var paired map[string]riot.Loadout
	if lo, err := s.match.CoregameLoadouts(ctx, matchID); err != nil {
		log.Warn().Err(err).Str("match", matchID).Msg("coregame loadouts")
	} else {
		paired = Pair(players, lo.Flat(), false)
	}

	rows, names := s.rows(ctx, in, players, allyTeam)
	if in.Config.TableFlag("skin") && paired != nil {
		skins := s.loadouts.Skins(paired, in.Config.Weapon)
		for i := range rows {
			if sk, ok := skins[rows[i].PUUID]; ok {
				rows[i].Skin, rows[i].SkinColor = sk.Name, sk.Color
			}
		}
	}
	s.lastSeen(ctx, in.Config, rows, matchID)
	snap.Rows = rows

	if s.encounters != nil {
		if err := s.encounters.Record(ctx, matchID, snap.Map, rows); err != nil {
			log.Error().Err(err).Msg("encounters")
		}
	}

	res := LobbyResult{Snapshot: snap}
	if paired != nil {
		ml := s.loadouts.MatchLoadout(players, paired, names, snap.Map, in.Config.FeatureFlag("hide_names"))
		res.Loadout = &ml
	}
	return res, nil
}

func (s *LobbyService) pregame(ctx context.Context, in LobbyInput, own *domain.PrivatePresence, snap domain.Snapshot) (LobbyResult, error) {
	matchID, err := s.match.PregameMatchID(ctx, in.Self)
	if err != nil {
		return LobbyResult{}, fmt.Errorf("pregame match id: %w", err)
	}
	match, err := s.match.PregameMatch(ctx, matchID)
	if err != nil {
		return LobbyResult{}, fmt.Errorf("pregame match: %w", err)
	}
	snap.MatchID = matchID
	snap.Server = domain.ServerName(match.GamePodID)
	snap.Map = s.mapName(match.MapID, own)

	players := slices.Clone(match.AllyTeam.Players)
	slices.SortStableFunc(players, func(a, b domain.Player) int {
		return cmp.Compare(b.PlayerIdentity.AccountLevel, a.PlayerIdentity.AccountLevel)
	})
	team := match.TeamID()
	for i := range players {
		if players[i].TeamID == "" {
			players[i].TeamID = team
		}
	}

	rows, names := s.rows(ctx, in, players, team)
	for i, p := range players {
		rows[i].AgentState = p.CharacterSelectionState
	}
	snap.Rows = rows

	res := LobbyResult{Snapshot: snap}
	if lo, err := s.match.PregameLoadouts(ctx, matchID); err != nil {
		log.Warn().Err(err).Str("match", matchID).Msg("pregame loadouts")
	} else {
		paired := Pair(players, lo.Loadouts, team == "Red")
		ml := s.loadouts.MatchLoadout(players, paired, names, snap.Map, in.Config.FeatureFlag("hide_names"))
		res.Loadout = &ml
	}
	return res, nil
}

func (s *LobbyService) menus(ctx context.Context, in LobbyInput, snap domain.Snapshot) (LobbyResult, error) {
	members := s.parties.PartyMembers(in.Self, in.Presences)
	if len(members) == 0 {
		// sin party visible: al menos uno mismo
		members = []domain.Player{{Subject: in.Self, PlayerIdentity: domain.PlayerIdentity{Subject: in.Self}}}
		if own := domain.Own(in.Presences, in.Self); own != nil {
			members[0].PlayerIdentity.AccountLevel = own.AccountLevel
		}
	}
	seen := map[string]bool{}
	players := members[:0:0]
	for _, m := range members {
		if seen[m.Subject] {
			continue
		}
		seen[m.Subject] = true
		players = append(players, m)
	}
	slices.SortStableFunc(players, func(a, b domain.Player) int {
		return cmp.Compare(b.PlayerIdentity.AccountLevel, a.PlayerIdentity.AccountLevel)
	})

	rows, _ := s.rows(ctx, in, players, "")
	for i := range rows {
		rows[i].Party = domain.NoParty
		if len(rows) > 1 {
			rows[i].Party = 0
			rows[i].IsParty = !rows[i].IsSelf
		}
	}
	s.lastSeen(ctx, in.Config, rows, "")
	snap.Rows = rows
	return LobbyResult{Snapshot: snap}, nil
}

// rows arma las filas en el orden de players y trae rank/stats en paralelo.
func (s *LobbyService) rows(ctx context.Context, in LobbyInput, players []domain.Player, allyTeam string) ([]domain.Row, map[string]string) {
	puuids := domain.PUUIDs(players)
	names, err := s.match.Names(ctx, puuids)
	if err != nil {
		log.Error().Err(err).Msg("names")
		names = map[string]string{}
	}

	icons := NewIconAssigner(s.parties.Parties(puuids, in.Presences))
	selfParty := map[string]bool{}
	for _, m := range s.parties.PartyMembers(in.Self, in.Presences) {
		selfParty[m.Subject] = true
	}

	current, previous := s.seasons.CurrentID(), s.seasons.PreviousID()
	wantPrev := in.Config.TableFlag("previousrank") && previous != ""
	opts := StatsOptions{
		HS:       in.Config.TableFlag("headshot_percent"),
		KD:       in.Config.TableFlag("kd"),
		EarnedRR: in.Config.TableFlag("earned_rr"),
	}

	rows := make([]domain.Row, len(players))
	for i, p := range players {
		rows[i] = domain.Row{
			PUUID:     p.Subject,
			Party:     icons.Icon(p.Subject),
			AgentID:   p.CharacterID,
			Agent:     s.cat.AgentName(p.CharacterID),
			Name:      names[p.Subject],
			Incognito: p.PlayerIdentity.Incognito,
			Team:      p.TeamID,
			AllyTeam:  allyTeam,
			IsSelf:    p.Subject == in.Self,
			IsParty:   p.Subject != in.Self && selfParty[p.Subject],
			Level:     p.PlayerIdentity.AccountLevel,
			HideLevel: p.PlayerIdentity.HideAccountLevel,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i := range rows {
		r := &rows[i]
		g.Go(func() error {
			info := s.ranks.Rank(gctx, r.PUUID, current)
			r.Rank = domain.RankCell{Tier: info.Tier, When: s.seasons.ActEpisode(current)}
			r.RR, r.Leader = info.RR, info.Leaderboard
			r.Peak = domain.RankCell{Tier: info.PeakTier, When: info.Peak}
			r.WinRate, r.Games = info.WinRate, info.Games
			if wantPrev {
				prev := s.ranks.Rank(gctx, r.PUUID, previous)
				r.Previous = domain.RankCell{Tier: prev.Tier, When: s.seasons.ActEpisode(previous)}
			}
			st, err := s.stats.Stats(gctx, r.PUUID, opts)
			if err != nil {
				log.Debug().Err(err).Str("puuid", r.PUUID).Msg("player stats")
				return nil
			}
			r.HS, r.KD, r.EarnedRR, r.AFKPenalty = st.HS, st.KD, st.EarnedRR, st.AFKPenalty
			return nil
		})
	}
	_ = g.Wait()
	return rows, names
}

func (s *LobbyService) lastSeen(ctx context.Context, cfg config.Config, rows []domain.Row, matchID string) {
	if s.encounters == nil || !cfg.FeatureFlag("last_played") {
		return
	}
	puuids := make([]string, 0, len(rows))
	for _, r := range rows {
		if !r.IsSelf {
			puuids = append(puuids, r.PUUID)
		}
	}
	seen, err := s.encounters.LastSeen(ctx, puuids, matchID)
	if err != nil {
		log.Error().Err(err).Msg("last seen")
		return
	}
	for i := range rows {
		rows[i].LastSeen = seen[rows[i].PUUID]
	}
}

func (s *LobbyService) mapName(mapID string, own *domain.PrivatePresence) string {
	if name := s.cat.MapName(mapID); name != "" {
		return name
	}
	if own != nil {
		return s.cat.MapName(own.MatchMap)
	}
	return ""
}
