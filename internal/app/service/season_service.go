package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/domain"
)

// AscendantRelease: los actos que empezaron antes no tenían Ascendant.
var AscendantRelease = time.Date(2022, 6, 22, 0, 0, 0, 0, time.UTC)

type SeasonService struct {
	api SeasonAPI

	mu       sync.RWMutex
	current  string
	previous string
	acts     map[string]domain.ActEpisode
	before   map[string]bool
}

func NewSeasonService(api SeasonAPI) *SeasonService {
	return &SeasonService{api: api, acts: map[string]domain.ActEpisode{}, before: map[string]bool{}}
}

func (s *SeasonService) Load(ctx context.Context) error {
	seasons, err := s.api.Seasons(ctx)
	if err != nil {
		return err
	}
	s.apply(seasons)
	return nil
}

// apply recorre la lista en orden; cada acto hereda el último episodio visto.
func (s *SeasonService) apply(seasons []riot.Season) {
	acts := map[string]domain.ActEpisode{}
	before := map[string]bool{}
	var (
		current, previous, lastAct string
		episode, actInEpisode      int
	)
	for _, season := range seasons {
		switch strings.ToLower(season.Type) {
		case "episode":
			if n, ok := trailingNumber(season.Name); ok {
				episode = n
			} else {
				episode++
			}
			actInEpisode = 0
		case "act":
			actInEpisode++
			act := actInEpisode
			if n, ok := trailingNumber(season.Name); ok {
				act = n
			}
			acts[season.ID] = domain.ActEpisode{Act: act, Episode: episode}
			if t, err := time.Parse(time.RFC3339, season.StartTime); err == nil {
				before[season.ID] = t.Before(AscendantRelease)
			}
			if season.IsActive {
				current = season.ID
				previous = lastAct
			}
			lastAct = season.ID
		}
	}
	s.mu.Lock()
	s.acts, s.before, s.current, s.previous = acts, before, current, previous
	s.mu.Unlock()
}

var roman = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10}

// trailingNumber lee "EPISODE 9", "ACT 3" o "ACT IV".
func trailingNumber(name string) (int, bool) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return 0, false
	}
	last := strings.ToUpper(fields[len(fields)-1])
	if n, err := strconv.Atoi(last); err == nil {
		return n, true
	}
	if n, ok := roman[last]; ok {
		return n, true
	}
	return 0, false
}

func (s *SeasonService) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SeasonService) PreviousID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.previous
}

func (s *SeasonService) ActEpisode(actID string) domain.ActEpisode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acts[actID]
}

func (s *SeasonService) BeforeAscendant(actID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.before[actID]
}
