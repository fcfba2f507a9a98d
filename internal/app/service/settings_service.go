package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/jose-valero/vry/internal/infra/storage"
)

const (
	keyTheme            = "theme"
	keyIncognitoPrivacy = "incognito_privacy"
	keyVerbosity        = "verbosity"
	keyShowConsole      = "show_console"
)

// UISettings son las preferencias que cambian desde la TUI.
type UISettings struct {
	Theme            string
	IncognitoPrivacy bool
	Verbosity        int
	ShowConsole      bool
}

func DefaultUISettings() UISettings {
	return UISettings{Theme: "dark", IncognitoPrivacy: true, Verbosity: 2}
}

type SettingsService struct {
	repo SettingsRepo
}

func NewSettingsService(repo SettingsRepo) *SettingsService {
	return &SettingsService{repo: repo}
}

// Load parte de los defaults y pisa lo que esté guardado.
func (s *SettingsService) Load(ctx context.Context) (UISettings, error) {
	out := DefaultUISettings()
	all, err := s.repo.All(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return out, nil
		}
		return out, err
	}
	if v, ok := all[keyTheme]; ok && v != "" {
		out.Theme = v
	}
	if v, err := strconv.ParseBool(all[keyIncognitoPrivacy]); err == nil {
		out.IncognitoPrivacy = v
	}
	if v, err := strconv.Atoi(all[keyVerbosity]); err == nil && v >= 0 && v <= 3 {
		out.Verbosity = v
	}
	if v, err := strconv.ParseBool(all[keyShowConsole]); err == nil {
		out.ShowConsole = v
	}
	return out, nil
}

func (s *SettingsService) Save(ctx context.Context, u UISettings) error {
	kv := map[string]string{
		keyTheme:            u.Theme,
		keyIncognitoPrivacy: strconv.FormatBool(u.IncognitoPrivacy),
		keyVerbosity:        strconv.Itoa(u.Verbosity),
		keyShowConsole:      strconv.FormatBool(u.ShowConsole),
	}
	for k, v := range kv {
		if err := s.repo.Upsert(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}
