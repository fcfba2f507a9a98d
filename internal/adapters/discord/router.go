package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/infra/config"
)

type Router struct {
	s       *discordgo.Session
	guildID string

	lobby        LobbySource
	cfg          func() config.Config
	adminRoleIDs []string
	limiter      *userLimiter
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	lobby LobbySource,
	cfg func() config.Config,
	adminRoleIDs []string,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		lobby:        lobby,
		cfg:          cfg,
		adminRoleIDs: adminRoleIDs,
		limiter:      newUserLimiter(3 * time.Second),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		}
	})
	r.s.AddHandler(func(s *discordgo.Session, ready *discordgo.Ready) {
		log.Info().Str("user", ready.User.Username).Msg("discord bot ready")
	})
}
