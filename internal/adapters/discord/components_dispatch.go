package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()
	_ = DeferEphemeral(s, ic)

	switch data.CustomID {
	case componentRefresh:
		if !r.limiter.Allow(userID(ic)) {
			ReplyEphemeral(s, ic, "⏳ Slow down a bit.")
			return
		}
		// refrescar dispara llamadas a Riot: sólo admins
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		r.lobby.Refresh()
		log.Info().Str("by", userID(ic)).Msg("lobby refresh from discord")
		ReplyEphemeral(s, ic, "🔄 Refresh requested. Run `/lobby` again in a few seconds.")
	}
}
