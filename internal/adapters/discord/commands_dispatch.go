package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/app/service"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	uid := userID(ic)
	log.Info().Str("cmd", cmd.Name).Str("by", uid).Str("guild", ic.GuildID).Msg("slash")

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("cmd", cmd.Name).Msg("slash command")
			ReplyEphemeral(s, ic, "❌ Something went wrong.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	defer step("cmd." + cmd.Name)()

	if !r.limiter.Allow(uid) {
		ReplyEphemeral(s, ic, "⏳ Slow down a bit.")
		return
	}

	switch cmd.Name {
	case "lobby":
		short := r.cfg != nil && r.cfg().FeatureFlag("short_ranks")
		ReplyEphemeral(s, ic, LobbyBlock(r.lobby.Last(), short), refreshButton())

	case "vtl":
		account, _ := optStr(ic, "account")
		link, err := service.VTLURL(account)
		if errors.Is(err, service.ErrInvalidAccount) {
			ReplyEphemeral(s, ic, "⚠️ Use `Name#Tag` or a PUUID.")
			return
		}
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, link)
	}
}
