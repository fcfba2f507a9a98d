package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "lobby",
		Description: "Shows the current VALORANT lobby table",
	},
	{
		Name:        "vtl",
		Description: "Builds a vtl.lol link for an account",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "account",
			Description: "Name#Tag or PUUID",
			Required:    true,
		}},
	},
}
