package discord

import "github.com/bwmarrin/discordgo"

var adminPerm int64 = discordgo.PermissionAdministrator

var minMatches float64 = 0

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Check that the bot is alive",
	},
	{
		Name:        "elo",
		Description: "Show a player's rating (yours by default)",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Player to look up",
		}},
	},
	{
		Name:        "play",
		Description: "Balance the players in your game voice channel into two teams",
	},
	{
		Name:                     "setelo",
		Description:              "Overwrite a player's rating (admins)",
		DefaultMemberPermissions: &adminPerm,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Player", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "rating", Description: "New rating", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "matches", Description: "Matches played", MinValue: &minMatches},
		},
	},
}
