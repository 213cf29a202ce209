package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

const (
	actionVote  = "match_vote"
	actionStaff = "match_staff"
)

// custom_id: "match_vote:<matchID>:<win|lose>" o "match_staff:<matchID>"
func voteCustomID(matchID string, v domain.Vote) string {
	return actionVote + ":" + matchID + ":" + string(v)
}

func staffCustomID(matchID string) string {
	return actionStaff + ":" + matchID
}

func parseCustomID(id string) (action, matchID, arg string, ok bool) {
	parts := strings.Split(id, ":")
	switch {
	case len(parts) == 3 && parts[0] == actionVote && parts[1] != "":
		return parts[0], parts[1], parts[2], true
	case len(parts) == 2 && parts[0] == actionStaff && parts[1] != "":
		return parts[0], parts[1], "", true
	}
	return "", "", "", false
}

func findOpt(ic *discordgo.InteractionCreate, name string) *discordgo.ApplicationCommandInteractionDataOption {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func optInt(ic *discordgo.InteractionCreate, name string) (int, bool) {
	o := findOpt(ic, name)
	if o == nil || o.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return int(o.IntValue()), true
}

func optUser(s *discordgo.Session, ic *discordgo.InteractionCreate, name string) (*discordgo.User, bool) {
	o := findOpt(ic, name)
	if o == nil || o.Type != discordgo.ApplicationCommandOptionUser {
		return nil, false
	}
	u := o.UserValue(s)
	return u, u != nil && u.ID != ""
}

// displayName: apodo en el server > nombre global > username.
func displayName(ic *discordgo.InteractionCreate, u *discordgo.User) string {
	if ic.Member != nil && ic.Member.User != nil && ic.Member.User.ID == u.ID && ic.Member.Nick != "" {
		return ic.Member.Nick
	}
	if ic.Type == discordgo.InteractionApplicationCommand {
		if res := ic.ApplicationCommandData().Resolved; res != nil {
			if m, ok := res.Members[u.ID]; ok && m.Nick != "" {
				return m.Nick
			}
		}
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
