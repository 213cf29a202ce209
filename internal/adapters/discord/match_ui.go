package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

// postMatch publica el embed de equipos y, aparte, el prompt con los botones de voto.
func (r *Router) postMatch(channelID string, res service.PlayResult) error {
	if _, err := r.s.ChannelMessageSendEmbed(channelID, teamsEmbed(res)); err != nil {
		return err
	}
	_, err := r.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("📊 **Match #%d** — vote your result below:", res.Match.Number),
		Components: []discordgo.MessageComponent{voteButtons(res.Match.ID)},
	})
	return err
}

func teamsEmbed(res service.PlayResult) *discordgo.MessageEmbed {
	field := func(n int, ps []domain.PlayerRating) *discordgo.MessageEmbedField {
		var b strings.Builder
		sum := 0
		for _, p := range ps {
			fmt.Fprintf(&b, "- <@%s> (%d)\n", p.UserID, p.Rating)
			sum += p.Rating
		}
		return &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Team %d — %d", n, sum),
			Value:  b.String(),
			Inline: true,
		}
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 Teams created! (Match #%d)", res.Match.Number),
		Description: "Temporary voice channels: " + mentionChannels(res.Channel1ID, res.Channel2ID),
		Color:       0x3498db,
		Fields:      []*discordgo.MessageEmbedField{field(1, res.Team1), field(2, res.Team2)},
	}
}

func mentionChannels(ids ...string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, "<#"+id+">")
	}
	return strings.Join(out, " ")
}

func voteButtons(matchID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Style:    discordgo.SuccessButton,
				Label:    "I won",
				CustomID: voteCustomID(matchID, domain.VoteWin),
				Emoji:    &discordgo.ComponentEmoji{Name: "🏆"},
			},
			discordgo.Button{
				Style:    discordgo.DangerButton,
				Label:    "I lost",
				CustomID: voteCustomID(matchID, domain.VoteLose),
				Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
			},
			discordgo.Button{
				Style:    discordgo.SecondaryButton,
				Label:    "Contact staff",
				CustomID: staffCustomID(matchID),
				Emoji:    &discordgo.ComponentEmoji{Name: "🆘"},
			},
		},
	}
}
