// lógica de InteractionApplicationCommand: sólo leemos la interacción y
// despachamos a los servicios
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	log := r.log.WithFields(logrus.Fields{"cmd": cmd.Name, "by": ic.Member.User.ID})
	log.Debug("slash command")

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("panic in cmd /%s: %v", cmd.Name, rec)
			ReplyEphemeral(s, ic, "❌ Unexpected error while running the command. Contact an administrator.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	switch cmd.Name {
	case "ping":
		ReplyEphemeral(s, ic, "🏓 Pong")

	case "elo":
		target := ic.Member.User
		if u, ok := optUser(s, ic, "user"); ok {
			target = u
		}
		msg, err := r.ratings.Describe(ctx, target.ID, displayName(ic, target))
		if err != nil {
			log.WithError(err).Error("describe rating")
			msg = "⚠️ Could not read the rating: " + err.Error()
		}
		ReplyEphemeral(s, ic, msg)

	case "play":
		defer step(log, "cmd.play.total")()
		r.play(ctx, s, ic, log)

	case "setelo":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		target, ok := optUser(s, ic, "user")
		rating, okRating := optInt(ic, "rating")
		if !ok || !okRating {
			ReplyEphemeral(s, ic, "Use `/setelo user:<player> rating:<value> [matches:<count>]`.")
			return
		}
		var matches *int
		if v, ok := optInt(ic, "matches"); ok {
			matches = &v
		}
		msg, err := r.ratings.Set(ctx, target.ID, displayName(ic, target), rating, matches)
		if err != nil {
			log.WithError(err).Error("set rating")
			msg = "⚠️ Could not update the rating: " + err.Error()
		}
		ReplyEphemeral(s, ic, msg)
	}
}

func (r *Router) play(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, log *logrus.Entry) {
	voiceID, members := r.voiceChannelOf(ic.GuildID, ic.Member.User.ID)
	res, err := r.matches.Play(ctx, service.PlayInput{
		GuildID:        ic.GuildID,
		InteractionID:  ic.ID,
		CallerID:       ic.Member.User.ID,
		VoiceChannelID: voiceID,
		Members:        members,
	})
	if err != nil {
		if msg, ok := service.RejectionMessage(err); ok {
			ReplyEphemeral(s, ic, msg)
			return
		}
		log.WithError(err).Error("play")
		ReplyEphemeral(s, ic, "⚠️ Could not start the match: "+err.Error())
		return
	}

	if err := r.postMatch(ic.ChannelID, res); err != nil {
		log.WithError(err).WithField("match", res.Match.ID).Error("post match prompt")
		ReplyEphemeral(s, ic, fmt.Sprintf("⚠️ Match #%d was created but the vote prompt could not be posted: %v", res.Match.Number, err))
		return
	}
	ReplyEphemeral(s, ic, fmt.Sprintf("✅ Match #%d created.", res.Match.Number))
}
