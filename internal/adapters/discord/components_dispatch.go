package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()
	action, matchID, arg, ok := parseCustomID(data.CustomID)
	if !ok {
		return
	}
	log := r.log.WithFields(logrus.Fields{"component": action, "match": matchID, "by": ic.Member.User.ID})

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("panic in component %s: %v", data.CustomID, rec)
			ReplyEphemeral(s, ic, "❌ Unexpected error. Contact an administrator.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	if !r.clickLimiter.Allow(clickKey(action, ic.Member.User.ID, matchID)) {
		ReplyEphemeral(s, ic, "⏳ Wait a second…")
		return
	}

	switch action {
	case actionVote:
		defer step(log, "component.vote.total")()
		res, err := r.matches.Vote(ctx, service.VoteInput{
			MatchID:   matchID,
			VoterID:   ic.Member.User.ID,
			Choice:    domain.Vote(arg),
			ChannelID: ic.ChannelID,
		})
		if err != nil {
			r.replyErr(s, ic, log, err, "⚠️ Could not record the vote: ")
			return
		}
		ReplyEphemeral(s, ic, res.Reply)

	case actionStaff:
		msg, err := r.matches.Escalate(ctx, service.EscalateInput{MatchID: matchID, RequesterID: ic.Member.User.ID})
		if err != nil {
			r.replyErr(s, ic, log, err, "⚠️ Could not reach the staff: ")
			return
		}
		ReplyEphemeral(s, ic, msg)
	}
}

func (r *Router) replyErr(s *discordgo.Session, ic *discordgo.InteractionCreate, log *logrus.Entry, err error, prefix string) {
	if msg, ok := service.RejectionMessage(err); ok {
		ReplyEphemeral(s, ic, msg)
		return
	}
	log.WithError(err).Error("component failed")
	ReplyEphemeral(s, ic, prefix+err.Error())
}
