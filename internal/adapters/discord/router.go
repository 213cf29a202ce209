package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
)

type Router struct {
	s       *discordgo.Session
	guildID string
	log     *logrus.Entry

	ratings *service.RatingService
	matches *service.MatchService
	cleanup *service.CleanupService

	adminRoleIDs []string
	clickLimiter *clickLimiter
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	ratings *service.RatingService,
	matches *service.MatchService,
	cleanup *service.CleanupService,
	adminRoleIDs []string,
	log *logrus.Entry,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		log:          log,
		ratings:      ratings,
		matches:      matches,
		cleanup:      cleanup,
		adminRoleIDs: adminRoleIDs,
		clickLimiter: newClickLimiter(800 * time.Millisecond),
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
		if ic.GuildID != r.guildID || ic.Member == nil || ic.Member.User == nil {
			return
		}
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		}
	})

	// cualquier cambio de voz en el server dispara la limpieza de salas temporales
	r.s.AddHandler(func(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
		if vs.GuildID != r.guildID {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		r.cleanup.Sweep(ctx)
	})
}
