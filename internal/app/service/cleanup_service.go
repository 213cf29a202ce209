package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// RoomGrace: una sala que nunca tuvo gente se borra recién pasado este tiempo.
const RoomGrace = 2 * time.Minute

type trackedRoom struct {
	guildID  string
	created  time.Time
	occupied bool // ya se vio al menos una persona adentro
}

// CleanupService lleva el set (en memoria, no persistido) de canales de voz
// temporales que creó el bot y los borra cuando quedan vacíos.
type CleanupService struct {
	voice   VoicePlatform
	tracked map[string]*trackedRoom // channelID -> sala
	now     func() time.Time
	log     *logrus.Entry
}

func NewCleanupService(voice VoicePlatform, log *logrus.Entry) *CleanupService {
	return &CleanupService{voice: voice, tracked: map[string]*trackedRoom{}, now: time.Now, log: log}
}

func (c *CleanupService) Track(guildID, channelID string) {
	c.tracked[channelID] = &trackedRoom{guildID: guildID, created: c.now()}
}

func (c *CleanupService) Tracked() []string {
	out := make([]string, 0, len(c.tracked))
	for id := range c.tracked {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Sweep corre en cada cambio de estado de voz, sin filtrar por canal.
// Canal inexistente → se deja de trackear sin borrar. Canal vacío → se borra
// si ya estuvo ocupado o si pasó RoomGrace desde que se creó; sólo si el
// borrado salió bien se deja de trackear (si no, se reintenta en el próximo evento).
func (c *CleanupService) Sweep(ctx context.Context) {
	for _, channelID := range c.Tracked() {
		room := c.tracked[channelID]

		n, err := c.voice.ChannelOccupants(ctx, room.guildID, channelID)
		if errors.Is(err, ErrChannelGone) {
			delete(c.tracked, channelID)
			continue
		}
		if err != nil {
			c.log.WithError(err).WithField("channel", channelID).Warn("[cleanup] cannot read channel")
			continue
		}
		if n > 0 {
			room.occupied = true
			continue
		}
		// los moves de /play todavía pueden estar llegando
		if !room.occupied && c.now().Sub(room.created) < RoomGrace {
			continue
		}
		if err := c.voice.DeleteChannel(ctx, channelID); err != nil {
			c.log.WithError(err).WithField("channel", channelID).Error("❌ [cleanup] delete temporary channel")
			continue
		}
		delete(c.tracked, channelID)
		c.log.WithField("channel", channelID).Info("✅ [cleanup] temporary channel deleted (empty)")
	}
}
