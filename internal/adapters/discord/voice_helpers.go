package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

func safeGetChannel(ctx context.Context, s *discordgo.Session, id string) (*discordgo.Channel, error) {
	if ch, err := s.State.Channel(id); err == nil && ch != nil {
		return ch, nil
	}
	ch, err := s.Channel(id, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	_ = s.State.ChannelAdd(ch)
	return ch, nil
}

// voiceChannelOf devuelve el canal de voz del usuario y quiénes están en él
// (incluido el usuario). "" si no está en voz.
func (r *Router) voiceChannelOf(guildID, userID string) (string, []string) {
	vs, err := r.s.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return "", nil
	}
	g, err := r.s.State.Guild(guildID)
	if err != nil {
		return vs.ChannelID, []string{userID}
	}
	r.s.State.RLock()
	defer r.s.State.RUnlock()
	members := make([]string, 0, 8)
	for _, other := range g.VoiceStates {
		if other.ChannelID == vs.ChannelID {
			members = append(members, other.UserID)
		}
	}
	return vs.ChannelID, members
}
