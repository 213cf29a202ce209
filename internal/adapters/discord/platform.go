package discord

import (
	"context"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
)

// Platform implementa service.VoicePlatform y service.Messenger sobre la sesión de Discord.
type Platform struct{ s *discordgo.Session }

func NewPlatform(s *discordgo.Session) *Platform { return &Platform{s: s} }

// CreateTeamChannel crea la sala de voz con límite = tamaño del equipo y sin Connect para @everyone.
func (p *Platform) CreateTeamChannel(ctx context.Context, guildID, categoryID, name string, userLimit int) (string, error) {
	ch, err := p.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:      name,
		Type:      discordgo.ChannelTypeGuildVoice,
		UserLimit: userLimit,
		ParentID:  categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{{
			ID:   guildID, // el rol @everyone tiene el mismo ID que el guild
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionVoiceConnect,
		}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (p *Platform) MoveMember(ctx context.Context, guildID, userID, channelID string) error {
	return p.s.GuildMemberMove(guildID, userID, &channelID, discordgo.WithContext(ctx))
}

func (p *Platform) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := p.s.ChannelDelete(channelID, discordgo.WithContext(ctx))
	return err
}

// ChannelOccupants cuenta los voice states del guild en ese canal.
func (p *Platform) ChannelOccupants(ctx context.Context, guildID, channelID string) (int, error) {
	if _, err := safeGetChannel(ctx, p.s, channelID); err != nil {
		if isUnknownChannel(err) {
			return 0, service.ErrChannelGone
		}
		return 0, err
	}
	g, err := p.s.State.Guild(guildID)
	if err != nil {
		return 0, err
	}
	p.s.State.RLock()
	defer p.s.State.RUnlock()
	n := 0
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (p *Platform) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := p.s.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

func isUnknownChannel(err error) bool {
	var re *discordgo.RESTError
	if !errors.As(err, &re) {
		return false
	}
	if re.Message != nil && re.Message.Code == discordgo.ErrCodeUnknownChannel {
		return true
	}
	return re.Response != nil && re.Response.StatusCode == http.StatusNotFound
}
