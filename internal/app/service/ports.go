package service

import (
	"context"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

// Lo implementa internal/infra/storage.RatingRepo
type RatingStore interface {
	Get(ctx context.Context, userID string) (domain.PlayerRating, error)
	GetMany(ctx context.Context, userIDs []string) ([]domain.PlayerRating, error)
	Find(ctx context.Context, userID string) (domain.PlayerRating, error)
	Set(ctx context.Context, userID string, rating int, matches *int) (domain.PlayerRating, error)
	Update(ctx context.Context, userIDs []string, fn func([]domain.PlayerRating) []domain.PlayerRating) ([]domain.PlayerRating, error)
}

// Lo implementa internal/infra/storage.MatchRepo
type MatchStore interface {
	Get(ctx context.Context, matchID string) (domain.Match, error)
	Put(ctx context.Context, m domain.Match) error
}

// Lo implementa internal/infra/storage.CounterRepo
type MatchCounter interface {
	Next(ctx context.Context) (int, error)
}

// Lo implementa internal/adapters/discord.Platform. ChannelOccupants devuelve
// ErrChannelGone si el canal ya no existe.
type VoicePlatform interface {
	CreateTeamChannel(ctx context.Context, guildID, categoryID, name string, userLimit int) (string, error)
	MoveMember(ctx context.Context, guildID, userID, channelID string) error
	DeleteChannel(ctx context.Context, channelID string) error
	ChannelOccupants(ctx context.Context, guildID, channelID string) (int, error)
}

type Messenger interface {
	SendMessage(ctx context.Context, channelID, content string) error
}
