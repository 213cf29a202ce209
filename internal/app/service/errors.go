package service

import (
	"errors"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

var (
	ErrNotInVoice       = errors.New("caller is not in a voice channel")
	ErrNotGameChannel   = errors.New("voice channel is not a game channel")
	ErrNotEnoughPlayers = domain.ErrNotEnoughPlayers
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchLocked      = errors.New("match is locked")
	ErrNotParticipant   = errors.New("voter is not part of the match")
	ErrInvalidVote      = errors.New("invalid vote")
	ErrChannelGone      = errors.New("channel no longer exists")
)

var rejections = []struct {
	err error
	msg string
}{
	{ErrNotInVoice, "❌ You must be in a voice channel to start a match."},
	{ErrNotGameChannel, "❌ This voice channel is not an allowed game channel."},
	{ErrNotEnoughPlayers, "❌ At least 2 players are needed to start a match."},
	{ErrMatchNotFound, "❌ Match not found."},
	{ErrMatchLocked, "⛔ Match already locked."},
	{ErrNotParticipant, "❌ You are not part of this match."},
	{ErrInvalidVote, "❌ Invalid vote."},
}

// RejectionMessage traduce los errores de validación de usuario al texto efímero.
// ok=false significa que es un error real (storage, plataforma).
func RejectionMessage(err error) (string, bool) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.msg, true
		}
	}
	return "", false
}
