package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
	"github.com/jose-valero/inhouse-elo-bot/internal/infra/storage"
)

// PlayInput es lo que el router junta del comando /play y del estado de voz.
type PlayInput struct {
	GuildID        string
	InteractionID  string // pasa a ser el matchID
	CallerID       string
	VoiceChannelID string // "" si el caller no está en voz
	Members        []string
}

type PlayResult struct {
	Match      domain.Match
	Team1      []domain.PlayerRating
	Team2      []domain.PlayerRating
	Channel1ID string
	Channel2ID string
	CategoryID string
}

type VoteInput struct {
	MatchID   string
	VoterID   string
	Choice    domain.Vote
	ChannelID string // canal donde se anuncia el resultado
}

type VoteResult struct {
	Match   domain.Match
	Verdict domain.Verdict
	Reply   string
}

type EscalateInput struct {
	MatchID     string
	RequesterID string
}

type MatchService struct {
	ratings *RatingService
	matches MatchStore
	counter MatchCounter
	voice   VoicePlatform
	msg     Messenger
	cleanup *CleanupService
	games   map[string]string // canal de voz de juego -> categoría donde van las salas
	staffCh string
	rng     *rand.Rand
	log     *logrus.Entry
}

func NewMatchService(
	ratings *RatingService,
	matches MatchStore,
	counter MatchCounter,
	voice VoicePlatform,
	msg Messenger,
	cleanup *CleanupService,
	games map[string]string,
	staffChannelID string,
	rng *rand.Rand,
	log *logrus.Entry,
) *MatchService {
	return &MatchService{
		ratings: ratings,
		matches: matches,
		counter: counter,
		voice:   voice,
		msg:     msg,
		cleanup: cleanup,
		games:   games,
		staffCh: staffChannelID,
		rng:     rng,
		log:     log,
	}
}

// Play arma los equipos, registra el match con un número nuevo y recién
// después crea las salas temporales y mueve a los jugadores. Si falla el
// storage nadie se movió; un número de match salteado está permitido.
func (s *MatchService) Play(ctx context.Context, in PlayInput) (PlayResult, error) {
	if in.VoiceChannelID == "" {
		return PlayResult{}, ErrNotInVoice
	}
	categoryID, ok := s.games[in.VoiceChannelID]
	if !ok {
		return PlayResult{}, ErrNotGameChannel
	}
	if len(in.Members) < 2 {
		return PlayResult{}, ErrNotEnoughPlayers
	}

	rated, err := s.ratings.Ratings(ctx, in.Members)
	if err != nil {
		return PlayResult{}, err
	}
	players := make([]domain.RatedPlayer, 0, len(rated))
	byID := make(map[string]domain.PlayerRating, len(rated))
	for _, p := range rated {
		players = append(players, domain.RatedPlayer{UserID: p.UserID, Rating: p.Rating})
		byID[p.UserID] = p
	}
	team1, team2, err := domain.Balance(players, s.rng)
	if err != nil {
		return PlayResult{}, err
	}

	number, err := s.counter.Next(ctx)
	if err != nil {
		return PlayResult{}, err
	}
	m, err := domain.NewMatch(in.InteractionID, number, team1, team2)
	if err != nil {
		return PlayResult{}, err
	}
	if err := s.matches.Put(ctx, m); err != nil {
		return PlayResult{}, err
	}
	log := s.log.WithFields(logrus.Fields{"match": m.ID, "number": m.Number})

	res := PlayResult{Match: m, CategoryID: categoryID}
	for i, team := range [][]string{team1, team2} {
		name := fmt.Sprintf("Team %d - %d", i+1, len(team))
		chID, err := s.voice.CreateTeamChannel(ctx, in.GuildID, categoryID, name, len(team))
		if err != nil {
			// las salas ya creadas quedan trackeadas y las borra el cleanup
			log.WithError(err).Error("❌ [rooms] create")
			return PlayResult{}, fmt.Errorf("create %s: %w", name, err)
		}
		s.cleanup.Track(in.GuildID, chID)
		if i == 0 {
			res.Channel1ID = chID
		} else {
			res.Channel2ID = chID
		}
		for _, uid := range team {
			if err := s.voice.MoveMember(ctx, in.GuildID, uid, chID); err != nil {
				log.WithError(err).WithFields(logrus.Fields{"user": uid, "channel": chID}).Warn("[rooms] move")
			}
		}
	}

	for _, uid := range team1 {
		res.Team1 = append(res.Team1, byID[uid])
	}
	for _, uid := range team2 {
		res.Team2 = append(res.Team2, byID[uid])
	}

	log.WithFields(logrus.Fields{"players": len(in.Members), "by": in.CallerID}).Info("[match] created")
	return res, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (domain.Match, error) {
	m, err := s.matches.Get(ctx, matchID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Match{}, ErrMatchNotFound
	}
	return m, err
}

// Lookup es de sólo lectura (superficie HTTP).
func (s *MatchService) Lookup(ctx context.Context, matchID string) (domain.Match, error) {
	return s.getMatch(ctx, matchID)
}

// Vote registra el voto (last-write-wins) y evalúa el match. Un match
// bloqueado (resuelto o en conflicto) no acepta más votos.
func (s *MatchService) Vote(ctx context.Context, in VoteInput) (VoteResult, error) {
	if !in.Choice.Valid() {
		return VoteResult{}, ErrInvalidVote
	}
	m, err := s.getMatch(ctx, in.MatchID)
	if err != nil {
		return VoteResult{}, err
	}
	if m.Locked {
		return VoteResult{}, ErrMatchLocked
	}
	if m.TeamOf(in.VoterID) == 0 {
		return VoteResult{}, ErrNotParticipant
	}

	m.Votes[in.VoterID] = in.Choice
	if err := s.matches.Put(ctx, m); err != nil {
		return VoteResult{}, err
	}

	v := m.Evaluate()
	res := VoteResult{Match: m, Verdict: v, Reply: "✅ Vote recorded."}
	switch v.State {
	case domain.StateResolved:
		if err := s.finalize(ctx, &m, v.Winner, in.ChannelID); err != nil {
			return VoteResult{}, err
		}
	case domain.StateConflict:
		m.Locked = true
		if err := s.matches.Put(ctx, m); err != nil {
			return VoteResult{}, err
		}
		s.log.WithFields(logrus.Fields{"match": m.ID, "number": m.Number}).Warn("[match] conflict")
		s.send(ctx, in.ChannelID, "⚠️ Conflict detected — a staff member must step in.")
		s.send(ctx, s.staffCh, fmt.Sprintf("⚠️ **Match #%d** — conflict: both teams claimed the win\n%s", m.Number, rosters(m)))
	}
	res.Match = m
	return res, nil
}

// finalize: lock + winner se persisten antes de aplicar ratings.
func (s *MatchService) finalize(ctx context.Context, m *domain.Match, winner int, channelID string) error {
	m.Locked = true
	m.Winner = winner
	if err := s.matches.Put(ctx, *m); err != nil {
		return err
	}
	loser := 3 - winner
	if _, _, err := s.ratings.ApplyResult(ctx, m.Team(winner), m.Team(loser)); err != nil {
		s.log.WithError(err).WithField("match", m.ID).Error("[match] ratings not applied")
		s.send(ctx, s.staffCh, fmt.Sprintf("❗ **Match #%d** — Team %d won but ratings were not applied (%v). Fix them with /setelo.\n%s", m.Number, winner, err, rosters(*m)))
		return err
	}
	s.log.WithFields(logrus.Fields{"match": m.ID, "number": m.Number, "winner": winner}).Info("[match] resolved")
	s.send(ctx, channelID, fmt.Sprintf("🏆 **Team %d wins!**\nRatings updated.", winner))
	return nil
}

// Escalate avisa al staff en cualquier estado del match; no lo modifica.
func (s *MatchService) Escalate(ctx context.Context, in EscalateInput) (string, error) {
	m, err := s.getMatch(ctx, in.MatchID)
	if err != nil {
		return "", err
	}
	alert := fmt.Sprintf("⚠️ **Match #%d** — assistance requested by <@%s>\n%s", m.Number, in.RequesterID, rosters(m))
	if s.staffCh == "" {
		return "", errors.New("staff channel not configured")
	}
	if err := s.msg.SendMessage(ctx, s.staffCh, alert); err != nil {
		return "", fmt.Errorf("notify staff: %w", err)
	}
	return "🆘 Staff called, match on hold.", nil
}

func (s *MatchService) send(ctx context.Context, channelID, content string) {
	if channelID == "" {
		return
	}
	if err := s.msg.SendMessage(ctx, channelID, content); err != nil {
		s.log.WithError(err).WithField("channel", channelID).Warn("[match] send message")
	}
}

func rosters(m domain.Match) string {
	return fmt.Sprintf("**Team 1:** %s\n**Team 2:** %s", mentions(m.Team1), mentions(m.Team2))
}

func mentions(ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, "<@"+id+">")
	}
	return strings.Join(out, ", ")
}
