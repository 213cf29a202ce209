package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

type RatingService struct {
	ratings RatingStore
	log     *logrus.Entry
}

func NewRatingService(ratings RatingStore, log *logrus.Entry) *RatingService {
	return &RatingService{ratings: ratings, log: log}
}

// Describe crea el registro por default si el usuario nunca jugó.
func (s *RatingService) Describe(ctx context.Context, userID, displayName string) (string, error) {
	p, err := s.ratings.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 %s has %d rating (%d matches played).", displayName, p.Rating, p.MatchesPlayed), nil
}

func (s *RatingService) Lookup(ctx context.Context, userID string) (domain.PlayerRating, error) {
	return s.ratings.Find(ctx, userID)
}

func (s *RatingService) Ratings(ctx context.Context, userIDs []string) ([]domain.PlayerRating, error) {
	return s.ratings.GetMany(ctx, userIDs)
}

// Set es la operación de admin: pisa rating y opcionalmente partidas jugadas.
func (s *RatingService) Set(ctx context.Context, userID, displayName string, rating int, matches *int) (string, error) {
	if matches != nil && *matches < 0 {
		return "❌ Matches played cannot be negative.", nil
	}
	p, err := s.ratings.Set(ctx, userID, rating, matches)
	if err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"user": userID, "elo": p.Rating, "matches": p.MatchesPlayed}).Info("[ratings] manual set")

	msg := fmt.Sprintf("✅ %s's rating is now %d", displayName, p.Rating)
	if matches != nil {
		msg += fmt.Sprintf(" and matches played is %d", p.MatchesPlayed)
	}
	return msg + ".", nil
}

// ApplyResult actualiza ambos equipos de un match resuelto en una sola escritura.
func (s *RatingService) ApplyResult(ctx context.Context, winners, losers []string) (w, l []domain.PlayerRating, err error) {
	ids := append(append(make([]string, 0, len(winners)+len(losers)), winners...), losers...)
	_, err = s.ratings.Update(ctx, ids, func(cur []domain.PlayerRating) []domain.PlayerRating {
		w, l = domain.ApplyResult(cur[:len(winners)], cur[len(winners):])
		return append(append(make([]domain.PlayerRating, 0, len(cur)), w...), l...)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("apply result: %w", err)
	}
	for _, p := range append(append([]domain.PlayerRating{}, w...), l...) {
		s.log.WithFields(logrus.Fields{"user": p.UserID, "elo": p.Rating, "matches": p.MatchesPlayed}).Debug("[ratings] updated")
	}
	return w, l, nil
}
