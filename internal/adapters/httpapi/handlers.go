package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
	"github.com/jose-valero/inhouse-elo-bot/internal/infra/storage"
)

type ratingView struct {
	UserID        string `json:"user_id"`
	Rating        int    `json:"elo"`
	MatchesPlayed int    `json:"matches"`
	InPlacement   bool   `json:"in_placement"`
}

type matchView struct {
	ID     string            `json:"id"`
	Number int               `json:"match_number"`
	Team1  []string          `json:"team1"`
	Team2  []string          `json:"team2"`
	Votes  map[string]string `json:"votes"`
	State  string            `json:"state"`
	Winner int               `json:"winner"`
}

func GetRating(ratings RatingReader, log *logrus.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := chi.URLParam(r, "userID")
		p, err := ratings.Lookup(r.Context(), uid)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "rating not found", http.StatusNotFound)
			return
		case err != nil:
			log.WithError(err).WithField("user", uid).Error("[http] rating lookup")
			http.Error(w, "failed to read ratings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, ratingView{
			UserID:        p.UserID,
			Rating:        p.Rating,
			MatchesPlayed: p.MatchesPlayed,
			InPlacement:   p.InPlacement(),
		})
	}
}

func GetMatch(matches MatchReader, log *logrus.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "matchID")
		m, err := matches.Lookup(r.Context(), id)
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			http.Error(w, "match not found", http.StatusNotFound)
			return
		case err != nil:
			log.WithError(err).WithField("match", id).Error("[http] match lookup")
			http.Error(w, "failed to read matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, toMatchView(m))
	}
}

func toMatchView(m domain.Match) matchView {
	votes := make(map[string]string, len(m.Votes))
	for uid, v := range m.Votes {
		votes[uid] = string(v)
	}
	return matchView{
		ID:     m.ID,
		Number: m.Number,
		Team1:  m.Team1,
		Team2:  m.Team2,
		Votes:  votes,
		State:  string(m.State()),
		Winner: m.Winner,
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
