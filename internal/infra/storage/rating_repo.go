package storage

import (
	"context"
	"fmt"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

// RatingRepo: ledger userID -> {elo, matches}. Cada operación lee y reescribe
// el documento completo, sin cache.
type RatingRepo struct{ b Backend }

func NewRatingRepo(b Backend) *RatingRepo { return &RatingRepo{b: b} }

func (r *RatingRepo) load(ctx context.Context) (map[string]domain.PlayerRating, error) {
	doc := map[string]domain.PlayerRating{}
	if err := loadJSON(ctx, r.b, DocRatings, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]domain.PlayerRating{}
	}
	for uid, p := range doc {
		if uid == "" || p.MatchesPlayed < 0 {
			return nil, fmt.Errorf("%w %s: bad entry %q", ErrCorruptDocument, DocRatings, uid)
		}
		p.UserID = uid
		doc[uid] = p
	}
	return doc, nil
}

func (r *RatingRepo) save(ctx context.Context, doc map[string]domain.PlayerRating) error {
	return saveJSON(ctx, r.b, DocRatings, doc)
}

// Get devuelve el rating y, si el usuario no existe, lo crea con el default y lo persiste.
func (r *RatingRepo) Get(ctx context.Context, userID string) (domain.PlayerRating, error) {
	ps, err := r.GetMany(ctx, []string{userID})
	if err != nil {
		return domain.PlayerRating{}, err
	}
	return ps[0], nil
}

// GetMany igual que Get pero para varios usuarios con una sola escritura.
func (r *RatingRepo) GetMany(ctx context.Context, userIDs []string) ([]domain.PlayerRating, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PlayerRating, 0, len(userIDs))
	created := false
	for _, uid := range userIDs {
		p, ok := doc[uid]
		if !ok {
			p = domain.NewPlayerRating(uid)
			doc[uid] = p
			created = true
		}
		out = append(out, p)
	}
	if created {
		if err := r.save(ctx, doc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Find no crea nada: ErrNotFound si el usuario nunca fue visto.
func (r *RatingRepo) Find(ctx context.Context, userID string) (domain.PlayerRating, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return domain.PlayerRating{}, err
	}
	p, ok := doc[userID]
	if !ok {
		return domain.PlayerRating{}, ErrNotFound
	}
	return p, nil
}

// Set pisa el rating y, si viene, la cantidad de partidas. Crea el registro si falta.
func (r *RatingRepo) Set(ctx context.Context, userID string, rating int, matches *int) (domain.PlayerRating, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return domain.PlayerRating{}, err
	}
	p, ok := doc[userID]
	if !ok {
		p = domain.NewPlayerRating(userID)
	}
	p.Rating = rating
	if matches != nil {
		p.MatchesPlayed = *matches
	}
	doc[userID] = p
	if err := r.save(ctx, doc); err != nil {
		return domain.PlayerRating{}, err
	}
	return p, nil
}

// Update aplica fn sobre los ratings de userIDs (creando faltantes) y guarda una vez.
// fn recibe y devuelve los ratings en el mismo orden.
func (r *RatingRepo) Update(ctx context.Context, userIDs []string, fn func([]domain.PlayerRating) []domain.PlayerRating) ([]domain.PlayerRating, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	cur := make([]domain.PlayerRating, 0, len(userIDs))
	for _, uid := range userIDs {
		p, ok := doc[uid]
		if !ok {
			p = domain.NewPlayerRating(uid)
		}
		cur = append(cur, p)
	}
	next := fn(cur)
	for _, p := range next {
		doc[p.UserID] = p
	}
	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return next, nil
}

// Count valida el documento completo y devuelve cuántos jugadores hay.
func (r *RatingRepo) Count(ctx context.Context) (int, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(doc), nil
}
