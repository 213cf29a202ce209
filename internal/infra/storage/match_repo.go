package storage

import (
	"context"
	"fmt"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

// MatchRepo: ledger matchID -> Match. Los matches nunca se borran.
type MatchRepo struct{ b Backend }

func NewMatchRepo(b Backend) *MatchRepo { return &MatchRepo{b: b} }

func (r *MatchRepo) load(ctx context.Context) (map[string]domain.Match, error) {
	raw := map[string]matchRecord{}
	if err := loadJSON(ctx, r.b, DocMatches, &raw); err != nil {
		return nil, err
	}
	doc := make(map[string]domain.Match, len(raw))
	for id, rec := range raw {
		m := rec.toMatch(id)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrCorruptDocument, DocMatches, err)
		}
		doc[id] = m
	}
	return doc, nil
}

func (r *MatchRepo) Get(ctx context.Context, matchID string) (domain.Match, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return domain.Match{}, err
	}
	m, ok := doc[matchID]
	if !ok {
		return domain.Match{}, ErrNotFound
	}
	return m, nil
}

// Put valida e inserta o reemplaza el match.
func (r *MatchRepo) Put(ctx context.Context, m domain.Match) error {
	if err := m.Validate(); err != nil {
		return err
	}
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc[m.ID] = m
	return saveJSON(ctx, r.b, DocMatches, doc)
}

// Count valida el documento completo y devuelve cuántos matches hay.
func (r *MatchRepo) Count(ctx context.Context) (int, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(doc), nil
}
