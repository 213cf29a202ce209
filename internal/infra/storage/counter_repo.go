package storage

import (
	"context"
	"fmt"
)

type counterDoc struct {
	Counter int `json:"counter"`
}

// CounterRepo emite los números de match legibles. No es seguro entre procesos.
type CounterRepo struct{ b Backend }

func NewCounterRepo(b Backend) *CounterRepo { return &CounterRepo{b: b} }

func (r *CounterRepo) Current(ctx context.Context) (int, error) {
	var doc counterDoc
	if err := loadJSON(ctx, r.b, DocCounter, &doc); err != nil {
		return 0, err
	}
	if doc.Counter < 0 {
		return 0, fmt.Errorf("%w %s: negative counter", ErrCorruptDocument, DocCounter)
	}
	return doc.Counter, nil
}

// Next incrementa, persiste y devuelve el nuevo valor.
func (r *CounterRepo) Next(ctx context.Context) (int, error) {
	cur, err := r.Current(ctx)
	if err != nil {
		return 0, err
	}
	doc := counterDoc{Counter: cur + 1}
	if err := saveJSON(ctx, r.b, DocCounter, doc); err != nil {
		return 0, err
	}
	return doc.Counter, nil
}
