package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCorruptDocument = errors.New("corrupt document")
)

// Nombres de los tres documentos persistidos (también son los nombres de archivo).
const (
	DocRatings = "elo.json"
	DocMatches = "matches.json"
	DocCounter = "match_counter.json"
)

var AllDocuments = []string{DocRatings, DocMatches, DocCounter}

// Backend guarda documentos completos por nombre. Load devuelve ErrNotFound si
// el documento todavía no existe.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// loadJSON deja out intacto si el documento no existe.
func loadJSON(ctx context.Context, b Backend, name string, out any) error {
	raw, err := b.Load(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w %s: %v", ErrCorruptDocument, name, err)
	}
	return nil
}

func saveJSON(ctx context.Context, b Backend, name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := b.Save(ctx, name, raw); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
