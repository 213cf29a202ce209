package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	pq "github.com/lib/pq"
)

// PGBackend guarda los documentos como filas jsonb en la tabla documents.
type PGBackend struct{ db *sql.DB }

func NewPGBackend(db *sql.DB) *PGBackend { return &PGBackend{db: db} }

func (p *PGBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := p.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return body, err
}

func (p *PGBackend) Save(ctx context.Context, name string, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
INSERT INTO documents (name, body, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (name) DO UPDATE SET
  body       = EXCLUDED.body,
  updated_at = now()
`, name, string(data))
	return err
}

// Snapshot copia los documentos indicados bajo un mismo batch.
func (p *PGBackend) Snapshot(ctx context.Context, batchID string, names []string) (int64, error) {
	res, err := p.db.ExecContext(ctx, `
INSERT INTO document_snapshots (batch_id, name, body)
SELECT $1::uuid, name, body
  FROM documents
 WHERE name = ANY($2)
`, batchID, pq.Array(names))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (p *PGBackend) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := p.db.ExecContext(ctx, `
DELETE FROM document_snapshots
 WHERE taken_at < now() - $1::interval
`, durToInterval(olderThan))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
