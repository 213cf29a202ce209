package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/infra/storage"
)

const snapshotRetention = 30 * 24 * time.Hour

var log = logrus.WithField("component", "janitor")

// healthyDocuments pasa cada documento por las validaciones de carga de su
// repo y devuelve sólo los que están sanos.
func healthyDocuments(ctx context.Context, b storage.Backend, log *logrus.Entry) []string {
	checks := []struct {
		name  string
		check func(context.Context) (int, error)
	}{
		{storage.DocRatings, storage.NewRatingRepo(b).Count},
		{storage.DocMatches, storage.NewMatchRepo(b).Count},
		{storage.DocCounter, storage.NewCounterRepo(b).Current},
	}

	var names []string
	for _, c := range checks {
		n, err := c.check(ctx)
		if err != nil {
			log.WithError(err).WithField("doc", c.name).Warn("⚠️ documento inválido, no se copia")
			continue
		}
		log.WithFields(logrus.Fields{"doc": c.name, "entries": n}).Debug("[janitor] ok")
		names = append(names, c.name)
	}
	return names
}

func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	db, err := storage.Open(ctx, dsn)
	if err != nil {
		return fmt.Sprintf("open: %v", err), nil
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pg := storage.NewPGBackend(db)
	names := healthyDocuments(cctx, pg, log)

	batch := uuid.NewString()
	copied, err := pg.Snapshot(cctx, batch, names)
	if err != nil {
		return fmt.Sprintf("snapshot: %v", err), nil
	}
	pruned, err := pg.PruneSnapshots(cctx, snapshotRetention)
	if err != nil {
		return fmt.Sprintf("prune: %v", err), nil
	}

	log.WithFields(logrus.Fields{"batch": batch, "copied": copied, "pruned": pruned}).Info("✅ snapshot")
	return "ok", nil
}

func main() { lambda.Start(handler) }
