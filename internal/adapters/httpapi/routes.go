package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

type RatingReader interface {
	Lookup(ctx context.Context, userID string) (domain.PlayerRating, error)
}

type MatchReader interface {
	Lookup(ctx context.Context, matchID string) (domain.Match, error)
}

func SetupRoutes(ratings RatingReader, matches MatchReader, log *logrus.Entry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLog(log))

	r.Get("/healthz", Healthz)
	r.Get("/ratings/{userID}", GetRating(ratings, log))
	r.Get("/matches/{matchID}", GetMatch(matches, log))
	return r
}

func requestLog(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": ww.Status(),
				"took":   time.Since(start),
			}).Debug("[http]")
		})
	}
}

// Start bloquea hasta que el contexto se cancela.
func Start(ctx context.Context, addr string, h http.Handler, log *logrus.Entry) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Infof("🌐 status server en %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}
