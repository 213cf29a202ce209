package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	discordrouter "github.com/jose-valero/inhouse-elo-bot/internal/adapters/discord"
	"github.com/jose-valero/inhouse-elo-bot/internal/adapters/httpapi"
	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
	"github.com/jose-valero/inhouse-elo-bot/internal/infra/config"
	"github.com/jose-valero/inhouse-elo-bot/internal/infra/storage"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("LOG_LEVEL %q inválido, uso info", cfg.LogLevel)
	}

	// Storage
	backend, closer, err := openBackend(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer closer.Close()

	ratingsRepo := storage.NewRatingRepo(backend)
	matchesRepo := storage.NewMatchRepo(backend)
	counterRepo := storage.NewCounterRepo(backend)

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		logger.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates | discordgo.IntentsGuildMembers
	// un handler a la vez: los servicios no usan locks
	s.SyncEvents = true
	if err := s.Open(); err != nil {
		logger.Fatal(err)
	}
	defer s.Close()
	logger.Infof("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// Services
	platform := discordrouter.NewPlatform(s)
	ratingSvc := service.NewRatingService(ratingsRepo, logger.WithField("component", "ratings"))
	cleanupSvc := service.NewCleanupService(platform, logger.WithField("component", "cleanup"))
	seed := uint64(time.Now().UnixNano())
	matchSvc := service.NewMatchService(
		ratingSvc,
		matchesRepo,
		counterRepo,
		platform,
		platform,
		cleanupSvc,
		cfg.GameChannels,
		cfg.StaffChannelID,
		rand.New(rand.NewPCG(seed, seed>>1)),
		logger.WithField("component", "match"),
	)

	// Router
	r := discordrouter.NewRouter(
		s,
		cfg.DiscordGuild,
		ratingSvc,
		matchSvc,
		cleanupSvc,
		cfg.AdminRoleIDs,
		logger.WithField("component", "discord"),
	)
	if err := r.Register(); err != nil {
		logger.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	logger.Infof("✅ comandos registrados en guild %s", cfg.DiscordGuild)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Status HTTP (opcional)
	if cfg.HTTPAddr != "" {
		hlog := logger.WithField("component", "http")
		go func() {
			if err := httpapi.Start(ctx, cfg.HTTPAddr, httpapi.SetupRoutes(ratingSvc, matchSvc, hlog), hlog); err != nil {
				hlog.WithError(err).Error("status server")
			}
		}()
	}

	// Esperar señal
	<-ctx.Done()
	logger.Info("👋 apagando")
}

func openBackend(cfg config.Config, logger *logrus.Logger) (storage.Backend, io.Closer, error) {
	if cfg.StorageBackend != config.BackendPostgres {
		b, err := storage.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("✅ documentos en %s", cfg.DataDir)
		return b, noClose{}, nil
	}

	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("✅ DB lista y migrada")
	return storage.NewPGBackend(db), db, nil
}

type noClose struct{}

func (noClose) Close() error { return nil }
