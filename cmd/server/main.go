// @title        Hospital Portal API
// @version      1.0
// @description  Session and access-control core of the hospital dashboard.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/api"
	"github.com/medicocare/hospital-portal/internal/api/handler"
	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
	"github.com/medicocare/hospital-portal/internal/core/service"
	"github.com/medicocare/hospital-portal/internal/infrastructure/blob"
	"github.com/medicocare/hospital-portal/internal/infrastructure/config"
	"github.com/medicocare/hospital-portal/internal/infrastructure/db/memory"
	"github.com/medicocare/hospital-portal/internal/infrastructure/db/mongo"
	"github.com/medicocare/hospital-portal/internal/infrastructure/db/redis"
	"github.com/medicocare/hospital-portal/internal/infrastructure/jobs"
	"github.com/medicocare/hospital-portal/internal/infrastructure/realtime"
	"github.com/medicocare/hospital-portal/internal/infrastructure/security"
	"github.com/medicocare/hospital-portal/internal/infrastructure/store"
	"github.com/medicocare/hospital-portal/pkg/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	bootstrapMaxDelay = 30 * time.Second
)

// backend is the durable storage selected by configuration together with
// the notifier and the cleanup it needs.
type backend struct {
	storage  ports.DurableStorage
	notifier ports.ChangeNotifier
	close    func(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "hospital-portal",
	})

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("failed to open storage backend")
	}

	readiness := map[string]handler.Pinger{"storage": be.storage}

	var images ports.ProfileImageStore = store.NewProfileImageStore(be.storage)
	if cfg.Avatar.Backend == config.AvatarMinio {
		objects, err := blob.NewImageStore(blob.Config{
			Endpoint:  cfg.Avatar.MinioEndpoint,
			AccessKey: cfg.Avatar.MinioAccessKey,
			SecretKey: cfg.Avatar.MinioSecretKey,
			Bucket:    cfg.Avatar.MinioBucket,
			UseSSL:    cfg.Avatar.MinioUseSSL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Msg("ensure bucket failed")
		}
		images = objects
		readiness["avatars"] = objects
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	credentials := store.NewCredentialStore(be.storage, hasher, logger.Component("credential_store"))
	sessions := service.NewSessionManager(
		credentials,
		store.NewSessionStore(be.storage),
		images,
		hasher,
		be.notifier,
		logger.Component("session"),
	)

	hub := realtime.NewHub(logger.Component("realtime"))
	go hub.Run(ctx)

	revalidate := make(chan struct{}, 1)
	go watchChanges(ctx, be.notifier, hub, revalidate, log)
	go revalidateOnChange(ctx, sessions, revalidate, log)
	go bootstrap(ctx, sessions, log)

	scheduler := jobs.NewScheduler(sessions, logger.Component("jobs"))
	if err := scheduler.Start(cfg.RevalidateSchedule); err != nil {
		log.Error().Err(err).Msg("scheduler start failed")
	}

	e := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		Tokens:      service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Directory:   service.NewUserDirectory(credentials),
		Preferences: service.NewPreferenceService(be.storage, logger.Component("preferences")),
		Images:      service.NewProfileImageService(sessions, images),
		Guard:       service.NewAccessGuard(),
		Changes:     hub.ServeWS,
		Readiness:   readiness,
		JWTSecret:   cfg.JWTSecret,
		Log:         logger.Component("http"),
	})

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("backend", cfg.Storage.Backend).Msg("http server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	<-scheduler.Stop().Done()
	if err := be.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("storage close error")
	}

	log.Info().Msg("server exited cleanly")
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		b, err := redis.Open(ctx, redis.Config{
			Addr:   cfg.Redis.Addr,
			DB:     cfg.Redis.DB,
			Prefix: cfg.Storage.Prefix,
		}, logger.Component("redis"))
		if err != nil {
			return nil, err
		}
		return &backend{
			storage:  b.Storage,
			notifier: b.Notifier,
			close:    func(context.Context) error { return b.Close() },
		}, nil

	case config.BackendMongo:
		b, err := mongo.Open(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Prefix:   cfg.Storage.Prefix,
		})
		if err != nil {
			return nil, err
		}
		// Mongo has no pub/sub; changes only reach listeners in this process.
		log.Warn().Msg("mongo backend: storage changes are not shared between instances")
		return &backend{
			storage:  b.Storage,
			notifier: memory.NewNotifier(),
			close:    b.Close,
		}, nil

	default:
		return &backend{
			storage:  memory.NewStorage(),
			notifier: memory.NewNotifier(),
			close:    func(context.Context) error { return nil },
		}, nil
	}
}

// bootstrap retries until the session has been loaded from storage. Requests
// keep getting 503 in the meantime.
func bootstrap(ctx context.Context, sessions ports.SessionManager, log zerolog.Logger) {
	delay := time.Second
	for {
		err := sessions.Bootstrap(ctx)
		if err == nil {
			log.Info().Str("session", sessions.Current().State.String()).Msg("session bootstrapped")
			return
		}
		log.Error().Err(err).Dur("retry_in", delay).Msg("session bootstrap failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, bootstrapMaxDelay)
	}
}

// watchChanges fans storage changes out to websocket clients and asks for a
// revalidation whenever the user collection moved.
func watchChanges(ctx context.Context, notifier ports.ChangeNotifier, hub *realtime.Hub, revalidate chan<- struct{}, log zerolog.Logger) {
	err := notifier.Subscribe(ctx, func(change domain.StorageChange) {
		hub.Publish(change)
		if change.Key == domain.KeyUsers {
			select {
			case revalidate <- struct{}{}:
			default:
			}
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("storage change subscription ended")
	}
}

// revalidateOnChange runs outside the notifier callback: the session manager
// publishes while holding its operation lock.
func revalidateOnChange(ctx context.Context, sessions ports.SessionManager, revalidate <-chan struct{}, log zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-revalidate:
			if sessions.Current().Loading() {
				continue
			}
			if err := sessions.Revalidate(ctx); err != nil {
				log.Error().Err(err).Msg("session revalidation failed")
			}
		}
	}
}
