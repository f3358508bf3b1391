// Command server runs the Twittoo REST API.
//
//	@title						Twittoo API
//	@version					1.0
//	@description				Microblogging API: accounts, tweets, likes, retweets, replies and follows.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/twittoo/twittoo-api/internal/api"
	"github.com/twittoo/twittoo-api/internal/core/ports"
	"github.com/twittoo/twittoo-api/internal/core/service"
	"github.com/twittoo/twittoo-api/internal/infrastructure/config"
	"github.com/twittoo/twittoo-api/internal/infrastructure/db/memory"
	mongodb "github.com/twittoo/twittoo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/twittoo/twittoo-api/internal/infrastructure/db/redis"
	"github.com/twittoo/twittoo-api/internal/infrastructure/http/handlers"
	"github.com/twittoo/twittoo-api/internal/infrastructure/queue"
	"github.com/twittoo/twittoo-api/internal/infrastructure/storage"
	"github.com/twittoo/twittoo-api/internal/pkg/token"
	"github.com/twittoo/twittoo-api/internal/seed"
	"github.com/twittoo/twittoo-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

type repositories struct {
	users      ports.UserRepository
	tweets     ports.TweetRepository
	engagement ports.EngagementRepository
	follows    ports.FollowRepository
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty && !cfg.IsProduction(),
		File:   cfg.Log.File,
	})

	checks := map[string]handlers.Check{}

	var repos repositories
	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		repos = repositories{
			users:      mongodb.NewUserRepository(db),
			tweets:     mongodb.NewTweetRepository(db),
			engagement: mongodb.NewEngagementRepository(db),
			follows:    mongodb.NewFollowRepository(db),
		}
		checks["mongo"] = mongodb.Ping(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	default:
		s := memory.New()
		repos = repositories{
			users:      memory.NewUserRepository(s),
			tweets:     memory.NewTweetRepository(s),
			engagement: memory.NewEngagementRepository(s),
			follows:    memory.NewFollowRepository(s),
		}
		log.Info().Msg("using in-memory store")
	}

	images, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		return err
	}
	cleanup := queue.NewDispatcher(0, images, logger.Component(log, "cleanup"))
	cleanup.Start(ctx)
	tweetOpts := []service.TweetOption{
		service.WithImageStore(images, cfg.Uploads.MaxBytes),
		service.WithImageCleanup(cleanup),
	}

	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		tweetOpts = append(tweetOpts, service.WithIdempotency(redisdb.NewIdempotencyStore(client)))
		checks["redis"] = redisdb.Ping(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(repos.users, tokens, logger.Component(log, "auth"))
	tweetService := service.NewTweetService(repos.tweets, repos.users, repos.engagement, logger.Component(log, "tweets"), tweetOpts...)
	userService := service.NewUserService(repos.users, repos.tweets, repos.follows, repos.engagement, logger.Component(log, "users"))

	if cfg.Seed {
		seeder := seed.New(seed.Repositories{
			Users:   repos.users,
			Tweets:  repos.tweets,
			Follows: repos.follows,
		}, logger.Component(log, "seed"))
		if err := seeder.Run(ctx); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Logger:             log,
		Tokens:             tokens,
		AuthService:        authService,
		TweetService:       tweetService,
		UserService:        userService,
		Checks:             checks,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AllowedOrigins:     cfg.AllowedOrigins,
		UploadDir:          images.Dir(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
