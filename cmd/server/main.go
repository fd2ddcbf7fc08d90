package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/openlingu/lingua-server/internal/api"
	"github.com/openlingu/lingua-server/internal/core/service"
	mongodb "github.com/openlingu/lingua-server/internal/infrastructure/db/mongo"
	redisdb "github.com/openlingu/lingua-server/internal/infrastructure/db/redis"
	"github.com/openlingu/lingua-server/internal/pkg/config"
	"github.com/openlingu/lingua-server/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, usersDB, contentDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:       cfg.Mongo.URI,
		UsersDB:   cfg.Mongo.UsersDB,
		ContentDB: cfg.Mongo.ContentDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	creds := mongodb.NewCredentialRepository(usersDB)
	tokens := mongodb.NewTokenRepository(usersDB)
	content := mongodb.NewContentRepository(contentDB)

	for _, ensure := range []func(context.Context) error{
		creds.EnsureIndexes, tokens.EnsureIndexes, content.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Services ---
	tokenService := service.NewTokenService(creds, tokens, cfg.JWTSecret, cfg.TokenTTL, log)
	authService := service.NewAuthService(creds, tokenService, log)
	accountService := service.NewAccountService(creds, log)
	contentService := service.NewContentService(content, log)

	// Boundary sweep: clear out whatever expired while the process was down.
	if count, err := tokenService.SweepExpired(ctx); err != nil {
		log.Warn().Err(err).Msg("startup token sweep failed")
	} else {
		log.Info().Int64("count", count).Msg("startup token sweep complete")
	}

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		TokenService:   tokenService,
		AccountService: accountService,
		ContentService: contentService,
		SweepThrottle:  redisdb.NewSweepLock(rdb, cfg.SweepInterval),
		UsersDB:        usersDB,
		Redis:          rdb,
		Logger:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Boundary sweep on the way out, mirroring the one at startup.
	if count, err := tokenService.SweepExpired(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown token sweep failed")
	} else {
		log.Info().Int64("count", count).Msg("shutdown token sweep complete")
	}
}
