// @title                       Postboard API
// @version                     1.0
// @description                 Authenticated posts API: register, login and manage your own posts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/postboard/api/docs"
	"github.com/postboard/api/internal/api"
	mongorepo "github.com/postboard/api/internal/infrastructure/db/mongo"
	redisstore "github.com/postboard/api/internal/infrastructure/db/redis"
	"github.com/postboard/api/internal/pkg/config"
	"github.com/postboard/api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "postboard-api",
	})

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	if err := mongorepo.EnsureIndexes(ctx,
		mongorepo.NewUserRepository(db),
		mongorepo.NewPostRepository(db),
	); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	e := api.NewRouter(cfg, db, rdb)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
		exitCode = 1
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
		exitCode = 1
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
		exitCode = 1
	}

	log.Info().Msg("shutdown complete")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
