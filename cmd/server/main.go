// @title        Favourite Food Questionnaire
// @version      1.0
// @description  Assign, complete and review favourite-food questionnaires.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodforms/questionnaire/internal/api"
	"github.com/foodforms/questionnaire/internal/api/handler"
	"github.com/foodforms/questionnaire/internal/api/render"
	"github.com/foodforms/questionnaire/internal/core/service"
	mongostore "github.com/foodforms/questionnaire/internal/infrastructure/db/mongo"
	redisstore "github.com/foodforms/questionnaire/internal/infrastructure/db/redis"
	miniostore "github.com/foodforms/questionnaire/internal/infrastructure/storage/minio"
	"github.com/foodforms/questionnaire/internal/pkg/config"
	"github.com/foodforms/questionnaire/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "questionnaire",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	photos, err := miniostore.Connect(ctx, miniostore.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store unavailable")
	}

	users := mongostore.NewUserRepository(db)
	forms := mongostore.NewFormRepository(db)
	revocations := redisstore.NewRevocations(rdb)

	e := api.NewRouter(api.Dependencies{
		Auth:          service.NewAuthService(users, revocations, cfg.SessionSecret, cfg.SessionTTL, logger.Component("auth")),
		Forms:         service.NewFormService(forms, users, photos, logger.Component("forms")),
		Flashes:       redisstore.NewFlashStore(rdb),
		Revocations:   revocations,
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.IsProduction(),
		Renderer:      render.MustNew(),
		Readiness: map[string]handler.Checker{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"minio":   photos.Ping,
		},
		Log: logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
