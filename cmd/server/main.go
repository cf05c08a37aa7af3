package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carelink/hospital-portal/internal/api"
	"github.com/carelink/hospital-portal/internal/core/ports"
	"github.com/carelink/hospital-portal/internal/core/token"
	"github.com/carelink/hospital-portal/internal/infrastructure/config"
	mongodb "github.com/carelink/hospital-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/carelink/hospital-portal/internal/infrastructure/db/redis"
	"github.com/carelink/hospital-portal/internal/infrastructure/hospital"
	"github.com/carelink/hospital-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Hospital Portal API
// @version      1.0
// @description  Authentication, role-based access control, and hospital speciality search.
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "hospital-portal",
	})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "hospital-portal",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// The unique email index is what makes concurrent duplicate
	// registrations impossible; refuse to start without it.
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	codec := token.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL)

	sources := []ports.Source{
		{Name: "hospital_a", Client: hospital.NewClient(cfg.Sources.HospitalA, nil)},
		{Name: "hospital_b", Client: hospital.NewClient(cfg.Sources.HospitalB, nil)},
		{Name: "hospital_c", Client: hospital.NewClient(cfg.Sources.HospitalC, nil)},
	}

	e := api.NewRouter(api.Deps{
		Mongo:    db,
		Redis:    rdb,
		Codec:    codec,
		Sources:  sources,
		CacheTTL: cfg.CacheTTL,
		Log:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("hospital portal listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
