// Command seed creates the initial admin user through the auth core so the
// password is hashed and validated exactly as it would be for a live
// registration. Running it against a seeded database reports the conflict
// and exits cleanly.
package main

import (
	"context"
	"errors"
	"flag"

	"github.com/bankline/auth-service/internal/core/domain"
	"github.com/bankline/auth-service/internal/core/service"
	"github.com/bankline/auth-service/internal/infrastructure/config"
	"github.com/bankline/auth-service/internal/infrastructure/db/postgres"
	"github.com/bankline/auth-service/pkg/logger"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	email := flag.String("email", "admin@bankline.local", "admin email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	ctx := context.Background()

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	svc := service.NewAuthService(repo, nil, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)

	result, err := svc.Register(ctx, *username, *password, *email, domain.RoleAdmin)
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername), errors.Is(err, domain.ErrDuplicateEmail):
		log.Info().Str("username", *username).Msg("admin user already present, nothing to do")
	case err != nil:
		log.Fatal().Err(err).Msg("seeding admin user failed")
	default:
		log.Info().Str("user_id", result.User.ID).Str("username", result.User.Username).Msg("admin user created")
	}
}
