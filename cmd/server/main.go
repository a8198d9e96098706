package main

import (
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/di"
	"shop_backend/internal/app/router"
	"shop_backend/internal/config"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	authusecase "shop_backend/internal/feature/auth/usecase"
	usersadapters "shop_backend/internal/feature/users/adapters"
	usershandler "shop_backend/internal/feature/users/transport/handler"
	usersusecase "shop_backend/internal/feature/users/usecase"
	infradb "shop_backend/internal/platform/db"
	infraredis "shop_backend/internal/platform/redis"
	"shop_backend/internal/platform/token"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB(cfg.DatabaseDSN, cfg.RunMigrations)

	// Redis. Optional: without it, login is simply not rate limited.
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword); err != nil {
		slog.Warn("redis unavailable, running without login rate limit", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Token managers
	sessions := token.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	confirmations := token.NewConfirmationManager(cfg.ConfirmationSecret, cfg.ConfirmationTTL)

	// Repository
	userRepo := usersadapters.NewUserGorm(db)

	// Usecase
	usersUC := usersusecase.NewUsersUsecase(userRepo, confirmations, di.NewMailer(cfg), cfg.ConfirmationURL, cfg.MailFrom)
	authUC := authusecase.NewAuthUsecase(userRepo, sessions, confirmations, usersUC)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	usersH := usershandler.NewUsersHandler(usersUC)

	r := router.NewRouter(authH, usersH, sessions, di.NewLoginLimiter(rdb, cfg))

	if cfg.SessionSecret == "" {
		slog.Warn("JWT_SECRET is not set, set a strong secret in production")
	}
	if cfg.ConfirmationSecret == "" {
		slog.Warn("EMAIL_CONFIRMATION_SECRET is not set, set a strong secret in production")
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
