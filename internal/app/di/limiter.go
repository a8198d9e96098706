package di

import (
	"github.com/redis/go-redis/v9"

	"shop_backend/internal/config"
	"shop_backend/internal/platform/ratelimit"
)

// NewLoginLimiter creates the login rate limiter. Without Redis, or with the
// limit disabled, it returns nil and the middleware lets everything through.
func NewLoginLimiter(rdb *redis.Client, cfg *config.Config) *ratelimit.Limiter {
	if rdb == nil || cfg.LoginRateLimit <= 0 {
		return nil
	}
	return ratelimit.NewLimiter(rdb, "login", cfg.LoginRateLimit, cfg.LoginRateWindow)
}
