package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"yekzen_backend/internal/database"
)

var ctx = context.Background()

// --- Refresh tokens ---

func StoreRefreshToken(userID, refreshToken string, duration time.Duration) error {
	return database.Redis.Set(ctx, "refresh:"+userID, refreshToken, duration).Err()
}

func GetRefreshToken(userID string) (string, error) {
	return database.Redis.Get(ctx, "refresh:"+userID).Result()
}

func DeleteRefreshToken(userID string) error {
	return database.Redis.Del(ctx, "refresh:"+userID).Err()
}

// --- JWT blacklist (revocation before expiry) ---

func BlacklistToken(tokenID string, duration time.Duration) error {
	return database.Redis.Set(ctx, "blacklist:"+tokenID, "revoked", duration).Err()
}

func IsTokenBlacklisted(tokenID string) bool {
	exists, err := database.Redis.Exists(ctx, "blacklist:"+tokenID).Result()
	if err != nil {
		log.Printf("⚠️ Blacklist check failed: %v", err)
		return false
	}
	return exists > 0
}

// --- Rate limiting counters ---

func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit increment failed: %w", err)
	}
	return incr.Val(), nil
}
