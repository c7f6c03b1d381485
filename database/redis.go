package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomledger-backend/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisURL,
	})

	_, err := Redis.Ping(context.Background()).Result()
	if err != nil {
		log.Println("⚠️  Redis not available, running without cache:", err)
		Redis = nil
		return
	}

	log.Println("✅ Redis connected successfully")
}

// RoomLedgerRev returns the current revision counter for a room's ledger.
// Cached analytics keys embed the revision, so bumping it on every mutation
// leaves stale entries unaddressed until they expire.
func RoomLedgerRev(ctx context.Context, roomID uuid.UUID) int64 {
	if Redis == nil {
		return 0
	}
	rev, err := Redis.Get(ctx, revKey(roomID)).Int64()
	if err != nil {
		return 0
	}
	return rev
}

// BumpRoomLedgerRev invalidates cached analytics for a room.
func BumpRoomLedgerRev(ctx context.Context, roomID uuid.UUID) {
	if Redis == nil {
		return
	}
	if err := Redis.Incr(ctx, revKey(roomID)).Err(); err != nil {
		log.Printf("⚠️  Failed to bump ledger revision for room %s: %v", roomID, err)
	}
}

// CacheGet reads a cached JSON payload; ok is false on miss or when Redis
// is unavailable.
func CacheGet(ctx context.Context, key string) (string, bool) {
	if Redis == nil {
		return "", false
	}
	val, err := Redis.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// CacheSet stores a JSON payload with a TTL. Failures are logged, never fatal.
func CacheSet(ctx context.Context, key string, payload string, ttl time.Duration) {
	if Redis == nil {
		return
	}
	if err := Redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("⚠️  Failed to cache %s: %v", key, err)
	}
}

func revKey(roomID uuid.UUID) string {
	return fmt.Sprintf("roomrev:%s", roomID)
}
