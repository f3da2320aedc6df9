package utils

import (
	"context"
	"log"
	"time"

	"climaedu/config"

	"github.com/go-redis/redis/v8"
)

// RosterCacheClient is the Redis client backing the course roster cache.
// Availability results are never cached; only stable course membership is.
var RosterCacheClient *redis.Client

// InitRedis initializes the Redis roster cache client.
func InitRedis() {
	RosterCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRosterDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := RosterCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Roster Cache): %v", err)
	}
}

// GetRosterCacheClient returns the roster cache client.
func GetRosterCacheClient() *redis.Client {
	if RosterCacheClient == nil {
		InitRedis()
	}
	return RosterCacheClient
}
