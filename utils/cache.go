// File: utils/cache.go
package utils

import (
	"context"
	"sync"
	"time"

	"petbook/config"

	"github.com/go-redis/redis/v8"
)

const (
	// AuthCachePrefix namespaces cached identities in the auth cache DB.
	AuthCachePrefix = "auth:"
	// SlotsCachePrefix namespaces cached per-date availability in the generic cache DB.
	SlotsCachePrefix = "slots:"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client

	cacheOnce     sync.Once
	authCacheOnce sync.Once
)

// InitCache initializes the generic Redis cache client. The service keeps working
// without Redis: callers must treat a nil client as a cache miss.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Sugar().Warnf("Redis (cache) unavailable, running without availability cache: %v", err)
		return
	}
	CacheClient = client
}

// GetCacheClient returns the generic cache client, or nil when Redis is unavailable.
func GetCacheClient() *redis.Client {
	cacheOnce.Do(InitCache)
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Sugar().Warnf("Redis (auth cache) unavailable, falling back to DB lookups: %v", err)
		return
	}
	AuthCacheClient = client
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil
// when Redis is unavailable.
func GetAuthCacheClient() *redis.Client {
	authCacheOnce.Do(InitAuthCache)
	return AuthCacheClient
}
