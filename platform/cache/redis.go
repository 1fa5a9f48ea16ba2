package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amritansu-Adi/klantroef/platform/config"
)

// Connect builds the Redis client and pings it once so startup logs reflect
// reachability. Callers decide whether an unreachable Redis is fatal.
func Connect(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return client, err
	}
	return client, nil
}

// Cache is a small string cache used for cache-aside reads such as the
// popular-media listing. A nil *Cache is valid and behaves as a miss.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(context.Background(), key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Set(key, value string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(context.Background(), key, value, ttl)
}
