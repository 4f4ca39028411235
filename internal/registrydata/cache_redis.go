package registrydata

import (
	"time"

	redis "github.com/go-redis/redis/v7"
)

type redisCache struct {
	client redis.UniversalClient
	prefix string
}

func newRedisCache(client redis.UniversalClient, prefix string) *redisCache {
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + k
}

func (c *redisCache) Get(key string) (string, bool, error) {
	val, err := c.client.Get(c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(key, value string, ttl time.Duration) error {
	return c.client.Set(c.key(key), value, ttl).Err()
}
