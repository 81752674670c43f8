package cache

import "time"

// LayeredCache is a two-level BytesCache: an in-process TTL map in front of
// Redis. Reads fall through to Redis and backfill the memory layer.
type LayeredCache struct {
	mem   *TTLCache
	redis *RedisCache
}

func NewLayeredCache(redis *RedisCache) *LayeredCache {
	return &LayeredCache{mem: NewTTLCache(), redis: redis}
}

func (c *LayeredCache) GetBytes(key string) ([]byte, bool, error) {
	if b, ok, _ := c.mem.GetBytes(key); ok {
		return b, true, nil
	}
	b, ok, err := c.redis.GetBytes(key)
	if err != nil || !ok {
		return nil, false, err
	}
	// Backfill with a short TTL so the memory layer never outlives Redis.
	_ = c.mem.SetBytes(key, b, 10*time.Second)
	return b, true, nil
}

func (c *LayeredCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	// Write-through: Redis first, then memory
	if err := c.redis.SetBytes(key, value, ttl); err != nil {
		return err
	}
	return c.mem.SetBytes(key, value, ttl)
}
