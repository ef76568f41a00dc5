package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// quoteTTL bounds how long a cached quote may be served; rate tables change
// rarely but sellers expect edits to show up within the hour.
const quoteTTL = time.Hour

// Redis is a Redis-backed Cache.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, quoteTTL).Err()
}
