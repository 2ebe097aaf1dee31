package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCacheRepository 整页缓存：按路由键存渲染好的字节，TTL 到期自动失效
type PageCacheRepository struct{}

func (r *PageCacheRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *PageCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return Client.Set(ctx, key, value, ttl).Err()
}

// Clear 按前缀清空缓存页
func (r *PageCacheRepository) Clear(ctx context.Context, prefix string) error {
	keys, err := Client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return Client.Del(ctx, keys...).Err()
}
