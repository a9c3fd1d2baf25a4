package service

import (
	"context"
	"edupath_backend/pkg/logger"
	"edupath_backend/pkg/monitoring"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyDetailPrefix = "learning_path:detail:"
	cacheKeyListPrefix   = "learning_path:list:"
)

// Cache 旁路缓存：未命中时经 singleflight 回源，固定 TTL
// Redis 为空时直接回源，便于单测和降级运行
type Cache struct {
	Redis *redis.Client
	TTL   time.Duration
	group singleflight.Group
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Redis: rdb, TTL: ttl}
}

// GetOrFill 命中时将缓存值反序列化进 dest，未命中时并发回源只放行一个 fill
// fill 的返回值写回 dest 并异步写入缓存
func (c *Cache) GetOrFill(ctx context.Context, key, prefix string, dest interface{}, fill func() (interface{}, error)) error {
	if c.Redis != nil {
		val, err := c.Redis.Get(ctx, key).Result()
		if err == nil {
			monitoring.CacheLookups.WithLabelValues(prefix, "hit").Inc()
			return json.Unmarshal([]byte(val), dest)
		}
		if err != redis.Nil {
			logger.Log.Warn("cache read failed, falling back to storage", zap.String("key", key), zap.Error(err))
		}
	}
	monitoring.CacheLookups.WithLabelValues(prefix, "miss").Inc()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		fresh, err := fill()
		if err != nil {
			return nil, err
		}
		if c.Redis != nil {
			payload, err := json.Marshal(fresh)
			if err == nil {
				if err := c.Redis.Set(ctx, key, payload, c.TTL).Err(); err != nil {
					logger.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return fresh, nil
	})
	if err != nil {
		return err
	}

	// singleflight 的共享结果经 JSON 往返拷贝，避免调用方争用同一份对象
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.Redis == nil || len(keys) == 0 {
		return
	}
	if err := c.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func detailCacheKey(pathID string) string {
	return cacheKeyDetailPrefix + pathID
}

func listCacheKey(institution, batch string) string {
	return cacheKeyListPrefix + institution + ":" + batch
}
