package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// translationPrefix 翻译缓存键前缀，与其它业务键隔离
const translationPrefix = "upaay:translation:"

// TranslationCache 基于 Redis 的共享翻译缓存
//
// 与进程内缓存不同，Redis 条目带 TTL，多实例部署时共享翻译结果。
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTranslationCache 创建共享翻译缓存
func NewTranslationCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TranslationCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranslationCache{client: client, ttl: ttl, logger: logger}
}

// Get 查询缓存，redis 故障按未命中处理
func (c *TranslationCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, translationPrefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("translation cache read failed", zap.Error(err))
		return "", false
	}
	return value, true
}

// Set 写入缓存，redis 故障只记日志
func (c *TranslationCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, translationPrefix+key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("translation cache write failed", zap.Error(err))
	}
}
