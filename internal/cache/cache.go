package cache

import (
	"context"
	"encoding/json"
	"time"

	"recyclemart-backend/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 各类缓存条目的过期时间
const (
	ListingTTL       = 10 * time.Minute
	ProductDetailTTL = 30 * time.Minute
	FilterOptionsTTL = time.Hour
	UserSummaryTTL   = time.Hour
	SellerProfileTTL = 30 * time.Minute
)

// 单次缓存操作的超时时间，超时按未命中处理
const opTimeout = 500 * time.Millisecond

// Cache 封装 Redis 客户端，提供尽力而为的读穿缓存
// 任何操作失败只记录日志，绝不向调用方传播——缓存只是优化，
// 实体存储的数据正确性不依赖它
type Cache struct {
	client *redis.Client
}

// New 创建一个新的 Cache 实例
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get 读取并反序列化缓存值，任何失败都按未命中处理
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			util.Logger.Warn("缓存读取失败", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		util.Logger.Warn("缓存值反序列化失败", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set 序列化并写入缓存值，失败只记录日志
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		util.Logger.Warn("缓存值序列化失败", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		util.Logger.Warn("缓存写入失败", zap.String("key", key), zap.Error(err))
	}
}

// Delete 删除精确键，失败只记录日志
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		util.Logger.Warn("缓存删除失败", zap.Strings("keys", keys), zap.Error(err))
	}
}

// ListingGeneration 读取列表缓存的当前代数
// 返回 false 表示缓存不可用，调用方应完全绕过列表缓存
func (c *Cache) ListingGeneration(ctx context.Context) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		util.Logger.Warn("读取列表缓存代数失败", zap.Error(err))
		return 0, false
	}
	return gen, true
}

// BumpListingGeneration 在产品写入后递增代数
// 旧代的所有列表键随之成为孤儿，由各自的TTL自然过期，
// 无需枚举或模式删除
func (c *Cache) BumpListingGeneration(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		util.Logger.Warn("递增列表缓存代数失败", zap.Error(err))
	}
}
