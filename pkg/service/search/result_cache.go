package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/service/utility"
)

const (
	// DefaultCacheTTL 是搜索结果的默认缓存时间
	DefaultCacheTTL = 5 * time.Minute
	// cacheKeyPrefix 与主站的 Redis 键空间隔开
	cacheKeyPrefix = "hollow:search:result:"
)

// CacheKeyParams 是参与缓存键计算的全部请求参数，Types 必须是实际生效的分类
type CacheKeyParams struct {
	Query    string           `json:"q"`
	Types    []model.Category `json:"types"`
	Limit    int              `json:"limit"`
	Page     int              `json:"page"`
	From     string           `json:"from,omitempty"`
	Category string           `json:"category,omitempty"`
}

// Key 把参数序列化为缓存键。字段顺序固定，相同参数总是得到相同的键。
func (p CacheKeyParams) Key() string {
	raw, _ := json.Marshal(p)
	sum := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// ResultCache 在 CacheService 之上保存搜索响应，值以 JSON 存储
type ResultCache struct {
	store utility.CacheService
	ttl   time.Duration
}

// NewResultCache 创建结果缓存，ttl 非正数时使用默认值
func NewResultCache(store utility.CacheService, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{store: store, ttl: ttl}
}

// Get 返回缓存的响应，不存在、已过期或无法解析时返回 false
func (c *ResultCache) Get(ctx context.Context, key string) (*model.SearchEnvelope, bool, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("读取搜索缓存失败: %w", err)
	}
	if raw == "" {
		return nil, false, nil
	}

	var env model.SearchEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		// 损坏的条目直接丢弃，下一次 Put 会覆盖
		_ = c.store.Delete(ctx, key)
		return nil, false, fmt.Errorf("解析搜索缓存失败: %w", err)
	}
	return &env, true, nil
}

// Put 写入响应
func (c *ResultCache) Put(ctx context.Context, key string, env *model.SearchEnvelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("序列化搜索结果失败: %w", err)
	}
	if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil {
		return fmt.Errorf("写入搜索缓存失败: %w", err)
	}
	return nil
}

// TTL 返回缓存有效期
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
