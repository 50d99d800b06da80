package suggestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache 推薦結果快取（Redis）
// 快取關閉時所有操作直接略過
type Cache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewCache 創建推薦快取
func NewCache(cfg *config.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return &Cache{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("推薦快取已初始化",
		zap.String("redis_addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.TTL),
	)

	return &Cache{
		client: client,
		config: cfg,
	}, nil
}

// Key 由食材名稱（排序、不分大小寫）與數量提示生成快取鍵
func (c *Cache) Key(ingredientNames []string, limit int) string {
	names := make([]string, len(ingredientNames))
	for i, n := range ingredientNames {
		names[i] = strings.ToLower(strings.TrimSpace(n))
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(strings.Join(names, "|")))
	h.Write([]byte(fmt.Sprintf("|%d", limit)))
	return "suggestion:" + hex.EncodeToString(h.Sum(nil))
}

// Get 獲取快取的推薦結果
func (c *Cache) Get(ctx context.Context, key string) ([]Suggestion, error) {
	if !c.config.Enabled || c.client == nil {
		return nil, fmt.Errorf("cache is disabled")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("suggestion")
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	common.LogCacheHit("suggestion")
	return suggestions, nil
}

// Set 寫入快取，失敗只記錄不影響主流程
func (c *Cache) Set(ctx context.Context, key string, suggestions []Suggestion) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}

	data, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Ping 檢查 Redis 連線（就緒探針用）
// 快取未啟用時視為健康
func (c *Cache) Ping(ctx context.Context) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close 關閉 Redis 連接
func (c *Cache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
