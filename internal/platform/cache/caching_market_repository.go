// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis
// caching. History and stock-info fetches are cached; the bid/ask
// snapshot is realtime and always passes through.
type CachingMarketRepository struct {
	inner      usecase.MarketRepository
	rdb        *redis.Client
	historyTTL time.Duration
	quoteTTL   time.Duration
	namespace  string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates inner with Redis caching. A
// zero historyTTL defaults to the time until the next trading morning;
// a zero quoteTTL defaults to 1 minute. An empty namespace uses
// "market".
func NewCachingMarketRepository(rdb *redis.Client, historyTTL, quoteTTL time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if quoteTTL <= 0 {
		quoteTTL = time.Minute
	}
	if namespace == "" {
		namespace = "market"
	}
	return &CachingMarketRepository{
		inner:      inner,
		rdb:        rdb,
		historyTTL: historyTTL,
		quoteTTL:   quoteTTL,
		namespace:  namespace,
	}
}

// GetStockInfo retrieves the stock snapshot, cache first.
func (c *CachingMarketRepository) GetStockInfo(ctx context.Context, symbol string) (entity.SnapshotMetrics, error) {
	key := fmt.Sprintf("%s:info:%s", c.namespace, safe(symbol))
	return cached(ctx, c, key, c.quoteTTL, func() (entity.SnapshotMetrics, error) {
		return c.inner.GetStockInfo(ctx, symbol)
	})
}

// GetBidAskSnapshot always hits the backing repository.
func (c *CachingMarketRepository) GetBidAskSnapshot(ctx context.Context, symbol string) (entity.SnapshotMetrics, error) {
	return c.inner.GetBidAskSnapshot(ctx, symbol)
}

// GetHistory retrieves price history, cache first. Cached history for
// a day-granular range expires before the next session's data exists.
func (c *CachingMarketRepository) GetHistory(ctx context.Context, symbol, period string, start, end time.Time, adjust string) ([]entity.PricePoint, error) {
	key := fmt.Sprintf("%s:history:%s:%s:%s:%s:%s",
		c.namespace, safe(symbol), safe(period),
		start.Format("20060102"), end.Format("20060102"), safe(adjust))
	ttl := c.historyTTL
	if ttl <= 0 {
		ttl = TimeUntilNext8AM()
	}
	return cached(ctx, c, key, ttl, func() ([]entity.PricePoint, error) {
		return c.inner.GetHistory(ctx, symbol, period, start, end, adjust)
	})
}

// GetIndexSnapshot retrieves the index quotes, cache first.
func (c *CachingMarketRepository) GetIndexSnapshot(ctx context.Context) ([]entity.IndexQuote, error) {
	key := c.namespace + ":indexes"
	return cached(ctx, c, key, c.quoteTTL, func() ([]entity.IndexQuote, error) {
		return c.inner.GetIndexSnapshot(ctx)
	})
}

// cached runs the cache-aside pattern for one key: read the cache,
// fall back to fetch, then store best effort. A nil Redis client
// bypasses caching entirely.
func cached[T any](ctx context.Context, c *CachingMarketRepository, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if c.rdb == nil {
		return fetch()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupted entry, drop it.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := fetch()
	if err != nil {
		return out, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}
	return out, nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
