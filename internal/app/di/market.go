// Package di provides dependency injection factories for application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"ashare_analyst/internal/feature/analysis/usecase"
	"ashare_analyst/internal/platform/cache"
	"ashare_analyst/internal/platform/externalapi/eastmoney"
	infrahttp "ashare_analyst/internal/platform/http"
	"ashare_analyst/internal/shared/ratelimiter"
)

// Eastmoney tolerates modest request rates; this stays well under the
// throttle observed on the public endpoints.
const eastmoneyCallsPerMinute = 60

// NewMarket creates the Eastmoney market repository, wrapped in Redis
// caching when a Redis client is available.
func NewMarket(rdb *redis.Client) usecase.MarketRepository {
	cfg := eastmoney.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(eastmoneyCallsPerMinute, time.Minute)
	market := eastmoney.NewEastmoneyMarket(cfg, httpClient, limiter)

	if rdb == nil {
		return market
	}
	return cache.NewCachingMarketRepository(rdb, 0, time.Minute, market, "market")
}
