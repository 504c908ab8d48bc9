package usecase

import (
	"context"
	"time"

	"ashare_analyst/internal/feature/analysis/domain/entity"
)

// History periods accepted by the market data provider.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// AdjustForward requests 前复权 (forward-adjusted) prices.
const AdjustForward = "qfq"

// MarketRepository abstracts the external market data provider.
// Following Go convention, the interface is defined by the consumer
// (usecase); implementations live under platform. Every method returns
// ErrDataUnavailable (wrapped) once the provider's bounded retries are
// exhausted.
type MarketRepository interface {
	// GetStockInfo returns identity and valuation metrics for a symbol
	// (股票简称, 行业, 市盈率, 市净率, 总市值, ...).
	GetStockInfo(ctx context.Context, symbol string) (entity.SnapshotMetrics, error)

	// GetBidAskSnapshot returns intraday trading metrics
	// (最新价, 换手率, 量比, ...).
	GetBidAskSnapshot(ctx context.Context, symbol string) (entity.SnapshotMetrics, error)

	// GetHistory returns the symbol's price history over [start, end],
	// chronologically ascending, one point per completed session.
	GetHistory(ctx context.Context, symbol, period string, start, end time.Time, adjust string) ([]entity.PricePoint, error)

	// GetIndexSnapshot returns the current levels of the major market
	// indices (上证指数, 深证成指, 创业板指).
	GetIndexSnapshot(ctx context.Context) ([]entity.IndexQuote, error)
}
