package usecase

import (
	"context"
	"fmt"
	"time"

	"ashare_analyst/internal/feature/analysis/domain/entity"
)

// mockMarketRepository implements MarketRepository for usecase tests.
type mockMarketRepository struct {
	GetStockInfoFunc      func(ctx context.Context, symbol string) (entity.SnapshotMetrics, error)
	GetBidAskSnapshotFunc func(ctx context.Context, symbol string) (entity.SnapshotMetrics, error)
	GetHistoryFunc        func(ctx context.Context, symbol, period string, start, end time.Time, adjust string) ([]entity.PricePoint, error)
	GetIndexSnapshotFunc  func(ctx context.Context) ([]entity.IndexQuote, error)

	historyCalls int
}

func (m *mockMarketRepository) GetStockInfo(ctx context.Context, symbol string) (entity.SnapshotMetrics, error) {
	return m.GetStockInfoFunc(ctx, symbol)
}

func (m *mockMarketRepository) GetBidAskSnapshot(ctx context.Context, symbol string) (entity.SnapshotMetrics, error) {
	return m.GetBidAskSnapshotFunc(ctx, symbol)
}

func (m *mockMarketRepository) GetHistory(ctx context.Context, symbol, period string, start, end time.Time, adjust string) ([]entity.PricePoint, error) {
	m.historyCalls++
	return m.GetHistoryFunc(ctx, symbol, period, start, end, adjust)
}

func (m *mockMarketRepository) GetIndexSnapshot(ctx context.Context) ([]entity.IndexQuote, error) {
	return m.GetIndexSnapshotFunc(ctx)
}

// mockChartRenderer implements ChartRenderer for trend tests.
type mockChartRenderer struct {
	RenderDailyChartFunc func(ctx context.Context, symbol string, points []entity.PricePoint) (string, error)
	calls                int
}

func (m *mockChartRenderer) RenderDailyChart(ctx context.Context, symbol string, points []entity.PricePoint) (string, error) {
	m.calls++
	return m.RenderDailyChartFunc(ctx, symbol, points)
}

// makeHistory builds n daily sessions ending today with a mild uptrend
// and alternating percent changes, enough for every indicator window.
func makeHistory(n int, base float64) []entity.PricePoint {
	points := make([]entity.PricePoint, n)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	prev := base
	for i := range points {
		pct := 1.0
		if i%2 == 1 {
			pct = -0.5
		}
		close := prev * (1 + pct/100)
		points[i] = entity.PricePoint{
			Date:      day.AddDate(0, 0, i),
			Open:      prev,
			High:      close * 1.01,
			Low:       prev * 0.99,
			Close:     close,
			Volume:    int64(10000 + i*10),
			PctChange: pct,
		}
		prev = close
	}
	return points
}

func infoMetrics() entity.SnapshotMetrics {
	return entity.SnapshotMetrics{
		entity.MetricName:      "平安银行",
		entity.MetricIndustry:  "银行",
		entity.MetricPE:        "8.50",
		entity.MetricPB:        "0.85",
		entity.MetricMarketCap: fmt.Sprintf("%d", 250_000_000_000),
	}
}

func bidAskMetrics() entity.SnapshotMetrics {
	return entity.SnapshotMetrics{
		entity.MetricPrice:       "12.34",
		entity.MetricTurnover:    "4.20",
		entity.MetricVolumeRatio: "1.30",
	}
}
