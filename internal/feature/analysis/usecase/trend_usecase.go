package usecase

import (
	"context"
	"fmt"
	"time"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/domain/indicator"
)

const (
	// DefaultTrendDays is the display window of the trend tool.
	DefaultTrendDays = 15
	// trendFetchFloorDays keeps the fetch window long enough for the
	// chart's moving-average overlays even when few days are shown.
	trendFetchFloorDays = 90
	// minTrendSessions is the minimum session count below which the
	// trend tool refuses to report.
	minTrendSessions = 2
)

// ChartRenderer renders a candlestick chart image for a price series
// and returns the written file path. Overlay policy (including the
// visual-only shortened MA windows for sparse data) belongs to the
// renderer; the scoring path never sees those values.
type ChartRenderer interface {
	RenderDailyChart(ctx context.Context, symbol string, points []entity.PricePoint) (string, error)
}

// TrendUsecase generates the price-trend report with its chart image.
type TrendUsecase struct {
	market   MarketRepository
	renderer ChartRenderer
	now      func() time.Time
}

// NewTrendUsecase creates a new TrendUsecase.
func NewTrendUsecase(market MarketRepository, renderer ChartRenderer) *TrendUsecase {
	return &TrendUsecase{market: market, renderer: renderer, now: time.Now}
}

// GenerateTrendReport fetches history for the symbol, renders the
// chart over the last days sessions and summarizes the window's range,
// amplitude and volume statistics. A renderer failure degrades to a
// note; only a failed history fetch fails the tool.
func (u *TrendUsecase) GenerateTrendReport(ctx context.Context, symbol, period string, days int) (*entity.Report, error) {
	if period == "" {
		period = PeriodDaily
	}
	if days <= 0 {
		days = DefaultTrendDays
	}
	now := u.now()

	fetchDays := days
	if fetchDays < trendFetchFloorDays {
		fetchDays = trendFetchFloorDays
	}
	points, err := u.market.GetHistory(ctx, symbol, period,
		now.AddDate(0, 0, -fetchDays), now, AdjustForward)
	if err != nil {
		return nil, fmt.Errorf("trend history for %s: %w", symbol, err)
	}
	if len(points) < minTrendSessions {
		return nil, fmt.Errorf("trend history for %s has %d sessions: %w",
			symbol, len(points), domain.ErrInsufficientHistory)
	}

	// Only the most recent days are displayed and summarized.
	window := points
	if len(window) > days {
		window = window[len(window)-days:]
	}

	var b reportBuilder
	b.AddLines("",
		fmt.Sprintf("股票代码: %s", symbol),
		fmt.Sprintf("数据频率: %s", period),
		fmt.Sprintf("分析周期: %s 至 %s",
			window[0].Date.Format("2006-01-02"),
			window[len(window)-1].Date.Format("2006-01-02")),
		fmt.Sprintf("交易日数: %d", len(window)))

	b.Add("", "", func() ([]string, error) { return trendStatLines(window) })

	chartPath := ""
	b.Add("", "K线图生成失败", func() ([]string, error) {
		path, err := u.renderer.RenderDailyChart(ctx, symbol, window)
		if err != nil {
			return nil, err
		}
		chartPath = path
		return []string{fmt.Sprintf("K线图已保存至: %s", path)}, nil
	})

	return &entity.Report{
		Symbol:      symbol,
		Tool:        entity.ToolTrend,
		Body:        b.Render(),
		ChartPath:   chartPath,
		GeneratedAt: now,
	}, nil
}

// trendStatLines summarizes price range, amplitude and volume over the
// display window.
func trendStatLines(window []entity.PricePoint) ([]string, error) {
	first, last := window[0], window[len(window)-1]
	lines := []string{
		fmt.Sprintf("起始价格: %.2f元", first.Close),
		fmt.Sprintf("最新价格: %.2f元", last.Close),
	}
	if chg, err := indicator.PriceChangePct(first.Close, last.Close); err == nil {
		lines = append(lines, fmt.Sprintf("区间涨跌幅: %.2f%%", chg))
	}

	highs := make([]float64, len(window))
	lows := make([]float64, len(window))
	for i, p := range window {
		highs[i] = p.High
		lows[i] = p.Low
	}
	if amp, err := indicator.Amplitude(highs, lows); err == nil {
		maxHigh, minLow := highs[0], lows[0]
		for i := 1; i < len(window); i++ {
			if highs[i] > maxHigh {
				maxHigh = highs[i]
			}
			if lows[i] < minLow {
				minLow = lows[i]
			}
		}
		lines = append(lines,
			fmt.Sprintf("区间最高价: %.2f元", maxHigh),
			fmt.Sprintf("区间最低价: %.2f元", minLow),
			fmt.Sprintf("区间振幅: %.2f%%", amp))
	}

	var totalVolume int64
	for _, p := range window {
		totalVolume += p.Volume
	}
	if totalVolume > 0 {
		avg := float64(totalVolume) / float64(len(window))
		lines = append(lines, fmt.Sprintf("最近成交量: %d手", last.Volume))
		if avg > 0 {
			change := (float64(last.Volume) - avg) / avg * 100
			lines = append(lines, fmt.Sprintf("成交量变化: %.2f%%", change))
		}
	}
	return lines, nil
}
