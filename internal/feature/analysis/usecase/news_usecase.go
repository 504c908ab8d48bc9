package usecase

import (
	"context"
	"fmt"
	"time"

	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/domain/indicator"
)

const (
	// DefaultNewsDays is the default lookback of the market-context tool.
	DefaultNewsDays = 7
	// calmAmplitudePct separates calm sessions from volatile ones.
	calmAmplitudePct = 3.0

	// NewsDisclaimer closes the market-context report.
	NewsDisclaimer = "【免责声明】本分析仅供参考，不构成投资建议。投资有风险，入市需谨慎。"
)

// NewsUsecase generates the market-context report: index overview,
// short-window price and volume trend, the derived fund-flow and
// sentiment judgments, and the fixed risk notes.
type NewsUsecase struct {
	market MarketRepository
	now    func() time.Time
}

// NewNewsUsecase creates a new NewsUsecase.
func NewNewsUsecase(market MarketRepository) *NewsUsecase {
	return &NewsUsecase{market: market, now: time.Now}
}

// GenerateNewsReport builds the market-context report for one symbol
// over the trailing days window. Like the financial tool, every section
// degrades independently.
func (u *NewsUsecase) GenerateNewsReport(ctx context.Context, symbol string, days int) (*entity.Report, error) {
	if days <= 0 {
		days = DefaultNewsDays
	}
	var b reportBuilder
	now := u.now()

	info, infoErr := u.market.GetStockInfo(ctx, symbol)
	title := fmt.Sprintf("## %s 市场环境综合分析", symbol)
	if infoErr == nil {
		if name, ok := info.Get(entity.MetricName); ok {
			title = fmt.Sprintf("## %s(%s) 市场环境综合分析", name, symbol)
		}
	}
	b.AddLines("", title)

	b.Add("### 大盘指数概览", "获取大盘指数失败", func() ([]string, error) {
		quotes, err := u.market.GetIndexSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(quotes))
		for _, q := range quotes {
			lines = append(lines, fmt.Sprintf("- %s: %.2f (%+.2f%%)", q.Name, q.Price, q.ChangePct))
		}
		return lines, nil
	})

	window, windowErr := u.market.GetHistory(ctx, symbol, PeriodDaily,
		now.AddDate(0, 0, -days), now, AdjustForward)

	// Trend figures feed both the trend section and the judgment
	// matrices below; both stay undefined on a failed fetch.
	var priceChange, volumeChange entity.Metric

	b.Add(fmt.Sprintf("### 最近%d天价格走势分析", days), "获取历史价格数据失败", func() ([]string, error) {
		if windowErr != nil {
			return nil, windowErr
		}
		lines, pc, vc := trendWindowLines(window)
		priceChange, volumeChange = pc, vc
		return lines, nil
	})

	b.AddLines("### 综合分析与投资建议",
		"#### 个股资金流向",
		fundFlowLine(volumeChange),
		"#### 投资建议",
		adviceLine(priceChange, volumeChange))

	b.Add("### 市场情绪与风险提示", "", func() ([]string, error) {
		var lines []string
		if windowErr == nil && len(window) > 0 {
			lines = append(lines, sentimentLine(window))
		}
		lines = append(lines,
			"#### 风险提示",
			"- 宏观经济风险: 经济增长放缓可能影响企业盈利",
			"- 政策风险: 监管政策变化可能影响行业发展",
			"- 流动性风险: 市场流动性变化可能导致价格波动",
			"- 公司基本面风险: 业绩不及预期可能导致股价调整")
		return lines, nil
	})

	b.AddLines("", NewsDisclaimer)

	return &entity.Report{
		Symbol:      symbol,
		Tool:        entity.ToolNews,
		Body:        b.Render(),
		GeneratedAt: now,
	}, nil
}

// trendWindowLines summarizes the short window: period price change,
// volume trend (second-half mean versus first-half mean) and the mean
// amplitude character.
func trendWindowLines(window []entity.PricePoint) (lines []string, priceChange, volumeChange entity.Metric) {
	if len(window) == 0 {
		return nil, entity.Metric{}, entity.Metric{}
	}
	first, last := window[0], window[len(window)-1]
	if chg, err := indicator.PriceChangePct(first.Close, last.Close); err == nil {
		priceChange = entity.SomeMetric(chg)
		lines = append(lines, fmt.Sprintf("- 期间价格变动: %.2f%%", chg))
	}

	if len(window) >= 2 {
		half := len(window) / 2
		firstMean := meanVolume(window[:half])
		secondMean := meanVolume(window[half:])
		if firstMean > 0 {
			vc := (secondMean - firstMean) / firstMean * 100
			volumeChange = entity.SomeMetric(vc)
			direction := "上升"
			if vc <= 0 {
				direction = "下降"
			}
			abs := vc
			if abs < 0 {
				abs = -abs
			}
			lines = append(lines, fmt.Sprintf("- 成交量变化趋势: %s%.2f%%", direction, abs))
		}
	}

	var ampSum float64
	var ampCount int
	for _, p := range window {
		if p.Low > 0 {
			ampSum += (p.High - p.Low) / p.Low * 100
			ampCount++
		}
	}
	if ampCount > 0 {
		mean := ampSum / float64(ampCount)
		character := "波动平稳"
		if mean > calmAmplitudePct {
			character = "剧烈波动"
		}
		lines = append(lines, fmt.Sprintf("- 股价波动特征: %s, 平均振幅 %.2f%%", character, mean))
	}
	return lines, priceChange, volumeChange
}

func meanVolume(points []entity.PricePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum int64
	for _, p := range points {
		sum += p.Volume
	}
	return float64(sum) / float64(len(points))
}

// fundFlowLine maps the volume-trend change onto the fund-flow reading.
func fundFlowLine(volumeChange entity.Metric) string {
	if !volumeChange.Valid {
		return "- 无法分析近期资金流向"
	}
	switch vc := volumeChange.Value; {
	case vc > 20:
		return "- 近期资金流入显著增加，存在积极做多迹象"
	case vc > 0:
		return "- 资金小幅流入，关注度有所提升"
	case vc > -20:
		return "- 资金小幅流出，投资情绪趋于谨慎"
	default:
		return "- 资金大幅流出，投资者信心不足"
	}
}

// adviceLine composes the price-change and volume-change readings into
// the advice matrix. Undefined inputs fall through to the generic
// fundamentals advice.
func adviceLine(priceChange, volumeChange entity.Metric) string {
	if !priceChange.Valid || !volumeChange.Valid {
		return "- 建议结合公司基本面和行业发展前景做出投资决策"
	}
	pc, vc := priceChange.Value, volumeChange.Value
	switch {
	case pc > 10 && vc > 0:
		return "- 股价走势强劲，成交量配合，短期可能继续上行"
	case pc > 5 && vc < 0:
		return "- 股价虽有上涨但成交量萎缩，上涨动能不足，建议谨慎追高"
	case pc < -10 && vc > 20:
		return "- 股价大幅下跌但成交量放大，可能是强势资金介入迹象，可逢低关注"
	case pc < -5 && vc < 0:
		return "- 股价下跌且成交量萎缩，市场信心不足，建议暂时观望"
	default:
		return "- 股价走势平稳，可根据基本面和技术面综合判断"
	}
}

// sentimentLine counts up versus down sessions in the window and maps
// the ratio onto the five sentiment labels.
func sentimentLine(window []entity.PricePoint) string {
	var up, down int
	for _, p := range window {
		switch {
		case p.PctChange > 0:
			up++
		case p.PctChange < 0:
			down++
		}
	}
	switch {
	case up > down*2:
		return "- 市场情绪: 强烈看多"
	case up > down:
		return "- 市场情绪: 偏向乐观"
	case down > up*2:
		return "- 市场情绪: 强烈看空"
	case down > up:
		return "- 市场情绪: 偏向悲观"
	default:
		return "- 市场情绪: 中性"
	}
}
