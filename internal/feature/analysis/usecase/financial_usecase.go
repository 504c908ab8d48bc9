package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/classify"
	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/domain/indicator"
	"ashare_analyst/internal/feature/analysis/domain/score"
)

const (
	// recentHistoryDays is the calendar window of the overview history fetch.
	recentHistoryDays = 90
	// annualHistoryDays is the calendar window for annualized indicators.
	annualHistoryDays = 365
	// minAnnualSessions is the session count above which the recent
	// fetch already covers a year and is reused instead of re-fetched.
	minAnnualSessions = 250
	// recentVolatilityWindow is the tail window of the short-term
	// volatility shown in the overview technical section.
	recentVolatilityWindow = 20

	// Disclaimer closes every report.
	Disclaimer = "【免责声明】以上分析仅供参考，不构成投资建议。投资决策需结合个人风险偏好、市场情况和更全面的信息。"
)

// FinancialUsecase generates the per-symbol financial analysis report:
// snapshot metrics, derived technical indicators, threshold-based
// judgments and the weighted composite score.
type FinancialUsecase struct {
	market MarketRepository
	now    func() time.Time
}

// NewFinancialUsecase creates a new FinancialUsecase.
func NewFinancialUsecase(market MarketRepository) *FinancialUsecase {
	return &FinancialUsecase{market: market, now: time.Now}
}

// GenerateFinancialReport builds the financial report for one symbol.
// Each section degrades independently: a provider failure or an
// unparseable metric omits that section and its sub-score, never the
// whole report. The composite score is explicitly undefined (Report.
// Score invalid) when no indicator could be computed.
func (u *FinancialUsecase) GenerateFinancialReport(ctx context.Context, symbol string) (*entity.Report, error) {
	var b reportBuilder
	now := u.now()

	info, infoErr := u.market.GetStockInfo(ctx, symbol)
	bidAsk, bidAskErr := u.market.GetBidAskSnapshot(ctx, symbol)
	recent, recentErr := u.market.GetHistory(ctx, symbol, PeriodDaily,
		now.AddDate(0, 0, -recentHistoryDays), now, AdjustForward)

	// Re-fetch a full year when the overview window cannot cover the
	// annualized indicators.
	annual := recent
	if len(annual) < minAnnualSessions {
		if pts, err := u.market.GetHistory(ctx, symbol, PeriodDaily,
			now.AddDate(0, 0, -annualHistoryDays), now, AdjustForward); err == nil {
			annual = pts
		}
	}

	b.Add("== 股票基本信息 ==", "获取股票基本信息失败", func() ([]string, error) {
		if infoErr != nil {
			return nil, infoErr
		}
		return snapshotLines(info, entity.MetricName, entity.MetricIndustry,
			entity.MetricPE, entity.MetricPB, entity.MetricMarketCap), nil
	})

	b.Add("== 实时盘口数据 ==", "获取盘口数据失败", func() ([]string, error) {
		if bidAskErr != nil {
			return nil, bidAskErr
		}
		return snapshotLines(bidAsk, entity.MetricPrice, entity.MetricTurnover,
			entity.MetricVolumeRatio), nil
	})

	b.Add(fmt.Sprintf("== 历史行情概览(近%d天) ==", recentHistoryDays), "获取历史行情数据失败", func() ([]string, error) {
		if recentErr != nil {
			return nil, recentErr
		}
		return overviewLines(recent)
	})

	// Classified outcomes feed both the report text and the composite
	// score. Each indicator is appended only when computable.
	var outcomes []classify.Outcome

	b.Add("== 估值与流动性分析 ==", "", func() ([]string, error) {
		var lines []string
		if infoErr == nil {
			if o, err := classifyMetric(info, entity.MetricPE); err == nil {
				outcomes = append(outcomes, o)
				lines = append(lines, fmt.Sprintf("市盈率(PE): %.2f，%s", o.Value, o.Analysis))
			}
			if o, err := classifyMetric(info, entity.MetricPB); err == nil {
				outcomes = append(outcomes, o)
				lines = append(lines, fmt.Sprintf("市净率(PB): %.2f，%s", o.Value, o.Analysis))
			}
		}
		if bidAskErr == nil {
			if o, err := classifyMetric(bidAsk, entity.MetricTurnover); err == nil {
				outcomes = append(outcomes, o)
				lines = append(lines, fmt.Sprintf("换手率: %.2f%%，%s", o.Value, o.Analysis))
			}
			if o, err := classifyMetric(bidAsk, entity.MetricVolumeRatio); err == nil {
				outcomes = append(outcomes, o)
				lines = append(lines, fmt.Sprintf("量比: %.2f，%s", o.Value, o.Analysis))
			}
		}
		return lines, nil
	})

	b.Add("== 技术指标分析 ==", "", func() ([]string, error) {
		if recentErr != nil || len(recent) == 0 {
			return nil, fmt.Errorf("technical overview: %w", domain.ErrDataUnavailable)
		}
		return u.technicalOverviewLines(recent)
	})

	b.Add("== 成长性与风险指标分析 ==", "", func() ([]string, error) {
		lines, annualOutcomes := annualLines(annual)
		outcomes = append(outcomes, annualOutcomes...)
		return lines, nil
	})

	b.Add("== 技术指标深入分析 ==", "", func() ([]string, error) {
		lines, techOutcomes := deepTechnicalLines(annual)
		outcomes = append(outcomes, techOutcomes...)
		return lines, nil
	})

	composite := score.Composite(outcomes)
	b.Add("== 财务综合评分 ==", "", func() ([]string, error) {
		return compositeLines(composite), nil
	})

	b.Add("== 总体财务评估 ==", "", func() ([]string, error) {
		var recentPoints []entity.PricePoint
		if recentErr == nil {
			recentPoints = recent
		}
		return assessmentLines(info, bidAsk, recentPoints), nil
	})

	b.AddLines("", Disclaimer)

	report := &entity.Report{
		Symbol:      symbol,
		Tool:        entity.ToolFinancial,
		Body:        b.Render(),
		GeneratedAt: now,
	}
	if composite.Available {
		report.Score = entity.SomeMetric(composite.Score)
		report.Tier = composite.Tier
	}
	return report, nil
}

// classifyMetric parses one snapshot entry and classifies it. Missing
// or non-numeric entries yield ErrParseFailure so the caller omits the
// sub-analysis.
func classifyMetric(m entity.SnapshotMetrics, key string) (classify.Outcome, error) {
	raw, ok := m.Get(key)
	if !ok {
		return classify.Outcome{}, fmt.Errorf("%s missing: %w", key, domain.ErrParseFailure)
	}
	return classify.ParseAndClassify(key, raw)
}

// snapshotLines renders the named metrics that are present, in order.
func snapshotLines(m entity.SnapshotMetrics, keys ...string) []string {
	var lines []string
	for _, k := range keys {
		if v, ok := m.Get(k); ok {
			lines = append(lines, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return lines
}

// overviewLines summarizes the recent history window.
func overviewLines(points []entity.PricePoint) ([]string, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("empty history: %w", domain.ErrDataUnavailable)
	}
	first, last := points[0], points[len(points)-1]
	lines := []string{
		fmt.Sprintf("数据周期: %s 至 %s", first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02")),
		fmt.Sprintf("交易日数量: %d", len(points)),
		fmt.Sprintf("区间首日价格: %.2f元", first.Close),
		fmt.Sprintf("区间末日价格: %.2f元", last.Close),
	}
	if chg, err := indicator.PriceChangePct(first.Close, last.Close); err == nil {
		lines = append(lines, fmt.Sprintf("区间涨跌幅: %.2f%%", chg))
	}
	return lines, nil
}

// technicalOverviewLines is the short-horizon technical section: close
// versus the 20-session mean, and the recent volatility of the daily
// percent changes.
func (u *FinancialUsecase) technicalOverviewLines(points []entity.PricePoint) ([]string, error) {
	var lines []string
	closes := entity.Closes(points)
	last := points[len(points)-1]

	if ma20, err := indicator.MovingAverage(closes, 20); err == nil {
		m := ma20[len(ma20)-1]
		if m.Valid && m.Value > 0 {
			diffPct := (last.Close - m.Value) / m.Value * 100
			lines = append(lines,
				fmt.Sprintf("最新收盘价: %.2f元", last.Close),
				fmt.Sprintf("20日均线: %.2f元", m.Value),
				fmt.Sprintf("乖离率(收盘价相对20日均线): %.2f%%", diffPct))
			if last.Close > m.Value {
				lines = append(lines, "股价站上20日均线，短期走势偏强")
			} else {
				lines = append(lines, "股价位于20日均线下方，短期走势偏弱")
			}
		}
	}

	if len(points) >= recentVolatilityWindow {
		tail := entity.PctChanges(points[len(points)-recentVolatilityWindow:])
		if vol, err := indicator.AnnualizedVolatility(tail); err == nil {
			lines = append(lines, fmt.Sprintf("近%d交易日年化波动率: %.2f%%", recentVolatilityWindow, vol*100))
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("technical overview: %w", domain.ErrInsufficientHistory)
	}
	return lines, nil
}

// annualLines computes the growth and risk indicators over the yearly
// window: annual return, annualized volatility and the Sharpe ratio.
// The latter two need at least 20 sessions and stay undefined below
// that, per the insufficient-history rule.
func annualLines(points []entity.PricePoint) ([]string, []classify.Outcome) {
	var lines []string
	var outcomes []classify.Outcome
	if len(points) > 1 {
		if chg, err := indicator.PriceChangePct(points[0].Close, points[len(points)-1].Close); err == nil {
			o := classify.AnnualReturn(chg)
			outcomes = append(outcomes, o)
			lines = append(lines,
				fmt.Sprintf("年度涨跌幅: %.2f%%", chg),
				fmt.Sprintf("年度涨跌幅分析: %s", o.Analysis))
		}
	}

	returns := entity.PctChanges(points)
	vol, volErr := indicator.AnnualizedVolatility(returns)
	if volErr == nil {
		volPct := vol * 100
		o := classify.Volatility(volPct)
		outcomes = append(outcomes, o)
		lines = append(lines,
			fmt.Sprintf("年化波动率: %.2f%%", volPct),
			fmt.Sprintf("波动率分析: %s", o.Analysis))

		if sharpe, err := indicator.SharpeRatio(returns, indicator.DefaultRiskFreeRate); err == nil {
			o := classify.Sharpe(sharpe)
			outcomes = append(outcomes, o)
			lines = append(lines,
				fmt.Sprintf("夏普比率: %.2f", sharpe),
				fmt.Sprintf("夏普比率分析: %s", o.Analysis))
		}
	}
	return lines, outcomes
}

// deepTechnicalLines reports the moving-average ladder, its alignment,
// and the MACD triple with its signal. Indicators whose windows the
// series cannot fill are left out rather than computed short.
func deepTechnicalLines(points []entity.PricePoint) ([]string, []classify.Outcome) {
	var lines []string
	var outcomes []classify.Outcome
	if len(points) == 0 {
		return nil, nil
	}

	series := indicator.ComputeSeries(points)
	last, derived, _ := series.Latest()
	lines = append(lines, fmt.Sprintf("最新收盘价: %.2f元", last.Close))

	for _, ma := range []struct {
		label string
		m     entity.Metric
	}{
		{"5日均线", derived.MA5},
		{"10日均线", derived.MA10},
		{"20日均线", derived.MA20},
		{"60日均线", derived.MA60},
	} {
		if ma.m.Valid {
			lines = append(lines, fmt.Sprintf("%s: %.2f元", ma.label, ma.m.Value))
		}
	}

	if derived.MA5.Valid && derived.MA10.Valid && derived.MA20.Valid {
		o := classify.MAAlignment(derived.MA5.Value, derived.MA10.Value, derived.MA20.Value)
		outcomes = append(outcomes, o)
		lines = append(lines, fmt.Sprintf("均线排列: %s", o.Analysis))
	}

	if series.MACDReliable && derived.DIF.Valid && derived.DEA.Valid {
		lines = append(lines, fmt.Sprintf("MACD指标: DIF=%.4f, DEA=%.4f, MACD柱=%.4f",
			derived.DIF.Value, derived.DEA.Value, derived.MACD.Value))
		o := classify.MACDSignal(derived.DIF.Value, derived.DEA.Value)
		outcomes = append(outcomes, o)
		lines = append(lines, fmt.Sprintf("MACD信号分析: %s", o.Analysis))
	} else if len(points) > 0 {
		lines = append(lines, fmt.Sprintf("MACD指标: 数据不足%d个交易日，不纳入评分", indicator.MACDSlowSpan))
	}
	return lines, outcomes
}

// Strength/weakness cutoffs of the overall assessment: a PE below 15
// counts as cheap and above 30 as rich, a volume ratio above 1.5 as
// active trading, and a windowed move beyond ±10% as a strong or weak
// recent run.
const (
	assessCheapPE     = 15
	assessRichPE      = 30
	assessActiveRatio = 1.5
	assessRunPct      = 10
)

// assessmentLines rolls the headline signals into strengths and
// weaknesses and closes with the preliminary stance: more strengths
// than weaknesses reads 可考虑关注, fewer reads 建议谨慎, a tie stays
// 中性观望. Metrics that are absent or unparseable contribute nothing.
func assessmentLines(info, bidAsk entity.SnapshotMetrics, points []entity.PricePoint) []string {
	var strengths, weaknesses []string

	if pe, ok := info.Float(entity.MetricPE); ok {
		if pe < assessCheapPE {
			strengths = append(strengths, "低估值")
		} else if pe > assessRichPE {
			weaknesses = append(weaknesses, "高估值")
		}
	}
	if ratio, ok := bidAsk.Float(entity.MetricVolumeRatio); ok && ratio > assessActiveRatio {
		strengths = append(strengths, "成交活跃")
	}
	if len(points) > 1 {
		if chg, err := indicator.PriceChangePct(points[0].Close, points[len(points)-1].Close); err == nil {
			if chg > assessRunPct {
				strengths = append(strengths, "近期走势强劲")
			} else if chg < -assessRunPct {
				weaknesses = append(weaknesses, "近期走势疲软")
			}
		}
	}

	var lines []string
	if len(strengths) > 0 {
		lines = append(lines, "优势: "+strings.Join(strengths, ", "))
	}
	if len(weaknesses) > 0 {
		lines = append(lines, "劣势: "+strings.Join(weaknesses, ", "))
	}
	switch {
	case len(strengths) > len(weaknesses):
		lines = append(lines, "初步投资建议: 可考虑关注")
	case len(strengths) < len(weaknesses):
		lines = append(lines, "初步投资建议: 建议谨慎")
	default:
		lines = append(lines, "初步投资建议: 中性观望")
	}
	return lines
}

// compositeLines renders the sub-scores and the composite, or the
// explicit insufficient-data notice when nothing was scoreable.
func compositeLines(c entity.CompositeScore) []string {
	if !c.Available {
		return []string{"数据不足，无法给出综合评分"}
	}
	var lines []string
	for _, s := range c.SubScores {
		lines = append(lines, fmt.Sprintf("%s评分: %.0f (%s)", s.Indicator, s.Score, s.Detail))
	}
	lines = append(lines,
		fmt.Sprintf("综合评分: %.1f/100", c.Score),
		fmt.Sprintf("投资建议: %s", c.Tier))
	return lines
}
