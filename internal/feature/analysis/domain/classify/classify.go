// Package classify maps numeric indicator values to qualitative
// judgments through fixed threshold tables. Every rule is total over
// the reals with closed-open buckets (lower bound inclusive, upper
// exclusive); a value that cannot be parsed never reaches a rule and
// surfaces as ErrParseFailure instead of a default label.
package classify

import (
	"fmt"
	"strconv"
	"strings"

	"ashare_analyst/internal/feature/analysis/domain"
)

// Code identifies a classification bucket independently of its
// human-readable analysis text. The scorer keys off codes, the report
// assembler prints the Analysis strings.
type Code string

const (
	PELoss       Code = "pe_loss"
	PELow        Code = "pe_low"
	PEReasonable Code = "pe_reasonable"
	PEHigh       Code = "pe_high"
	PEExtreme    Code = "pe_extreme"

	PBBelowBook  Code = "pb_below_book"
	PBReasonable Code = "pb_reasonable"
	PBHigh       Code = "pb_high"

	TurnoverInactive Code = "turnover_inactive"
	TurnoverNormal   Code = "turnover_normal"
	TurnoverActive   Code = "turnover_active"
	TurnoverExtreme  Code = "turnover_extreme"

	VolumeRatioDepressed Code = "volume_ratio_depressed"
	VolumeRatioBelowAvg  Code = "volume_ratio_below_avg"
	VolumeRatioNormal    Code = "volume_ratio_normal"
	VolumeRatioActive    Code = "volume_ratio_active"
	VolumeRatioSurge     Code = "volume_ratio_surge"

	ReturnStrong   Code = "return_strong"
	ReturnGood     Code = "return_good"
	ReturnMildGain Code = "return_mild_gain"
	ReturnMildLoss Code = "return_mild_loss"
	ReturnPoor     Code = "return_poor"

	VolatilityLow      Code = "volatility_low"
	VolatilityModerate Code = "volatility_moderate"
	VolatilityElevated Code = "volatility_elevated"
	VolatilityHigh     Code = "volatility_high"

	SharpeNegative  Code = "sharpe_negative"
	SharpePoor      Code = "sharpe_poor"
	SharpeFair      Code = "sharpe_fair"
	SharpeGood      Code = "sharpe_good"
	SharpeExcellent Code = "sharpe_excellent"

	MABullish Code = "ma_bullish"
	MABearish Code = "ma_bearish"
	MAMixed   Code = "ma_mixed"

	MACDStrongBuy    Code = "macd_strong_buy"
	MACDCautiousBuy  Code = "macd_cautious_buy"
	MACDWeakBuy      Code = "macd_weak_buy"
	MACDStrongSell   Code = "macd_strong_sell"
	MACDCautiousSell Code = "macd_cautious_sell"
	MACDWeakSell     Code = "macd_weak_sell"
)

// Outcome is the result of classifying one indicator value.
type Outcome struct {
	Indicator string  // Chinese indicator name, e.g. 市盈率
	Value     float64 // the classified numeric value
	Code      Code
	Analysis  string // Chinese analysis sentence for the report
}

// PE classifies a price-to-earnings ratio.
func PE(v float64) Outcome {
	o := Outcome{Indicator: "市盈率", Value: v}
	switch {
	case v < 0:
		o.Code, o.Analysis = PELoss, "负值，可能表明公司当前处于亏损状态"
	case v < 15:
		o.Code, o.Analysis = PELow, "较低，可能被低估或存在风险因素"
	case v < 30:
		o.Code, o.Analysis = PEReasonable, "处于合理区间，符合行业平均水平"
	case v < 50:
		o.Code, o.Analysis = PEHigh, "较高，投资者对公司未来增长预期较强"
	default:
		o.Code, o.Analysis = PEExtreme, "极高，可能存在泡沫或特殊增长预期"
	}
	return o
}

// PB classifies a price-to-book ratio.
func PB(v float64) Outcome {
	o := Outcome{Indicator: "市净率", Value: v}
	switch {
	case v < 1:
		o.Code, o.Analysis = PBBelowBook, "低于1，可能被低估或资产回报率较低"
	case v < 3:
		o.Code, o.Analysis = PBReasonable, "处于合理区间，符合一般企业估值水平"
	default:
		o.Code, o.Analysis = PBHigh, "较高，表明市场对公司资产质量评价较高"
	}
	return o
}

// Turnover classifies a turnover rate (换手率, percent).
func Turnover(v float64) Outcome {
	o := Outcome{Indicator: "换手率", Value: v}
	switch {
	case v < 1:
		o.Code, o.Analysis = TurnoverInactive, "低换手，交易不活跃，可能缺乏市场关注"
	case v < 3:
		o.Code, o.Analysis = TurnoverNormal, "正常换手，交易活跃度适中"
	case v < 7:
		o.Code, o.Analysis = TurnoverActive, "高换手，交易较为活跃"
	default:
		o.Code, o.Analysis = TurnoverExtreme, "极高换手，可能有重大事件或炒作"
	}
	return o
}

// VolumeRatio classifies a volume ratio (量比).
func VolumeRatio(v float64) Outcome {
	o := Outcome{Indicator: "量比", Value: v}
	switch {
	case v < 0.8:
		o.Code, o.Analysis = VolumeRatioDepressed, "低于0.8，成交低迷，人气不足"
	case v < 1:
		o.Code, o.Analysis = VolumeRatioBelowAvg, "略低于1，成交量低于近期平均"
	case v < 2:
		o.Code, o.Analysis = VolumeRatioNormal, "处于正常范围，交易情况平稳"
	case v < 3:
		o.Code, o.Analysis = VolumeRatioActive, "成交活跃，有大资金介入迹象"
	default:
		o.Code, o.Analysis = VolumeRatioSurge, "成交异常活跃，可能有重大资金异动"
	}
	return o
}

// AnnualReturn classifies a yearly price change (percent). Unlike the
// other rules this one keeps 30 inside the "good" bucket.
func AnnualReturn(v float64) Outcome {
	o := Outcome{Indicator: "年度涨跌幅", Value: v}
	switch {
	case v > 30:
		o.Code, o.Analysis = ReturnStrong, "强劲增长，显著跑赢大盘"
	case v >= 10:
		o.Code, o.Analysis = ReturnGood, "良好增长，表现优于市场平均水平"
	case v >= 0:
		o.Code, o.Analysis = ReturnMildGain, "小幅增长，基本符合市场表现"
	case v >= -10:
		o.Code, o.Analysis = ReturnMildLoss, "小幅下跌，略低于市场表现"
	default:
		o.Code, o.Analysis = ReturnPoor, "大幅下跌，表现不佳"
	}
	return o
}

// Volatility classifies an annualized volatility expressed in percent.
func Volatility(v float64) Outcome {
	o := Outcome{Indicator: "年化波动率", Value: v}
	switch {
	case v < 20:
		o.Code, o.Analysis = VolatilityLow, "低波动性，价格相对稳定"
	case v < 30:
		o.Code, o.Analysis = VolatilityModerate, "中等波动性，符合行业平均水平"
	case v < 40:
		o.Code, o.Analysis = VolatilityElevated, "较高波动性，价格波动较大"
	default:
		o.Code, o.Analysis = VolatilityHigh, "高波动性，价格剧烈波动，风险较高"
	}
	return o
}

// Sharpe classifies a Sharpe ratio.
func Sharpe(v float64) Outcome {
	o := Outcome{Indicator: "夏普比率", Value: v}
	switch {
	case v < 0:
		o.Code, o.Analysis = SharpeNegative, "负值，表明投资回报低于无风险利率"
	case v < 0.5:
		o.Code, o.Analysis = SharpePoor, "较低，风险调整后回报不佳"
	case v < 1:
		o.Code, o.Analysis = SharpeFair, "一般，风险和回报较为平衡"
	case v < 2:
		o.Code, o.Analysis = SharpeGood, "良好，提供了较好的风险调整后回报"
	default:
		o.Code, o.Analysis = SharpeExcellent, "优秀，提供了极佳的风险调整后回报"
	}
	return o
}

// MAAlignment classifies the relative order of the 5/10/20-session
// moving averages. The Value carried is MA5.
func MAAlignment(ma5, ma10, ma20 float64) Outcome {
	o := Outcome{Indicator: "均线排列", Value: ma5}
	switch {
	case ma5 > ma10 && ma10 > ma20:
		o.Code, o.Analysis = MABullish, "多头排列，短期走势强劲"
	case ma5 < ma10 && ma10 < ma20:
		o.Code, o.Analysis = MABearish, "空头排列，短期走势疲软"
	default:
		o.Code, o.Analysis = MAMixed, "均线交叉，趋势不明确"
	}
	return o
}

// MACDSignal classifies the DIF/DEA relationship: a golden cross
// (DIF>DEA) grades into strong/cautious/weak buy by zero-axis position,
// a dead cross mirrors it on the sell side. The Value carried is DIF.
func MACDSignal(dif, dea float64) Outcome {
	o := Outcome{Indicator: "MACD信号", Value: dif}
	if dif > dea {
		switch {
		case dif > 0 && dea > 0:
			o.Code, o.Analysis = MACDStrongBuy, "MACD金叉且在零轴上方，强烈买入信号"
		case dif > 0 && dea < 0:
			o.Code, o.Analysis = MACDCautiousBuy, "MACD金叉但仍在零轴下方，买入信号但需谨慎"
		default:
			o.Code, o.Analysis = MACDWeakBuy, "MACD金叉但在零轴下方，弱买入信号"
		}
		return o
	}
	switch {
	case dif < 0 && dea < 0:
		o.Code, o.Analysis = MACDStrongSell, "MACD死叉且在零轴下方，强烈卖出信号"
	case dif < 0 && dea > 0:
		o.Code, o.Analysis = MACDCautiousSell, "MACD死叉但仍在零轴上方，卖出信号但需谨慎"
	default:
		o.Code, o.Analysis = MACDWeakSell, "MACD死叉但在零轴上方，弱卖出信号"
	}
	return o
}

// ByName classifies a named single-value indicator. It backs the
// generic classify operation for snapshot metrics; the two structural
// rules (均线排列, MACD信号) need more than one input and have their own
// entry points.
func ByName(name string, value float64) (Outcome, error) {
	switch name {
	case "市盈率":
		return PE(value), nil
	case "市净率":
		return PB(value), nil
	case "换手率":
		return Turnover(value), nil
	case "量比":
		return VolumeRatio(value), nil
	case "年度涨跌幅":
		return AnnualReturn(value), nil
	case "年化波动率":
		return Volatility(value), nil
	case "夏普比率":
		return Sharpe(value), nil
	}
	return Outcome{}, fmt.Errorf("no classification rule for %q", name)
}

// ParseAndClassify parses raw as a float and classifies it under name.
// Non-numeric input (providers return "-" placeholders) yields
// ErrParseFailure so callers omit the sub-analysis instead of
// mislabeling it.
func ParseAndClassify(name, raw string) (Outcome, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s value %q: %w", name, raw, domain.ErrParseFailure)
	}
	return ByName(name, v)
}
