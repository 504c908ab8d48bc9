// Package score aggregates classified indicators into a 0-100
// composite financial score and a recommendation tier. Only six
// indicators participate (PE, PB, 均线排列, MACD信号, 年化波动率,
// 夏普比率); the composite is the plain mean of whichever of them were
// computable, so availability varies from 0 to 6 per report.
package score

import (
	"fmt"

	"ashare_analyst/internal/feature/analysis/domain/classify"
	"ashare_analyst/internal/feature/analysis/domain/entity"
)

// Recommendation tiers keyed off the composite score.
const (
	TierExcellent      = "优质投资标的，财务指标表现优秀"
	TierGood           = "良好投资标的，财务指标表现良好"
	TierAverage        = "一般投资标的，财务指标表现中等"
	TierCaution        = "谨慎投资，财务指标存在一定问题"
	TierNotRecommended = "不建议投资，财务指标表现较差"
)

// peScore scores a PE value. The table is non-monotone: a PE below 10
// (value stock or hidden risk) scores 90, above the 80 of the
// reasonable [10,20) band.
func peScore(pe float64) float64 {
	switch {
	case pe <= 0:
		return 0
	case pe < 10:
		return 90
	case pe < 20:
		return 80
	case pe < 30:
		return 60
	case pe < 50:
		return 40
	default:
		return 20
	}
}

func pbScore(pb float64) float64 {
	switch {
	case pb < 1:
		return 85
	case pb < 2:
		return 80
	case pb < 4:
		return 60
	default:
		return 40
	}
}

func maScore(code classify.Code) float64 {
	switch code {
	case classify.MABullish:
		return 80
	case classify.MABearish:
		return 40
	default:
		return 60
	}
}

func macdScore(code classify.Code) float64 {
	switch code {
	case classify.MACDStrongBuy:
		return 85
	case classify.MACDCautiousBuy:
		return 75
	case classify.MACDWeakBuy:
		return 65
	case classify.MACDStrongSell:
		return 25
	case classify.MACDCautiousSell:
		return 35
	default: // weak sell
		return 45
	}
}

func volatilityScore(volPct float64) float64 {
	switch {
	case volPct < 20:
		return 80
	case volPct < 30:
		return 70
	case volPct < 40:
		return 50
	default:
		return 30
	}
}

func sharpeScore(sharpe float64) float64 {
	switch {
	case sharpe < 0:
		return 30
	case sharpe < 0.5:
		return 50
	case sharpe < 1:
		return 65
	case sharpe < 2:
		return 80
	default:
		return 90
	}
}

// SubScore maps one classified indicator to its fixed 0-100 sub-score.
// ok is false for indicators that do not participate in the composite
// (换手率, 量比, 年度涨跌幅 are reported but not scored).
func SubScore(o classify.Outcome) (entity.SubScore, bool) {
	s := entity.SubScore{Indicator: o.Indicator, Value: o.Value}
	switch o.Indicator {
	case "市盈率":
		s.Score = peScore(o.Value)
		s.Detail = fmt.Sprintf("PE=%.2f", o.Value)
	case "市净率":
		s.Score = pbScore(o.Value)
		s.Detail = fmt.Sprintf("PB=%.2f", o.Value)
	case "均线排列":
		s.Score = maScore(o.Code)
		s.Detail = o.Analysis
	case "MACD信号":
		s.Score = macdScore(o.Code)
		s.Detail = o.Analysis
	case "年化波动率":
		s.Score = volatilityScore(o.Value)
		s.Detail = fmt.Sprintf("波动率=%.2f%%", o.Value)
	case "夏普比率":
		s.Score = sharpeScore(o.Value)
		s.Detail = fmt.Sprintf("夏普比率=%.2f", o.Value)
	default:
		return entity.SubScore{}, false
	}
	return s, true
}

// Tier maps a composite score to its recommendation text.
func Tier(composite float64) string {
	switch {
	case composite >= 80:
		return TierExcellent
	case composite >= 70:
		return TierGood
	case composite >= 60:
		return TierAverage
	case composite >= 50:
		return TierCaution
	default:
		return TierNotRecommended
	}
}

// Composite aggregates the scoreable outcomes into a CompositeScore.
// Zero scoreable outcomes produce Available=false: an explicitly
// undefined score, not an error and not a zero.
func Composite(outcomes []classify.Outcome) entity.CompositeScore {
	var subs []entity.SubScore
	var total float64
	for _, o := range outcomes {
		s, ok := SubScore(o)
		if !ok {
			continue
		}
		subs = append(subs, s)
		total += s.Score
	}
	if len(subs) == 0 {
		return entity.CompositeScore{}
	}
	mean := total / float64(len(subs))
	return entity.CompositeScore{
		Score:     mean,
		Tier:      Tier(mean),
		Available: true,
		SubScores: subs,
	}
}
