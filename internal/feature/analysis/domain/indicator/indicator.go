// Package indicator implements the pure indicator computations used by
// the analysis feature: rolling means, exponential averages, MACD,
// annualized volatility and Sharpe ratio. All functions operate on a
// chronologically ascending series; callers must sort and de-duplicate
// before calling. Nothing here performs I/O.
package indicator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
)

const (
	// TradingDaysPerYear is the annualization factor for daily series.
	TradingDaysPerYear = 252
	// DefaultRiskFreeRate is the assumed risk-free rate for the Sharpe ratio.
	DefaultRiskFreeRate = 0.03
	// MinVolatilityWindow is the minimum number of sessions below which
	// volatility (and therefore Sharpe) is undefined.
	MinVolatilityWindow = 20
	// MACDSlowSpan is the slow EMA span; series shorter than this
	// produce MACD values that must not reach the scoring path.
	MACDSlowSpan = 26
)

// MovingAverage computes the trailing arithmetic mean of window closes
// for every point. The first window-1 entries are invalid. When the
// whole series is shorter than window the MA is undefined outright and
// ErrInsufficientHistory is returned. The window is never shrunk here;
// that concession exists only in the chart adapter.
func MovingAverage(closes []float64, window int) ([]entity.Metric, error) {
	if window <= 0 {
		return nil, fmt.Errorf("moving average window %d: %w", window, domain.ErrInsufficientHistory)
	}
	if len(closes) < window {
		return nil, fmt.Errorf("moving average window %d over %d sessions: %w",
			window, len(closes), domain.ErrInsufficientHistory)
	}
	out := make([]entity.Metric, len(closes))
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = entity.SomeMetric(sum / float64(window))
		}
	}
	return out, nil
}

// EMA computes the exponential moving average with smoothing factor
// 2/(span+1), seeded from the first value. There is no warm-up period:
// every point gets a value, matching the recursive definition
// ema[0]=x[0], ema[i]=α·x[i]+(1−α)·ema[i−1].
func EMA(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACDLines computes DIF = EMA12−EMA26, DEA = EMA(DIF, 9) and the
// histogram 2×(DIF−DEA) for every point. reliable is false when fewer
// than MACDSlowSpan points exist: values are still returned so charts
// can draw them, but the scoring path must treat them as undefined.
func MACDLines(closes []float64) (dif, dea, hist []float64, reliable bool) {
	if len(closes) == 0 {
		return nil, nil, nil, false
	}
	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	dif = make([]float64, len(closes))
	for i := range closes {
		dif[i] = ema12[i] - ema26[i]
	}
	dea = EMA(dif, 9)
	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = 2 * (dif[i] - dea[i])
	}
	return dif, dea, hist, len(closes) >= MACDSlowSpan
}

// AnnualizedVolatility computes the population standard deviation of
// daily percent returns (converted to fractions) scaled by √252. The
// result is a fraction; multiply by 100 for the percent form used in
// classification. Fewer than MinVolatilityWindow observations yield
// ErrInsufficientHistory, never a zero volatility.
func AnnualizedVolatility(returnsPct []float64) (float64, error) {
	if len(returnsPct) < MinVolatilityWindow {
		return 0, fmt.Errorf("volatility over %d sessions (min %d): %w",
			len(returnsPct), MinVolatilityWindow, domain.ErrInsufficientHistory)
	}
	fractions := make([]float64, len(returnsPct))
	for i, r := range returnsPct {
		fractions[i] = r / 100
	}
	return stat.PopStdDev(fractions, nil) * math.Sqrt(TradingDaysPerYear), nil
}

// SharpeRatio computes (annualized mean return − riskFree) / annualized
// volatility over the same observations. A zero volatility (flat
// series) yields 0 rather than a division by zero; an undefined
// volatility propagates as an error.
func SharpeRatio(returnsPct []float64, riskFree float64) (float64, error) {
	vol, err := AnnualizedVolatility(returnsPct)
	if err != nil {
		return 0, err
	}
	if vol == 0 {
		return 0, nil
	}
	fractions := make([]float64, len(returnsPct))
	for i, r := range returnsPct {
		fractions[i] = r / 100
	}
	annualReturn := stat.Mean(fractions, nil) * TradingDaysPerYear
	return (annualReturn - riskFree) / vol, nil
}

// Amplitude computes (max(highs) − min(lows)) / min(lows) × 100 over a window.
func Amplitude(highs, lows []float64) (float64, error) {
	if len(highs) == 0 || len(lows) == 0 {
		return 0, fmt.Errorf("amplitude over empty window: %w", domain.ErrInsufficientHistory)
	}
	maxHigh := floats.Max(highs)
	minLow := floats.Min(lows)
	if minLow <= 0 {
		return 0, fmt.Errorf("amplitude with min low %.4f: %w", minLow, domain.ErrParseFailure)
	}
	return (maxHigh - minLow) / minLow * 100, nil
}

// PriceChangePct computes (end − start) / start × 100.
func PriceChangePct(start, end float64) (float64, error) {
	if start <= 0 {
		return 0, fmt.Errorf("price change from %.4f: %w", start, domain.ErrParseFailure)
	}
	return (end - start) / start * 100, nil
}

// PriceQuantile places latest within [min(closes), max(closes)] as a
// value in [0,1]. A flat window (max == min) yields exactly 0.
func PriceQuantile(latest float64, closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	minClose := floats.Min(closes)
	maxClose := floats.Max(closes)
	if maxClose == minClose {
		return 0
	}
	return (latest - minClose) / (maxClose - minClose)
}

// ComputeSeries attaches MA5/10/20/60, EMA12/26 and the MACD triple to
// every point of the series. Windows the series cannot fill stay
// invalid across all points; one short window never blocks the others.
func ComputeSeries(points []entity.PricePoint) entity.DerivedSeries {
	closes := entity.Closes(points)
	derived := make([]entity.DerivedPoint, len(points))

	for _, w := range []struct {
		window int
		assign func(d *entity.DerivedPoint, m entity.Metric)
	}{
		{5, func(d *entity.DerivedPoint, m entity.Metric) { d.MA5 = m }},
		{10, func(d *entity.DerivedPoint, m entity.Metric) { d.MA10 = m }},
		{20, func(d *entity.DerivedPoint, m entity.Metric) { d.MA20 = m }},
		{60, func(d *entity.DerivedPoint, m entity.Metric) { d.MA60 = m }},
	} {
		ma, err := MovingAverage(closes, w.window)
		if err != nil {
			continue // this window stays undefined, others still compute
		}
		for i := range derived {
			w.assign(&derived[i], ma[i])
		}
	}

	series := entity.DerivedSeries{Points: points, Derived: derived}
	if len(closes) == 0 {
		return series
	}

	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	dif, dea, hist, reliable := MACDLines(closes)
	for i := range derived {
		derived[i].EMA12 = entity.SomeMetric(ema12[i])
		derived[i].EMA26 = entity.SomeMetric(ema26[i])
		derived[i].DIF = entity.SomeMetric(dif[i])
		derived[i].DEA = entity.SomeMetric(dea[i])
		derived[i].MACD = entity.SomeMetric(hist[i])
	}
	series.MACDReliable = reliable
	return series
}
