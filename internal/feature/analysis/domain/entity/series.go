// Package entity defines the domain models for the analysis feature.
package entity

import "time"

// PricePoint represents one trading session of a stock symbol.
// The series a point belongs to is chronological; non-trading days are
// simply absent, not filled with zero rows.
type PricePoint struct {
	Date      time.Time // Trading date
	Open      float64   // Opening price
	High      float64   // Highest price of the session
	Low       float64   // Lowest price of the session
	Close     float64   // Closing price, always > 0
	Volume    int64     // Trading volume (手)
	PctChange float64   // 涨跌幅 relative to the previous close, in percent
}

// Metric is an optional numeric value. Valid is false while the
// underlying indicator is still inside its warm-up window, or when the
// input data could not supply it at all. A zero Metric means
// "unavailable", never "zero value of the indicator".
type Metric struct {
	Value float64
	Valid bool
}

// SomeMetric returns a valid Metric holding v.
func SomeMetric(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// DerivedPoint carries the per-point indicator values attached to a
// PricePoint by the indicator library. Each field is only Valid once
// enough preceding points exist for its window or warm-up.
type DerivedPoint struct {
	MA5   Metric
	MA10  Metric
	MA20  Metric
	MA60  Metric
	EMA12 Metric
	EMA26 Metric
	DIF   Metric
	DEA   Metric
	MACD  Metric // histogram, 2×(DIF−DEA)
}

// DerivedSeries is a PriceSeries with per-point derived fields.
// len(Derived) == len(Points) always holds.
type DerivedSeries struct {
	Points  []PricePoint
	Derived []DerivedPoint

	// MACDReliable is false when the series is shorter than the 26
	// sessions the slow EMA needs. DIF/DEA values are still attached
	// for charting, but the scoring path must treat them as undefined.
	MACDReliable bool
}

// Latest returns the most recent point and its derived fields.
// ok is false for an empty series.
func (s DerivedSeries) Latest() (PricePoint, DerivedPoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, DerivedPoint{}, false
	}
	i := len(s.Points) - 1
	return s.Points[i], s.Derived[i], true
}

// Closes extracts the close column.
func Closes(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Close
	}
	return out
}

// PctChanges extracts the 涨跌幅 column.
func PctChanges(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.PctChange
	}
	return out
}
