package entity

import (
	"strconv"
	"strings"
)

// Snapshot metric keys as returned by the quote provider. The provider
// speaks Chinese item names, so the domain does too.
const (
	MetricName        = "股票简称"
	MetricIndustry    = "行业"
	MetricPrice       = "最新价"
	MetricPE          = "市盈率"
	MetricPB          = "市净率"
	MetricTurnover    = "换手率"
	MetricVolumeRatio = "量比"
	MetricMarketCap   = "总市值"
)

// SnapshotMetrics maps indicator names to as-of-query-time values.
// Values are kept as strings because the provider may return "-" or
// other non-numeric placeholders; Float is the single parse point.
type SnapshotMetrics map[string]string

// Get returns the raw value for key. ok is false when absent or blank.
func (m SnapshotMetrics) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Float parses the value for key as a float64. ok is false when the
// entry is absent, blank, or not numeric ("-" placeholders included).
func (m SnapshotMetrics) Float(key string) (float64, bool) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IndexQuote is one market index level (上证指数 etc.).
type IndexQuote struct {
	Code      string
	Name      string
	Price     float64
	ChangePct float64
}
