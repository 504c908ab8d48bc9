package entity

import "time"

// Report tool identifiers.
const (
	ToolFinancial     = "financial"
	ToolTrend         = "trend"
	ToolNews          = "news"
	ToolComprehensive = "comprehensive"
)

// Report is one generated analysis report. Score is only Valid when at
// least one sub-score was computable; a report over empty data still
// exists, with Score invalid and a body that says so.
type Report struct {
	Symbol      string
	Tool        string // one of the Tool* constants
	Body        string
	Score       Metric
	Tier        string
	ChartPath   string // set by the trend tool when a chart was rendered
	GeneratedAt time.Time
}
