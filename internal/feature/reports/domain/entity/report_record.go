// Package entity defines the domain entities of the reports feature.
package entity

import "time"

// ReportRecord is one archived analysis report.
type ReportRecord struct {
	ID          uint
	Symbol      string
	Tool        string
	Body        string
	Score       *float64
	Tier        string
	ChartPath   string
	GeneratedAt time.Time
}
