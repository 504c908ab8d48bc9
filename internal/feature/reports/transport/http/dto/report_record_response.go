// Package dto defines the HTTP response shapes of the reports feature.
package dto

// ReportRecordResponse is one archived report in a listing.
type ReportRecordResponse struct {
	ID          uint     `json:"id"`
	Symbol      string   `json:"symbol"`
	Tool        string   `json:"tool"`
	Body        string   `json:"body"`
	Score       *float64 `json:"score,omitempty"`
	Tier        string   `json:"tier,omitempty"`
	ChartPath   string   `json:"chart_path,omitempty"`
	GeneratedAt string   `json:"generated_at"`
}

// ErrorResponse is the error payload of the reports endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
