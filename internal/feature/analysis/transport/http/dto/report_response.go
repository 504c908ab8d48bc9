// Package dto defines the HTTP response shapes of the analysis feature.
package dto

// ReportResponse is the response DTO of every analysis tool.
type ReportResponse struct {
	Symbol      string   `json:"symbol"`
	Tool        string   `json:"tool"`
	Body        string   `json:"body"`
	Score       *float64 `json:"score,omitempty"`
	Tier        string   `json:"tier,omitempty"`
	ChartPath   string   `json:"chart_path,omitempty"`
	GeneratedAt string   `json:"generated_at"`
}

// ErrorResponse is the error payload of the analysis endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
