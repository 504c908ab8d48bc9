// Package eastmoney provides a client for the Eastmoney push2 quote APIs.
package eastmoney

import (
	"os"
	"time"
)

// Default endpoints of the Eastmoney push2 quote services.
const (
	DefaultQuoteBaseURL   = "https://push2.eastmoney.com"
	DefaultHistoryBaseURL = "https://push2his.eastmoney.com"
)

// Config holds configuration for the Eastmoney API client.
type Config struct {
	QuoteBaseURL   string        // Base URL of the realtime quote API
	HistoryBaseURL string        // Base URL of the kline history API
	Timeout        time.Duration // HTTP request timeout
}

// LoadConfig loads Eastmoney configuration from environment variables,
// falling back to the public endpoints.
func LoadConfig() Config {
	cfg := Config{
		QuoteBaseURL:   os.Getenv("EASTMONEY_QUOTE_BASE_URL"),
		HistoryBaseURL: os.Getenv("EASTMONEY_HISTORY_BASE_URL"),
		Timeout:        10 * time.Second,
	}
	if cfg.QuoteBaseURL == "" {
		cfg.QuoteBaseURL = DefaultQuoteBaseURL
	}
	if cfg.HistoryBaseURL == "" {
		cfg.HistoryBaseURL = DefaultHistoryBaseURL
	}
	return cfg
}
