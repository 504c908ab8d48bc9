// Package usecase implements the report-archive business logic.
package usecase

import (
	"context"
	"fmt"

	analysisentity "ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/reports/domain/entity"
)

// DefaultListLimit bounds the archive listing when no limit is given.
const DefaultListLimit = 20

// ReportRepository persists and retrieves archived reports.
// Following Go convention: interfaces are defined by the consumer.
type ReportRepository interface {
	Save(ctx context.Context, record entity.ReportRecord) error
	FindBySymbol(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error)
}

// ReportsUsecase archives generated analysis reports and lists them.
type ReportsUsecase struct {
	repo ReportRepository
}

// NewReportsUsecase creates a new ReportsUsecase.
func NewReportsUsecase(repo ReportRepository) *ReportsUsecase {
	return &ReportsUsecase{repo: repo}
}

// Archive stores one generated analysis report.
func (u *ReportsUsecase) Archive(ctx context.Context, report *analysisentity.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	record := entity.ReportRecord{
		Symbol:      report.Symbol,
		Tool:        report.Tool,
		Body:        report.Body,
		Tier:        report.Tier,
		ChartPath:   report.ChartPath,
		GeneratedAt: report.GeneratedAt,
	}
	if report.Score.Valid {
		score := report.Score.Value
		record.Score = &score
	}
	if err := u.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("archive report for %s: %w", report.Symbol, err)
	}
	return nil
}

// ListReports returns the archived reports of one symbol, newest
// first, optionally filtered by tool.
func (u *ReportsUsecase) ListReports(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	records, err := u.repo.FindBySymbol(ctx, symbol, tool, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports for %s: %w", symbol, err)
	}
	return records, nil
}
