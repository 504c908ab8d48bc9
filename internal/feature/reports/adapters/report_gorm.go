// Package adapters provides the persistence adapters of the reports feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ashare_analyst/internal/feature/reports/domain/entity"
	"ashare_analyst/internal/feature/reports/usecase"
)

type reportGorm struct {
	db *gorm.DB
}

var _ usecase.ReportRepository = (*reportGorm)(nil)

// NewReportRepository creates the GORM-backed report repository.
func NewReportRepository(db *gorm.DB) *reportGorm {
	return &reportGorm{db: db}
}

// ReportModel is the persistence model of an archived report.
type ReportModel struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"size:16;not null;uniqueIndex:report_sym_tool_time,priority:1"`
	Tool        string    `gorm:"size:32;not null;uniqueIndex:report_sym_tool_time,priority:2"`
	GeneratedAt time.Time `gorm:"not null;uniqueIndex:report_sym_tool_time,priority:3"`

	Body      string `gorm:"type:text;not null"`
	Score     *float64
	Tier      string `gorm:"size:64"`
	ChartPath string `gorm:"size:255"`
}

func (ReportModel) TableName() string {
	return "reports"
}

func toModel(e entity.ReportRecord) ReportModel {
	return ReportModel{
		Symbol:      e.Symbol,
		Tool:        e.Tool,
		GeneratedAt: e.GeneratedAt,
		Body:        e.Body,
		Score:       e.Score,
		Tier:        e.Tier,
		ChartPath:   e.ChartPath,
	}
}

func toEntity(m ReportModel) entity.ReportRecord {
	return entity.ReportRecord{
		ID:          m.ID,
		Symbol:      m.Symbol,
		Tool:        m.Tool,
		GeneratedAt: m.GeneratedAt,
		Body:        m.Body,
		Score:       m.Score,
		Tier:        m.Tier,
		ChartPath:   m.ChartPath,
	}
}

// Save archives one report. Re-archiving the same generation (same
// symbol, tool and timestamp) overwrites the previous row.
func (r *reportGorm) Save(ctx context.Context, record entity.ReportRecord) error {
	m := toModel(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "tool"}, {Name: "generated_at"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "score", "tier", "chart_path"}),
	}).Create(&m).Error
}

// FindBySymbol returns the archived reports of one symbol, newest
// first. An empty tool matches every tool.
func (r *reportGorm) FindBySymbol(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error) {
	var rows []ReportModel
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("generated_at DESC")
	if tool != "" {
		q = q.Where("tool = ?", tool)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.ReportRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
