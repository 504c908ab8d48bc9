package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
)

const (
	// NarrativePromptTemplate frames the three tool reports for the
	// model. The reports are appended verbatim after the instruction.
	NarrativePromptTemplate = "你是一名严谨的A股证券分析师。请基于以下三份针对 %s 的报告，" +
		"用中文撰写一段不超过500字的综合点评：先概括财务与技术面结论，再给出风险提示。" +
		"不要编造报告之外的数据。\n\n%s"
)

// FinancialReporter generates the financial analysis report.
// Following Go convention: interfaces are defined by the consumer.
type FinancialReporter interface {
	GenerateFinancialReport(ctx context.Context, symbol string) (*entity.Report, error)
}

// TrendReporter generates the price-trend report with its chart.
type TrendReporter interface {
	GenerateTrendReport(ctx context.Context, symbol, period string, days int) (*entity.Report, error)
}

// NewsReporter generates the market-context report.
type NewsReporter interface {
	GenerateNewsReport(ctx context.Context, symbol string, days int) (*entity.Report, error)
}

// NarrativeAnalyzer generates a narrative summary from a prompt.
type NarrativeAnalyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// ComprehensiveUsecase composes the three report tools and asks the
// narrative analyzer for a closing commentary over their combined text.
type ComprehensiveUsecase struct {
	financial FinancialReporter
	trend     TrendReporter
	news      NewsReporter
	narrative NarrativeAnalyzer
	now       func() time.Time
}

// NewComprehensiveUsecase creates a new ComprehensiveUsecase. The
// narrative analyzer may be nil, in which case the commentary section
// is skipped.
func NewComprehensiveUsecase(f FinancialReporter, t TrendReporter, n NewsReporter, na NarrativeAnalyzer) *ComprehensiveUsecase {
	return &ComprehensiveUsecase{financial: f, trend: t, news: n, narrative: na, now: time.Now}
}

// GenerateComprehensiveReport runs the three tools and appends the
// narrative commentary. Individual tool failures degrade to a note; it
// fails only when every tool failed.
func (u *ComprehensiveUsecase) GenerateComprehensiveReport(ctx context.Context, symbol string) (*entity.Report, error) {
	var b reportBuilder
	now := u.now()

	b.AddLines("", fmt.Sprintf("## %s 综合分析报告", symbol))

	var parts []string
	var score entity.Metric
	var tier, chartPath string

	b.Add("### 财务分析", "财务分析生成失败", func() ([]string, error) {
		r, err := u.financial.GenerateFinancialReport(ctx, symbol)
		if err != nil {
			return nil, err
		}
		parts = append(parts, r.Body)
		score, tier = r.Score, r.Tier
		return []string{r.Body}, nil
	})

	b.Add("### 走势分析", "走势分析生成失败", func() ([]string, error) {
		r, err := u.trend.GenerateTrendReport(ctx, symbol, PeriodDaily, DefaultTrendDays)
		if err != nil {
			return nil, err
		}
		parts = append(parts, r.Body)
		chartPath = r.ChartPath
		return []string{r.Body}, nil
	})

	b.Add("### 市场环境分析", "市场环境分析生成失败", func() ([]string, error) {
		r, err := u.news.GenerateNewsReport(ctx, symbol, DefaultNewsDays)
		if err != nil {
			return nil, err
		}
		parts = append(parts, r.Body)
		return []string{r.Body}, nil
	})

	if len(parts) == 0 {
		return nil, fmt.Errorf("comprehensive report for %s: %w", symbol, domain.ErrDataUnavailable)
	}

	if u.narrative != nil {
		b.Add("### AI综合点评", "AI综合点评生成失败", func() ([]string, error) {
			prompt := fmt.Sprintf(NarrativePromptTemplate, symbol, strings.Join(parts, "\n\n---\n\n"))
			summary, err := u.narrative.Analyze(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return []string{summary}, nil
		})
	}

	report := &entity.Report{
		Symbol:      symbol,
		Tool:        entity.ToolComprehensive,
		Body:        b.Render(),
		Score:       score,
		Tier:        tier,
		ChartPath:   chartPath,
		GeneratedAt: now,
	}
	return report, nil
}
