package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
)

type mockFinancialReporter struct {
	GenerateFunc func(ctx context.Context, symbol string) (*entity.Report, error)
}

func (m *mockFinancialReporter) GenerateFinancialReport(ctx context.Context, symbol string) (*entity.Report, error) {
	return m.GenerateFunc(ctx, symbol)
}

type mockTrendReporter struct {
	GenerateFunc func(ctx context.Context, symbol, period string, days int) (*entity.Report, error)
}

func (m *mockTrendReporter) GenerateTrendReport(ctx context.Context, symbol, period string, days int) (*entity.Report, error) {
	return m.GenerateFunc(ctx, symbol, period, days)
}

type mockNewsReporter struct {
	GenerateFunc func(ctx context.Context, symbol string, days int) (*entity.Report, error)
}

func (m *mockNewsReporter) GenerateNewsReport(ctx context.Context, symbol string, days int) (*entity.Report, error) {
	return m.GenerateFunc(ctx, symbol, days)
}

type mockNarrativeAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, prompt string) (string, error)
	calls       int
}

func (m *mockNarrativeAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.AnalyzeFunc(ctx, prompt)
}

func TestGenerateComprehensiveReport_ComposesAllTools(t *testing.T) {
	financial := &mockFinancialReporter{
		GenerateFunc: func(ctx context.Context, symbol string) (*entity.Report, error) {
			return &entity.Report{
				Symbol: symbol, Tool: entity.ToolFinancial,
				Body:  "财务正文",
				Score: entity.SomeMetric(78.5), Tier: "良好",
			}, nil
		},
	}
	trend := &mockTrendReporter{
		GenerateFunc: func(ctx context.Context, symbol, period string, days int) (*entity.Report, error) {
			return &entity.Report{
				Symbol: symbol, Tool: entity.ToolTrend,
				Body: "走势正文", ChartPath: "/tmp/charts/600519.png",
			}, nil
		},
	}
	news := &mockNewsReporter{
		GenerateFunc: func(ctx context.Context, symbol string, days int) (*entity.Report, error) {
			return &entity.Report{Symbol: symbol, Tool: entity.ToolNews, Body: "市场正文"}, nil
		},
	}
	var gotPrompt string
	narrative := &mockNarrativeAnalyzer{
		AnalyzeFunc: func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "综合点评正文", nil
		},
	}

	uc := NewComprehensiveUsecase(financial, trend, news, narrative)
	uc.now = fixedNow

	report, err := uc.GenerateComprehensiveReport(context.Background(), "600519")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Tool != entity.ToolComprehensive {
		t.Errorf("tool = %q, want %q", report.Tool, entity.ToolComprehensive)
	}
	if !report.Score.Valid || report.Score.Value != 78.5 || report.Tier != "良好" {
		t.Errorf("score/tier not carried from financial report: %+v %q", report.Score, report.Tier)
	}
	if report.ChartPath != "/tmp/charts/600519.png" {
		t.Errorf("chart path not carried: %q", report.ChartPath)
	}
	for _, want := range []string{"财务正文", "走势正文", "市场正文", "### AI综合点评", "综合点评正文"} {
		if !strings.Contains(report.Body, want) {
			t.Errorf("report body missing %q", want)
		}
	}
	if narrative.calls != 1 {
		t.Errorf("analyzer called %d times, want 1", narrative.calls)
	}
	for _, want := range []string{"600519", "财务正文", "走势正文", "市场正文"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateComprehensiveReport_PartialFailuresDegrade(t *testing.T) {
	financial := &mockFinancialReporter{
		GenerateFunc: func(ctx context.Context, symbol string) (*entity.Report, error) {
			return nil, errProvider
		},
	}
	trend := &mockTrendReporter{
		GenerateFunc: func(ctx context.Context, symbol, period string, days int) (*entity.Report, error) {
			return &entity.Report{Symbol: symbol, Tool: entity.ToolTrend, Body: "走势正文"}, nil
		},
	}
	news := &mockNewsReporter{
		GenerateFunc: func(ctx context.Context, symbol string, days int) (*entity.Report, error) {
			return nil, errProvider
		},
	}
	narrative := &mockNarrativeAnalyzer{
		AnalyzeFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	uc := NewComprehensiveUsecase(financial, trend, news, narrative)
	uc.now = fixedNow

	report, err := uc.GenerateComprehensiveReport(context.Background(), "000001")
	if err != nil {
		t.Fatalf("one surviving tool must be enough: %v", err)
	}
	for _, want := range []string{
		"财务分析生成失败",
		"走势正文",
		"市场环境分析生成失败",
		"AI综合点评生成失败",
	} {
		if !strings.Contains(report.Body, want) {
			t.Errorf("report body missing %q", want)
		}
	}
	if report.Score.Valid {
		t.Error("score must be invalid when the financial tool failed")
	}
}

func TestGenerateComprehensiveReport_AllToolsFail(t *testing.T) {
	fail := func(ctx context.Context, symbol string) (*entity.Report, error) { return nil, errProvider }
	uc := NewComprehensiveUsecase(
		&mockFinancialReporter{GenerateFunc: fail},
		&mockTrendReporter{GenerateFunc: func(ctx context.Context, symbol, period string, days int) (*entity.Report, error) {
			return nil, errProvider
		}},
		&mockNewsReporter{GenerateFunc: func(ctx context.Context, symbol string, days int) (*entity.Report, error) {
			return nil, errProvider
		}},
		nil,
	)
	uc.now = fixedNow

	_, err := uc.GenerateComprehensiveReport(context.Background(), "000001")
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestGenerateComprehensiveReport_NilAnalyzerSkipsCommentary(t *testing.T) {
	ok := func(body string) *entity.Report { return &entity.Report{Body: body} }
	uc := NewComprehensiveUsecase(
		&mockFinancialReporter{GenerateFunc: func(ctx context.Context, symbol string) (*entity.Report, error) {
			return ok("财务正文"), nil
		}},
		&mockTrendReporter{GenerateFunc: func(ctx context.Context, symbol, period string, days int) (*entity.Report, error) {
			return ok("走势正文"), nil
		}},
		&mockNewsReporter{GenerateFunc: func(ctx context.Context, symbol string, days int) (*entity.Report, error) {
			return ok("市场正文"), nil
		}},
		nil,
	)
	uc.now = fixedNow

	report, err := uc.GenerateComprehensiveReport(context.Background(), "000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(report.Body, "AI综合点评") {
		t.Error("commentary section must be absent without an analyzer")
	}
}
