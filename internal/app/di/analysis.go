package di

import (
	"context"
	"log/slog"
	"os"

	"ashare_analyst/internal/feature/analysis/adapters/chart"
	"ashare_analyst/internal/feature/analysis/adapters/gemini"
	"ashare_analyst/internal/feature/analysis/usecase"
)

// AnalysisUsecases bundles the four report tools behind one value so
// the handler layer receives a single dependency.
type AnalysisUsecases struct {
	*usecase.FinancialUsecase
	*usecase.TrendUsecase
	*usecase.NewsUsecase
	*usecase.ComprehensiveUsecase
}

// NewAnalysisUsecases wires the analysis tools: the market repository,
// the chart renderer and, when configured, the Gemini narrative
// analyzer. A failed Gemini setup degrades to reports without the
// commentary section.
func NewAnalysisUsecases(ctx context.Context, market usecase.MarketRepository) AnalysisUsecases {
	renderer := chart.NewRenderer(os.Getenv("CHART_OUTPUT_DIR"))

	financial := usecase.NewFinancialUsecase(market)
	trend := usecase.NewTrendUsecase(market, renderer)
	news := usecase.NewNewsUsecase(market)

	var narrative usecase.NarrativeAnalyzer
	if client, err := gemini.NewNarrativeClient(ctx); err != nil {
		slog.Warn("gemini unavailable, comprehensive reports run without commentary", "error", err)
	} else {
		narrative = client
	}
	comprehensive := usecase.NewComprehensiveUsecase(financial, trend, news, narrative)

	return AnalysisUsecases{
		FinancialUsecase:     financial,
		TrendUsecase:         trend,
		NewsUsecase:          news,
		ComprehensiveUsecase: comprehensive,
	}
}
