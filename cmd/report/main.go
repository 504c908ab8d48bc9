// Command report generates one analysis report and prints it to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ashare_analyst/internal/app/di"
	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/usecase"
)

func main() {
	symbol := flag.String("symbol", "", "stock code, e.g. 600519")
	tool := flag.String("tool", entity.ToolFinancial, "financial | trend | news | comprehensive")
	days := flag.Int("days", 0, "lookback days for the trend/news tools")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	market := di.NewMarket(nil)
	uc := di.NewAnalysisUsecases(ctx, market)

	var (
		report *entity.Report
		err    error
	)
	switch *tool {
	case entity.ToolFinancial:
		report, err = uc.GenerateFinancialReport(ctx, *symbol)
	case entity.ToolTrend:
		report, err = uc.GenerateTrendReport(ctx, *symbol, usecase.PeriodDaily, *days)
	case entity.ToolNews:
		report, err = uc.GenerateNewsReport(ctx, *symbol, *days)
	case entity.ToolComprehensive:
		report, err = uc.GenerateComprehensiveReport(ctx, *symbol)
	default:
		log.Fatalf("unknown tool %q", *tool)
	}
	if err != nil {
		log.Fatalf("generate %s report for %s: %v", *tool, *symbol, err)
	}

	fmt.Println(report.Body)
	if report.ChartPath != "" {
		fmt.Fprintf(os.Stderr, "chart: %s\n", report.ChartPath)
	}
}
