// Package handler provides the HTTP handlers of the analysis feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/transport/http/dto"
	"ashare_analyst/internal/feature/analysis/usecase"
)

// AnalysisUsecase bundles the four report tools.
// Following Go convention: interfaces are defined by the consumer.
type AnalysisUsecase interface {
	usecase.FinancialReporter
	usecase.TrendReporter
	usecase.NewsReporter
	GenerateComprehensiveReport(ctx context.Context, symbol string) (*entity.Report, error)
}

// Archiver persists a generated report. Archiving is best effort: a
// failure is logged and the response still succeeds.
type Archiver interface {
	Archive(ctx context.Context, report *entity.Report) error
}

// AnalysisHandler handles the analysis tool HTTP requests.
type AnalysisHandler struct {
	uc      AnalysisUsecase
	archive Archiver
}

// NewAnalysisHandler creates a new AnalysisHandler. archive may be nil.
func NewAnalysisHandler(uc AnalysisUsecase, archive Archiver) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, archive: archive}
}

// FinancialHandler returns the financial analysis report.
//
// GET /analysis/financial/:symbol
func (h *AnalysisHandler) FinancialHandler(c *gin.Context) {
	h.respond(c, func(ctx context.Context, symbol string) (*entity.Report, error) {
		return h.uc.GenerateFinancialReport(ctx, symbol)
	})
}

// TrendHandler returns the price-trend report with its chart path.
//
// GET /analysis/trend/:symbol?period=daily&days=15
func (h *AnalysisHandler) TrendHandler(c *gin.Context) {
	period := c.DefaultQuery("period", usecase.PeriodDaily)
	days, _ := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(usecase.DefaultTrendDays)))
	h.respond(c, func(ctx context.Context, symbol string) (*entity.Report, error) {
		return h.uc.GenerateTrendReport(ctx, symbol, period, days)
	})
}

// NewsHandler returns the market-context report.
//
// GET /analysis/news/:symbol?days=7
func (h *AnalysisHandler) NewsHandler(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(usecase.DefaultNewsDays)))
	h.respond(c, func(ctx context.Context, symbol string) (*entity.Report, error) {
		return h.uc.GenerateNewsReport(ctx, symbol, days)
	})
}

// ComprehensiveHandler returns the combined report with commentary.
//
// GET /analysis/comprehensive/:symbol
func (h *AnalysisHandler) ComprehensiveHandler(c *gin.Context) {
	h.respond(c, h.uc.GenerateComprehensiveReport)
}

func (h *AnalysisHandler) respond(c *gin.Context, generate func(ctx context.Context, symbol string) (*entity.Report, error)) {
	symbol := c.Param("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
		return
	}

	report, err := generate(c.Request.Context(), symbol)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInsufficientHistory) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if h.archive != nil {
		if err := h.archive.Archive(c.Request.Context(), report); err != nil {
			slog.Warn("report archive failed", "symbol", report.Symbol, "tool", report.Tool, "error", err)
		}
	}

	c.JSON(http.StatusOK, toResponse(report))
}

func toResponse(r *entity.Report) dto.ReportResponse {
	resp := dto.ReportResponse{
		Symbol:      r.Symbol,
		Tool:        r.Tool,
		Body:        r.Body,
		Tier:        r.Tier,
		ChartPath:   r.ChartPath,
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
	}
	if r.Score.Valid {
		score := r.Score.Value
		resp.Score = &score
	}
	return resp
}
