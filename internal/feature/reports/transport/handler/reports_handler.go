// Package handler provides the HTTP handlers of the reports feature.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ashare_analyst/internal/feature/reports/domain/entity"
	"ashare_analyst/internal/feature/reports/transport/http/dto"
)

// ReportsUsecase lists archived reports.
// Following Go convention: interfaces are defined by the consumer.
type ReportsUsecase interface {
	ListReports(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error)
}

// ReportsHandler handles the report-archive HTTP requests.
type ReportsHandler struct {
	uc ReportsUsecase
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(uc ReportsUsecase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// ListHandler returns the archived reports of one symbol.
//
// GET /reports/:symbol?tool=financial&limit=20
func (h *ReportsHandler) ListHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	tool := c.Query("tool")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	records, err := h.uc.ListReports(c.Request.Context(), symbol, tool, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.ReportRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ReportRecordResponse{
			ID:          r.ID,
			Symbol:      r.Symbol,
			Tool:        r.Tool,
			Body:        r.Body,
			Score:       r.Score,
			Tier:        r.Tier,
			ChartPath:   r.ChartPath,
			GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
