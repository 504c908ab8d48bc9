package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ashare_analyst/internal/feature/reports/domain/entity"
	"ashare_analyst/internal/feature/reports/transport/handler"
)

// mockReportsUsecase is a mock implementation of ReportsUsecase.
type mockReportsUsecase struct {
	ListReportsFunc func(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error)
}

func (m *mockReportsUsecase) ListReports(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error) {
	return m.ListReportsFunc(ctx, symbol, tool, limit)
}

func TestReportsHandler_ListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	score := 82.3
	tests := []struct {
		name           string
		url            string
		mockList       func(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success with records",
			url:  "/reports/600519?tool=financial&limit=5",
			mockList: func(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error) {
				assert.Equal(t, "600519", symbol)
				assert.Equal(t, "financial", tool)
				assert.Equal(t, 5, limit)
				return []entity.ReportRecord{{
					ID:          1,
					Symbol:      "600519",
					Tool:        "financial",
					Body:        "报告正文",
					Score:       &score,
					Tier:        "优质",
					GeneratedAt: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
				}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"symbol":"600519","tool":"financial","body":"报告正文","score":82.3,"tier":"优质","generated_at":"2026-06-01T09:30:00Z"}]`,
		},
		{
			name: "success empty",
			url:  "/reports/999999",
			mockList: func(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error) {
				assert.Equal(t, "", tool)
				assert.Equal(t, 0, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "usecase error maps to 500",
			url:  "/reports/600519",
			mockList: func(ctx context.Context, symbol, tool string, limit int) ([]entity.ReportRecord, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"db down"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewReportsHandler(&mockReportsUsecase{ListReportsFunc: tt.mockList})
			r := gin.New()
			r.GET("/reports/:symbol", h.ListHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
