// Package chart renders candlestick-style price charts as PNG files.
package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/usecase"
)

// maOverlays are the moving-average windows drawn on the chart. For
// short series the windows shrink so an overlay still appears; that
// shrinking is a rendering concession only and the scored indicators
// never use it.
var maOverlays = []struct {
	window int
	color  drawing.Color
}{
	{5, drawing.Color{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}},
	{10, drawing.Color{R: 0x80, G: 0x00, B: 0x80, A: 0xff}},
	{20, drawing.Color{R: 0x00, G: 0x80, B: 0x00, A: 0xff}},
}

// Renderer draws a price chart with MA overlays and a volume sub-axis
// and writes it under OutputDir.
type Renderer struct {
	OutputDir string
	now       func() time.Time
}

var _ usecase.ChartRenderer = (*Renderer)(nil)

// NewRenderer creates a Renderer writing into outputDir. An empty
// outputDir falls back to the system temp directory.
func NewRenderer(outputDir string) *Renderer {
	if outputDir == "" {
		outputDir = filepath.Join(os.TempDir(), "ashare_charts")
	}
	return &Renderer{OutputDir: outputDir, now: time.Now}
}

// RenderDailyChart renders the close-price line, overlays and volume
// bars for the series and returns the written file path.
func (r *Renderer) RenderDailyChart(_ context.Context, symbol string, points []entity.PricePoint) (string, error) {
	if len(points) < 2 {
		return "", fmt.Errorf("chart for %s needs at least 2 sessions, got %d", symbol, len(points))
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	dates := make([]time.Time, len(points))
	closes := make([]float64, len(points))
	volumes := make([]float64, len(points))
	for i, p := range points {
		dates[i] = p.Date
		closes[i] = p.Close
		volumes[i] = float64(p.Volume)
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "收盘价",
			XValues: dates,
			YValues: closes,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		},
	}
	for _, overlay := range maOverlays {
		w := ShrinkWindow(overlay.window, len(points))
		if w == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    fmt.Sprintf("MA%d", w),
			XValues: dates[w-1:],
			YValues: rollingMean(closes, w),
			Style:   chart.Style{StrokeColor: overlay.color, StrokeWidth: 1},
		})
	}
	series = append(series, chart.TimeSeries{
		Name:    "成交量",
		XValues: dates,
		YValues: volumes,
		YAxis:   chart.YAxisSecondary,
		Style: chart.Style{
			StrokeColor: chart.ColorAlternateGray,
			StrokeWidth: 1,
		},
	})

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s 行情走势", symbol),
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "价格(元)",
		},
		YAxisSecondary: chart.YAxis{
			Name: "成交量(手)",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	path := filepath.Join(r.OutputDir,
		fmt.Sprintf("%s_daily_%s.png", symbol, r.now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("render chart for %s: %w", symbol, err)
	}
	return path, nil
}

// ShrinkWindow returns the moving-average window actually drawn for a
// series of n sessions: the requested window when it fits, otherwise
// n-1. It returns 0 when no overlay is drawable at all.
func ShrinkWindow(window, n int) int {
	if n <= 2 {
		return 0
	}
	if window > n-1 {
		return n - 1
	}
	return window
}

// rollingMean computes the w-window rolling mean; the result has
// len(values)-w+1 entries aligned to the window's last element.
func rollingMean(values []float64, w int) []float64 {
	out := make([]float64, 0, len(values)-w+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= w {
			sum -= values[i-w]
		}
		if i >= w-1 {
			out = append(out, sum/float64(w))
		}
	}
	return out
}
