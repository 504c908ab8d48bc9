package chart

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ashare_analyst/internal/feature/analysis/domain/entity"
)

func TestShrinkWindow(t *testing.T) {
	testCases := []struct {
		name     string
		window   int
		sessions int
		want     int
	}{
		{name: "window fits", window: 5, sessions: 30, want: 5},
		{name: "window shrinks to n-1", window: 20, sessions: 10, want: 9},
		{name: "exact boundary keeps window", window: 9, sessions: 10, want: 9},
		{name: "two sessions undrawable", window: 5, sessions: 2, want: 0},
		{name: "empty undrawable", window: 5, sessions: 0, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShrinkWindow(tc.window, tc.sessions); got != tc.want {
				t.Errorf("ShrinkWindow(%d, %d) = %d, want %d", tc.window, tc.sessions, got, tc.want)
			}
		})
	}
}

func TestRollingMean(t *testing.T) {
	got := rollingMean([]float64{1, 2, 3, 4, 5}, 2)
	want := []float64{1.5, 2.5, 3.5, 4.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rollingMean[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRenderDailyChart_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)
	r.now = func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) }

	points := make([]entity.PricePoint, 30)
	day := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	price := 50.0
	for i := range points {
		price *= 1.004
		points[i] = entity.PricePoint{
			Date:   day.AddDate(0, 0, i),
			Open:   price * 0.99,
			High:   price * 1.01,
			Low:    price * 0.98,
			Close:  price,
			Volume: 12000,
		}
	}

	path, err := r.RenderDailyChart(context.Background(), "600519", points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("chart written outside output dir: %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "600519_daily_") {
		t.Errorf("unexpected file name: %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output is not a PNG file")
	}
}

func TestRenderDailyChart_TooFewSessions(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.RenderDailyChart(context.Background(), "000001", []entity.PricePoint{{Close: 10}})
	if err == nil {
		t.Fatal("expected error for a single session")
	}
}
