package eastmoney

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/usecase"
)

func TestSecID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		code string
		want string
	}{
		{"600519", "1.600519"},
		{"510300", "1.510300"},
		{"900901", "1.900901"},
		{"000001", "0.000001"},
		{"300750", "0.300750"},
		{"", "0.000000"},
	}
	for _, tc := range testCases {
		if got := SecID(tc.code); got != tc.want {
			t.Errorf("SecID(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestEastmoneyMarket_GetStockInfo_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("secid"); got != "1.600519" {
			t.Errorf("expected secid 1.600519, got %s", got)
		}
		if r.Header.Get("User-Agent") == "" || r.Header.Get("Referer") == "" {
			t.Error("expected browser-like headers")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"f57":"600519","f58":"贵州茅台","f116":2100000000000,"f127":"酿酒行业","f162":28.35,"f167":8.9}}`))
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	m, err := market.GetStockInfo(context.Background(), "600519")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name, _ := m.Get(entity.MetricName); name != "贵州茅台" {
		t.Errorf("name = %q", name)
	}
	if industry, _ := m.Get(entity.MetricIndustry); industry != "酿酒行业" {
		t.Errorf("industry = %q", industry)
	}
	if pe, ok := m.Float(entity.MetricPE); !ok || pe != 28.35 {
		t.Errorf("pe = %v ok=%v", pe, ok)
	}
}

func TestEastmoneyMarket_GetStockInfo_NullData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	_, err := market.GetStockInfo(context.Background(), "999999")
	if !errors.Is(err, domain.ErrParseFailure) {
		t.Errorf("err = %v, want ErrParseFailure", err)
	}
}

func TestEastmoneyMarket_GetBidAskSnapshot_DashValuesOmitted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suspended stocks report "-" for the numeric fields.
		_, _ = w.Write([]byte(`{"data":{"f43":12.34,"f50":"-","f168":2.5}}`))
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	m, err := market.GetBidAskSnapshot(context.Background(), "000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price, ok := m.Float(entity.MetricPrice); !ok || price != 12.34 {
		t.Errorf("price = %v ok=%v", price, ok)
	}
	if _, ok := m.Get(entity.MetricVolumeRatio); ok {
		t.Error("dash-valued volume ratio must be absent")
	}
	if turnover, ok := m.Float(entity.MetricTurnover); !ok || turnover != 2.5 {
		t.Errorf("turnover = %v ok=%v", turnover, ok)
	}
}

func TestEastmoneyMarket_GetHistory_ParsesKlines(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("klt") != "101" {
			t.Errorf("expected klt 101, got %s", q.Get("klt"))
		}
		if q.Get("fqt") != "1" {
			t.Errorf("expected fqt 1 for qfq, got %s", q.Get("fqt"))
		}
		if q.Get("beg") != "20260301" || q.Get("end") != "20260310" {
			t.Errorf("unexpected range %s..%s", q.Get("beg"), q.Get("end"))
		}
		_, _ = w.Write([]byte(`{"data":{"klines":[
			"2026-03-02,10.00,10.20,10.30,9.95,123456,125000000.00,3.52,2.00,0.20,1.10",
			"2026-03-03,10.20,10.10,10.25,10.05,98765,99000000.00,1.96,-0.98,-0.10,0.90"
		]}}`))
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	points, err := market.GetHistory(context.Background(), "000001", usecase.PeriodDaily,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		usecase.AdjustForward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	p := points[0]
	if p.Date != time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("date = %v", p.Date)
	}
	if p.Open != 10.00 || p.Close != 10.20 || p.High != 10.30 || p.Low != 9.95 {
		t.Errorf("ohlc = %+v", p)
	}
	if p.Volume != 123456 {
		t.Errorf("volume = %d", p.Volume)
	}
	if p.PctChange != 2.00 {
		t.Errorf("pct change = %v", p.PctChange)
	}
	if points[1].PctChange != -0.98 {
		t.Errorf("pct change[1] = %v", points[1].PctChange)
	}
}

func TestEastmoneyMarket_GetHistory_UnsupportedPeriod(t *testing.T) {
	t.Parallel()

	market := NewEastmoneyMarket(LoadConfig(), &http.Client{}, nil)
	_, err := market.GetHistory(context.Background(), "000001", "hourly",
		time.Now().AddDate(0, 0, -7), time.Now(), usecase.AdjustForward)
	if err == nil {
		t.Fatal("expected error for unsupported period")
	}
}

func TestEastmoneyMarket_GetIndexSnapshot_ScalesChangePct(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("secids"); got != indexSecIDs {
			t.Errorf("secids = %s", got)
		}
		_, _ = w.Write([]byte(`{"data":{"diff":[
			{"f12":"000001","f14":"上证指数","f2":3250.12,"f3":-25},
			{"f12":"399001","f14":"深证成指","f2":10321.55,"f3":0.45}
		]}}`))
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	quotes, err := market.GetIndexSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	// x100-scaled values come back down, already-decimal values pass through.
	if quotes[0].ChangePct != -0.25 {
		t.Errorf("scaled change = %v, want -0.25", quotes[0].ChangePct)
	}
	if quotes[1].ChangePct != 0.45 {
		t.Errorf("decimal change = %v, want 0.45", quotes[1].ChangePct)
	}
}

func TestEastmoneyMarket_RetriesThenFails(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	_, err := market.GetStockInfo(context.Background(), "000001")
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("err = %v, want ErrDataUnavailable", err)
	}
	if calls != maxRetries {
		t.Errorf("server hit %d times, want %d", calls, maxRetries)
	}
}

func TestEastmoneyMarket_RetryRecovers(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"f58":"平安银行"}}`))
	}))
	defer server.Close()

	market := NewEastmoneyMarket(Config{QuoteBaseURL: server.URL, HistoryBaseURL: server.URL}, server.Client(), nil)

	m, err := market.GetStockInfo(context.Background(), "000001")
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if name, _ := m.Get(entity.MetricName); name != "平安银行" {
		t.Errorf("name = %q", name)
	}
	if calls != 2 {
		t.Errorf("server hit %d times, want 2", calls)
	}
}
