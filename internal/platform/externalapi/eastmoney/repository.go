package eastmoney

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"ashare_analyst/internal/feature/analysis/domain"
	"ashare_analyst/internal/feature/analysis/domain/entity"
	"ashare_analyst/internal/feature/analysis/usecase"
	"ashare_analyst/internal/shared/ratelimiter"
)

// Request fields of the push2 stock/get endpoint. fltt=2 returns
// decimal values instead of scaled integers.
const (
	// f57 code, f58 name, f127 industry, f162 PE, f167 PB, f116 market cap
	infoFields = "f57,f58,f116,f127,f162,f167"
	// f43 latest price, f50 volume ratio, f168 turnover rate
	bidAskFields = "f43,f50,f168"

	// Index secids: 上证指数, 深证成指, 创业板指.
	indexSecIDs = "1.000001,0.399001,0.399006"
	// f12 code, f14 name, f2 price, f3 change pct
	indexFields = "f12,f14,f2,f3"

	// The ulist endpoint reports f3 as percent x100 for indexes; values
	// beyond this bound are scaled back down.
	indexChangePctBound = 20
)

const (
	maxRetries    = 3
	retryDelay    = 500 * time.Millisecond
	retryDelay429 = 5 * time.Second
)

// Browser-like headers; the quote endpoints reject bare clients.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer        = "https://quote.eastmoney.com/"
	acceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"
)

// klt codes of the kline endpoint per period.
var periodKlt = map[string]string{
	usecase.PeriodDaily:   "101",
	usecase.PeriodWeekly:  "102",
	usecase.PeriodMonthly: "103",
}

// EastmoneyMarket fetches quotes and history from the Eastmoney push2
// APIs and implements the analysis MarketRepository.
type EastmoneyMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.MarketRepository = (*EastmoneyMarket)(nil)

// NewEastmoneyMarket creates a new EastmoneyMarket with the given
// config, HTTP client and rate limiter. limiter may be nil.
func NewEastmoneyMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *EastmoneyMarket {
	return &EastmoneyMarket{cfg: cfg, client: client, limiter: limiter}
}

// GetStockInfo fetches the static snapshot of one symbol: name,
// industry, PE, PB and total market cap, keyed by the Chinese metric
// names.
func (e *EastmoneyMarket) GetStockInfo(ctx context.Context, symbol string) (entity.SnapshotMetrics, error) {
	body, err := e.getQuote(ctx, symbol, infoFields)
	if err != nil {
		return nil, err
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return nil, fmt.Errorf("stock info for %s: %w", symbol, domain.ErrParseFailure)
	}

	m := entity.SnapshotMetrics{}
	putString(m, entity.MetricName, data.Get("f58"))
	putString(m, entity.MetricIndustry, data.Get("f127"))
	putFloat(m, entity.MetricPE, data.Get("f162"))
	putFloat(m, entity.MetricPB, data.Get("f167"))
	putFloat(m, entity.MetricMarketCap, data.Get("f116"))
	return m, nil
}

// GetBidAskSnapshot fetches the realtime trading snapshot: latest
// price, turnover rate and volume ratio.
func (e *EastmoneyMarket) GetBidAskSnapshot(ctx context.Context, symbol string) (entity.SnapshotMetrics, error) {
	body, err := e.getQuote(ctx, symbol, bidAskFields)
	if err != nil {
		return nil, err
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return nil, fmt.Errorf("bid/ask snapshot for %s: %w", symbol, domain.ErrParseFailure)
	}

	m := entity.SnapshotMetrics{}
	putFloat(m, entity.MetricPrice, data.Get("f43"))
	putFloat(m, entity.MetricTurnover, data.Get("f168"))
	putFloat(m, entity.MetricVolumeRatio, data.Get("f50"))
	return m, nil
}

// GetHistory fetches klines for the symbol between start and end.
// period selects the bar size (daily/weekly/monthly); adjust "qfq"
// requests forward-adjusted prices.
func (e *EastmoneyMarket) GetHistory(ctx context.Context, symbol, period string, start, end time.Time, adjust string) ([]entity.PricePoint, error) {
	klt, ok := periodKlt[period]
	if !ok {
		return nil, fmt.Errorf("unsupported period %q", period)
	}
	fqt := "0"
	if adjust == usecase.AdjustForward {
		fqt = "1"
	}
	url := fmt.Sprintf("%s/api/qt/stock/kline/get?secid=%s&fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61&klt=%s&fqt=%s&beg=%s&end=%s",
		e.cfg.HistoryBaseURL, SecID(symbol), klt, fqt,
		start.Format("20060102"), end.Format("20060102"))

	body, err := e.do(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("kline fetch for %s: %w", symbol, err)
	}
	return parseKlines(body, symbol)
}

// GetIndexSnapshot fetches the three major index quotes.
func (e *EastmoneyMarket) GetIndexSnapshot(ctx context.Context) ([]entity.IndexQuote, error) {
	url := fmt.Sprintf("%s/api/qt/ulist.np/get?secids=%s&fields=%s&fltt=2",
		e.cfg.QuoteBaseURL, indexSecIDs, indexFields)
	body, err := e.do(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("index snapshot: %w", err)
	}

	diff := gjson.GetBytes(body, "data.diff")
	if !diff.Exists() || !diff.IsArray() {
		return nil, fmt.Errorf("index snapshot: %w", domain.ErrParseFailure)
	}
	var out []entity.IndexQuote
	for _, v := range diff.Array() {
		code := strings.TrimSpace(v.Get("f12").String())
		name := strings.TrimSpace(v.Get("f14").String())
		if code == "" && name == "" {
			continue
		}
		changePct := v.Get("f3").Float()
		if changePct > indexChangePctBound || changePct < -indexChangePctBound {
			changePct /= 100
		}
		out = append(out, entity.IndexQuote{
			Code:      code,
			Name:      name,
			Price:     v.Get("f2").Float(),
			ChangePct: changePct,
		})
	}
	return out, nil
}

func (e *EastmoneyMarket) getQuote(ctx context.Context, symbol, fields string) ([]byte, error) {
	url := fmt.Sprintf("%s/api/qt/stock/get?secid=%s&fltt=2&fields=%s",
		e.cfg.QuoteBaseURL, SecID(symbol), fields)
	body, err := e.do(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("quote fetch for %s: %w", symbol, err)
	}
	return body, nil
}

// do performs one GET with browser headers and bounded retries. After
// the retry budget the last error is wrapped in ErrDataUnavailable.
func (e *EastmoneyMarket) do(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryDelay
			if he, ok := lastErr.(*httpStatusError); ok && he.status == http.StatusTooManyRequests {
				backoff = retryDelay429
			}
			slog.Warn("eastmoney retry", "attempt", attempt, "url", url, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
		if e.limiter != nil {
			e.limiter.WaitIfNeeded()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Referer", referer)
		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Accept-Language", acceptLanguage)

		res, err := e.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if res.StatusCode != http.StatusOK {
			_ = res.Body.Close()
			lastErr = &httpStatusError{status: res.StatusCode}
			continue
		}
		body, err := io.ReadAll(res.Body)
		_ = res.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, lastErr)
}

type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("http %d", e.status)
}

// parseKlines decodes the comma-separated kline strings:
// date,open,close,high,low,volume,amount,amplitude,pct,change,turnover.
func parseKlines(body []byte, symbol string) ([]entity.PricePoint, error) {
	klines := gjson.GetBytes(body, "data.klines")
	if !klines.Exists() || !klines.IsArray() {
		return nil, fmt.Errorf("no klines for %s: %w", symbol, domain.ErrParseFailure)
	}
	arr := klines.Array()
	out := make([]entity.PricePoint, 0, len(arr))
	for _, v := range arr {
		s := strings.TrimSpace(v.String())
		if s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		if len(parts) < 6 {
			continue
		}
		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(parts[1], 64)
		closeVal, _ := strconv.ParseFloat(parts[2], 64)
		high, _ := strconv.ParseFloat(parts[3], 64)
		low, _ := strconv.ParseFloat(parts[4], 64)
		volume, _ := strconv.ParseInt(parts[5], 10, 64)
		var pct float64
		if len(parts) >= 9 {
			pct, _ = strconv.ParseFloat(parts[8], 64)
		}
		out = append(out, entity.PricePoint{
			Date:      date,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closeVal,
			Volume:    volume,
			PctChange: pct,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty klines for %s: %w", symbol, domain.ErrDataUnavailable)
	}
	return out, nil
}

// SecID converts a bare stock code into the Eastmoney secid: market 1
// for Shanghai (codes starting 5/6/9), market 0 otherwise.
func SecID(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "0.000000"
	}
	switch code[0] {
	case '5', '6', '9':
		return "1." + code
	default:
		return "0." + code
	}
}

func putString(m entity.SnapshotMetrics, key string, v gjson.Result) {
	s := strings.TrimSpace(v.String())
	if !v.Exists() || s == "" || s == "-" {
		return
	}
	m[key] = s
}

func putFloat(m entity.SnapshotMetrics, key string, v gjson.Result) {
	if !v.Exists() || v.Type == gjson.Null || v.Type == gjson.String {
		// The API reports unavailable numerics as "-".
		return
	}
	m[key] = strconv.FormatFloat(v.Float(), 'f', -1, 64)
}
