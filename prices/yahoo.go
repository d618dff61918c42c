package prices

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/date"
)

const (
	yahooBase   = "https://query1.finance.yahoo.com"
	yahooSymbol = "BTC-USD"

	// lookbackDays pads the fetched range so a date falling on a gap in the
	// series can still be forward-filled from an earlier close.
	lookbackDays = 7
)

// Yahoo resolves BTC-USD daily closes from the Yahoo Finance chart API.
// Responses are cached on disk with daily expiry; requests are rate limited.
type Yahoo struct {
	client  *http.Client
	limiter *rate.Limiter
	base    string
	symbol  string
}

// NewYahoo returns a Yahoo oracle caching HTTP responses under cacheDir
// ("" picks a default under the system temp directory).
func NewYahoo(cacheDir string) *Yahoo {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &Yahoo{
		client: &http.Client{
			Jar:       jar,
			Timeout:   20 * time.Second,
			Transport: newCachingTransport(cacheDir),
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		base:    yahooBase,
		symbol:  yahooSymbol,
	}
}

// pricePoint is one day of the fetched close series.
type pricePoint struct {
	day   date.Date
	close decimal.Decimal
}

func (y *Yahoo) Price(d date.Date) (btctax.Money, error) {
	all, err := y.Prices([]date.Date{d})
	if err != nil {
		return btctax.USD(0), err
	}
	return all[d], nil
}

func (y *Yahoo) Prices(dates []date.Date) (map[date.Date]btctax.Money, error) {
	out := make(map[date.Date]btctax.Money, len(dates))
	if len(dates) == 0 {
		return out, nil
	}

	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	series, err := y.fetchSeries(min.Add(-lookbackDays), max.Add(1))
	if err != nil {
		return nil, err
	}
	for _, d := range dates {
		value, ok := forwardFill(series, d)
		if !ok {
			out[d] = btctax.USD(0)
			continue
		}
		out[d] = btctax.M(value, "USD")
	}
	return out, nil
}

// fetchSeries downloads the daily close series covering [from, to].
func (y *Yahoo) fetchSeries(from, to date.Date) ([]pricePoint, error) {
	if err := y.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	fromUnix := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).Unix()
	toUnix := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Unix()
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		y.base, y.symbol, fromUnix, toUnix)

	var jobj any
	if err := y.jwget(addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch %s chart: %w", y.symbol, err)
	}

	timestamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("no timestamps in %s chart response: %w", y.symbol, err)
	}
	closes, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("no closes in %s chart response: %w", y.symbol, err)
	}

	jts, ok1 := timestamps.([]any)
	jcs, ok2 := closes.([]any)
	if !ok1 || !ok2 || len(jts) != len(jcs) {
		return nil, fmt.Errorf("malformed %s chart response: %d timestamps, %v closes", y.symbol, len(jts), closes)
	}

	series := make([]pricePoint, 0, len(jts))
	for i := range jts {
		t, ok := jts[i].(float64)
		if !ok {
			continue
		}
		c, ok := jcs[i].(float64) // null closes happen on provider gaps
		if !ok {
			continue
		}
		series = append(series, pricePoint{
			day:   date.FromTime(time.Unix(int64(t), 0).UTC()),
			close: decimal.NewFromFloat(c),
		})
	}
	return series, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (y *Yahoo) jwget(addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

	resp, err := y.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// forwardFill returns the close for d, falling back to the most recent
// earlier close; when d predates the whole series, the first close is used.
// The series must be in chronological order.
func forwardFill(series []pricePoint, d date.Date) (decimal.Decimal, bool) {
	if len(series) == 0 {
		return decimal.Zero, false
	}
	best, found := decimal.Zero, false
	for _, p := range series {
		if p.day.After(d) {
			break
		}
		best, found = p.close, true
	}
	if !found {
		// No close on or before d: use the first available one.
		return series[0].close, true
	}
	return best, true
}
