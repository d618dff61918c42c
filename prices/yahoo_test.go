package prices

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/grantathon/btc-tax/date"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

// chartJSON builds a minimal Yahoo chart payload for the given day closes.
func chartJSON(points []pricePoint) string {
	ts, closes := "", ""
	for i, p := range points {
		if i > 0 {
			ts += ","
			closes += ","
		}
		day := time.Date(p.day.Year(), p.day.Month(), p.day.Day(), 0, 0, 0, 0, time.UTC)
		ts += fmt.Sprintf("%d", day.Unix())
		closes += p.close.String()
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}]}}`, ts, closes)
}

func newTestYahoo(t *testing.T, handler http.HandlerFunc) *Yahoo {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &Yahoo{
		client:  server.Client(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		base:    server.URL,
		symbol:  "BTC-USD",
	}
}

func TestYahoo_Prices(t *testing.T) {
	series := []pricePoint{
		{day: date.New(2021, time.June, 1), close: dec(35000)},
		{day: date.New(2021, time.June, 2), close: dec(36000)},
		{day: date.New(2021, time.June, 4), close: dec(38000)},
	}
	var gotPath string
	y := newTestYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartJSON(series))
	})

	out, err := y.Prices([]date.Date{
		date.New(2021, time.June, 2),
		date.New(2021, time.June, 3), // gap, forward-filled from June 2
	})
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/BTC-USD", gotPath)
	assert.Equal(t, "36000", out[date.New(2021, time.June, 2)].Decimal().String())
	assert.Equal(t, "36000", out[date.New(2021, time.June, 3)].Decimal().String())
}

func TestYahoo_PricesServerError(t *testing.T) {
	y := newTestYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	_, err := y.Prices([]date.Date{date.New(2021, time.June, 2)})
	assert.Error(t, err)
}

func TestYahoo_PricesEmptyInput(t *testing.T) {
	called := false
	y := newTestYahoo(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	out, err := y.Prices(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, called, "no dates must mean no fetch")
}
