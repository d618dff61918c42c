// Package prices resolves historical BTC-USD spot prices by date.
//
// The Oracle interface is the boundary the rest of the system depends on: a
// date in, a price out, zero when unavailable. Implementations handle
// batching, forward-filling, and caching; callers treat the lookup as a pure
// function.
package prices

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/date"
)

// Oracle maps a civil date to the BTC-USD close of that day.
type Oracle interface {
	// Price returns the spot price for the given date, or zero Money when no
	// price is available. A non-nil error reports a lookup failure, not a
	// missing price.
	Price(d date.Date) (btctax.Money, error)
	// Prices resolves many dates at once. Implementations may batch the
	// underlying fetch; missing dates map to zero Money.
	Prices(dates []date.Date) (map[date.Date]btctax.Money, error)
}

// Fixed is an Oracle backed by an in-memory price table. It is the test
// double for the Yahoo oracle, and also serves offline runs from a price CSV.
type Fixed struct {
	table map[date.Date]btctax.Money
}

// NewFixed builds a Fixed oracle from a date-to-price table.
func NewFixed(table map[date.Date]btctax.Money) *Fixed {
	if table == nil {
		table = map[date.Date]btctax.Money{}
	}
	return &Fixed{table: table}
}

func (f *Fixed) Price(d date.Date) (btctax.Money, error) {
	if p, ok := f.table[d]; ok {
		return p, nil
	}
	return btctax.USD(0), nil
}

func (f *Fixed) Prices(dates []date.Date) (map[date.Date]btctax.Money, error) {
	out := make(map[date.Date]btctax.Money, len(dates))
	for _, d := range dates {
		p, _ := f.Price(d)
		out[d] = p
	}
	return out, nil
}

// ReadFixed parses a "date,price" CSV-ish listing (one pair per line, header
// optional) into a Fixed oracle.
func ReadFixed(r io.Reader) (*Fixed, error) {
	table := map[date.Date]btctax.Money{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.SplitN(text, ",", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"date,price\", got %q", line, text)
		}
		d, err := date.Parse(strings.TrimSpace(fields[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q: %w", line, fields[1], err)
		}
		table[d] = btctax.M(value, "USD")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewFixed(table), nil
}

// Memo wraps an Oracle with a process-lifetime memoization cache, so each
// date is resolved against the backing oracle at most once per run.
type Memo struct {
	backing Oracle
	cache   *cache.Cache
}

// NewMemo wraps the given oracle with memoization.
func NewMemo(backing Oracle) *Memo {
	return &Memo{
		backing: backing,
		cache:   cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

func (m *Memo) Price(d date.Date) (btctax.Money, error) {
	if v, ok := m.cache.Get(d.String()); ok {
		return v.(btctax.Money), nil
	}
	p, err := m.backing.Price(d)
	if err != nil {
		return btctax.USD(0), err
	}
	m.cache.SetDefault(d.String(), p)
	return p, nil
}

func (m *Memo) Prices(dates []date.Date) (map[date.Date]btctax.Money, error) {
	out := make(map[date.Date]btctax.Money, len(dates))
	var missing []date.Date
	for _, d := range dates {
		if v, ok := m.cache.Get(d.String()); ok {
			out[d] = v.(btctax.Money)
		} else {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}
	fetched, err := m.backing.Prices(missing)
	if err != nil {
		return nil, err
	}
	for d, p := range fetched {
		m.cache.SetDefault(d.String(), p)
		out[d] = p
	}
	return out, nil
}
