// Package feeds normalizes the heterogeneous CSV exports of each data source
// (River buys and sells, F2Pool mining payouts, Compass hosting payments)
// into acquisition lots and disposals, valuing each record through a price
// oracle rather than trusting the estimates embedded in the files.
package feeds

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantathon/btc-tax/date"
)

// timeLayouts are tried in order when parsing a source timestamp. The
// exports are inconsistent about it.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// parseTime parses a source timestamp, normalized to UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// cleanCurrency converts a currency string like "$39,226.82" to a decimal.
// Empty cells, "#N/A", and junk all come back as zero, matching how the
// spreadsheets these files come from behave.
func cleanCurrency(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || s == "#N/A" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	value, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return value
}

// cleanQuantity parses a plain decimal cell, zero on junk.
func cleanQuantity(s string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return value
}

// row is a single CSV record indexed by header name.
type row map[string]string

// readTable reads a headered CSV into rows indexed by column name.
// Short records are tolerated; missing columns read as "".
func readTable(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		m := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				m[name] = record[i]
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}

// datedRow pairs a parsed timestamp with its source row, for the two-pass
// parse: first collect the dates, then batch-resolve their prices.
type datedRow struct {
	time time.Time
	row  row
}

// collectDated filters rows down to those with a parseable timestamp in
// dateCol and a positive quantity in qtyCol.
func collectDated(rows []row, dateCol, qtyCol string) (dated []datedRow, dates []date.Date) {
	for _, r := range rows {
		t, err := parseTime(r[dateCol])
		if err != nil {
			continue // skip rows with invalid dates
		}
		if !cleanQuantity(r[qtyCol]).IsPositive() {
			continue
		}
		dated = append(dated, datedRow{time: t, row: r})
		dates = append(dates, date.FromTime(t))
	}
	return dated, dates
}
