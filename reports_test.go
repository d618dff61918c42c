package btctax

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixtureResult(t *testing.T) *MatchingResult {
	t.Helper()
	lots := NewLots(
		lot(ts(2020, time.January, 1), 1.0, 5000, Purchase),
		lot(ts(2021, time.June, 1), 1.0, 30000, Mined),
	)
	disposals := NewDisposals(
		disposal(ts(2021, time.September, 1), 0.5, 45000, Sale),
		disposal(ts(2022, time.January, 10), 1.0, 42000, InKindPayment),
	)
	result, err := MatchDisposals(lots, disposals, FIFO)
	if err != nil {
		t.Fatalf("MatchDisposals() error = %v", err)
	}
	return result
}

func TestForm8949_SortedBySaleThenAcquisition(t *testing.T) {
	rows := Form8949(fixtureResult(t))
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.DateSold.Before(prev.DateSold) {
			t.Errorf("row %d sold %s before row %d sold %s", i, cur.DateSold, i-1, prev.DateSold)
		}
		if cur.DateSold == prev.DateSold && cur.DateAcquired.Before(prev.DateAcquired) {
			t.Errorf("row %d acquired out of order within sale date %s", i, cur.DateSold)
		}
	}
	for _, row := range rows {
		if !strings.HasPrefix(row.Description, "Bitcoin (") {
			t.Errorf("Description = %q, want a Bitcoin property description", row.Description)
		}
		if !row.Proceeds.Sub(row.CostBasis).Equal(row.GainLoss) {
			t.Errorf("row gain %s != proceeds %s - basis %s", row.GainLoss, row.Proceeds, row.CostBasis)
		}
	}
}

func TestScheduleDSummary_ConsistentWithResult(t *testing.T) {
	result := fixtureResult(t)
	s := NewScheduleDSummary(result)

	if s.Policy != FIFO {
		t.Errorf("Policy = %s, want fifo", s.Policy)
	}
	if s.TotalCount != len(result.Matches) {
		t.Errorf("TotalCount = %d, want %d", s.TotalCount, len(result.Matches))
	}
	if s.ShortTermCount+s.LongTermCount != s.TotalCount {
		t.Errorf("term counts do not add up")
	}
	if !s.TotalGain.Equal(result.TotalGain) {
		t.Errorf("TotalGain = %s, want %s", s.TotalGain, result.TotalGain)
	}
	if !s.ShortTermGain.Equal(result.ShortTermGain) || !s.LongTermGain.Equal(result.LongTermGain) {
		t.Errorf("term gains do not match the result subtotals")
	}
	if !s.TotalProceeds.Equal(result.TotalProceeds) || !s.TotalCostBasis.Equal(result.TotalCostBasis) {
		t.Errorf("proceeds/basis do not match the result totals")
	}
}

func TestEncodeMatchesCSV(t *testing.T) {
	result := fixtureResult(t)
	var buf bytes.Buffer
	if err := EncodeMatchesCSV(&buf, result); err != nil {
		t.Fatalf("EncodeMatchesCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(result.Matches)+1 {
		t.Fatalf("got %d lines, want header + %d matches", len(lines), len(result.Matches))
	}
	if !strings.HasPrefix(lines[0], "Sale Date,Sale Amount (BTC)") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestEncodeComparisonCSV(t *testing.T) {
	lots := NewLots(lot(ts(2021, time.January, 1), 1.0, 10000, Purchase))
	disposals := NewDisposals(disposal(ts(2022, time.June, 1), 0.5, 20000, Sale))
	c, err := CompareAll(lots, disposals)
	if err != nil {
		t.Fatalf("CompareAll() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeComparisonCSV(&buf, c); err != nil {
		t.Fatalf("EncodeComparisonCSV() error = %v", err)
	}
	out := buf.String()
	for _, p := range Policies {
		if !strings.Contains(out, p.String()) {
			t.Errorf("comparison CSV is missing a %s row:\n%s", p, out)
		}
	}
}

func TestEncodeLotsCSV(t *testing.T) {
	lots := NewLots(lot(ts(2021, time.January, 1), 0.4, 10000, Purchase))
	var buf bytes.Buffer
	if err := EncodeLotsCSV(&buf, lots); err != nil {
		t.Fatalf("EncodeLotsCSV() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0.40000000") || !strings.Contains(out, "10000.00") || !strings.Contains(out, "PURCHASE") {
		t.Errorf("unexpected lots CSV:\n%s", out)
	}
}
