package btctax

import (
	"testing"
	"time"
)

func TestComparison_Optimal(t *testing.T) {
	lots := NewLots(
		lot(ts(2020, time.January, 1), 1.0, 5000, Purchase),
		lot(ts(2021, time.June, 1), 1.0, 30000, Purchase),
	)
	disposals := NewDisposals(disposal(ts(2022, time.January, 1), 1.0, 40000, Sale))

	c, err := CompareAll(lots, disposals)
	if err != nil {
		t.Fatalf("CompareAll() error = %v", err)
	}

	// FIFO sells the $5,000 lot (gain 35,000); LIFO and HIFO both sell the
	// $30,000 lot (gain 10,000). LIFO wins the tie by policy order.
	optimal := c.Optimal()
	if optimal.Policy != LIFO {
		t.Errorf("Optimal().Policy = %s, want lifo", optimal.Policy)
	}
	if !optimal.TotalGain.Equal(USD(10000)) {
		t.Errorf("Optimal().TotalGain = %s, want $10,000.00", optimal.TotalGain)
	}
}

func TestComparison_ResultsOrder(t *testing.T) {
	lots := NewLots(lot(ts(2021, time.January, 1), 1.0, 10000, Purchase))
	disposals := NewDisposals(disposal(ts(2022, time.June, 1), 0.5, 20000, Sale))

	c, err := CompareAll(lots, disposals)
	if err != nil {
		t.Fatalf("CompareAll() error = %v", err)
	}
	results := c.Results()
	if len(results) != 3 {
		t.Fatalf("Results() returned %d results, want 3", len(results))
	}
	for i, p := range Policies {
		if results[i].Policy != p {
			t.Errorf("Results()[%d].Policy = %s, want %s", i, results[i].Policy, p)
		}
	}
	for _, p := range Policies {
		if got := c.Result(p); got == nil || got.Policy != p {
			t.Errorf("Result(%s) = %v", p, got)
		}
	}
}

func TestComparison_OptimalTieBreaksFIFOFirst(t *testing.T) {
	// One lot only: all policies produce the same gain, so FIFO must win.
	lots := NewLots(lot(ts(2021, time.January, 1), 1.0, 10000, Purchase))
	disposals := NewDisposals(disposal(ts(2022, time.June, 1), 0.5, 20000, Sale))

	c, err := CompareAll(lots, disposals)
	if err != nil {
		t.Fatalf("CompareAll() error = %v", err)
	}
	if got := c.Optimal().Policy; got != FIFO {
		t.Errorf("Optimal().Policy = %s, want fifo on a three-way tie", got)
	}
}
