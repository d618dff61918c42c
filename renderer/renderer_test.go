package renderer

import (
	"strings"
	"testing"
	"time"

	btctax "github.com/grantathon/btc-tax"
)

func buildResult(t *testing.T, policy btctax.Policy) *btctax.MatchingResult {
	t.Helper()
	lots := btctax.NewLots(
		btctax.AcquisitionLot{
			Time:      time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
			Quantity:  btctax.Q(1.0),
			CostBasis: btctax.USD(5000),
			Source:    btctax.Purchase,
		},
		btctax.AcquisitionLot{
			Time:      time.Date(2021, time.January, 10, 0, 0, 0, 0, time.UTC),
			Quantity:  btctax.Q(0.5),
			CostBasis: btctax.USD(20000),
			Source:    btctax.Mined,
		},
	)
	disposals := btctax.NewDisposals(
		btctax.Disposal{
			Time:      time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC),
			Quantity:  btctax.Q(1.2),
			UnitPrice: btctax.USD(40000),
			Fee:       btctax.USD(10),
			Source:    btctax.Sale,
		},
	)
	result, err := btctax.MatchDisposals(lots, disposals, policy)
	if err != nil {
		t.Fatalf("MatchDisposals(%s): %v", policy, err)
	}
	return result
}

func TestMatchingMarkdown(t *testing.T) {
	md := MatchingMarkdown(buildResult(t, btctax.FIFO))

	for _, want := range []string{
		"# Lot Matching Report (FIFO)",
		"## Matches",
		"## Totals",
		"2021-06-15",
		"2020-03-01",
		"Long",
		"Short",
		"Total Proceeds",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Unmatched") {
		t.Errorf("fully matched result should have no unmatched section:\n%s", md)
	}
}

func TestMatchingMarkdown_UnmatchedSection(t *testing.T) {
	lots := btctax.NewLots(btctax.AcquisitionLot{
		Time:      time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		Quantity:  btctax.Q(0.5),
		CostBasis: btctax.USD(5000),
		Source:    btctax.Purchase,
	})
	disposals := btctax.NewDisposals(btctax.Disposal{
		Time:      time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC),
		Quantity:  btctax.Q(1.0),
		UnitPrice: btctax.USD(40000),
		Source:    btctax.Sale,
	})
	result, err := btctax.MatchDisposals(lots, disposals, btctax.FIFO)
	if err != nil {
		t.Fatalf("MatchDisposals: %v", err)
	}

	md := MatchingMarkdown(result)
	if !strings.Contains(md, "## Unmatched Disposals") {
		t.Errorf("missing unmatched section:\n%s", md)
	}
	if !strings.Contains(md, "SALE") {
		t.Errorf("unmatched row should carry the disposal source:\n%s", md)
	}
}

func TestComparisonMarkdown(t *testing.T) {
	c := btctax.NewComparison(
		buildResult(t, btctax.FIFO),
		buildResult(t, btctax.LIFO),
		buildResult(t, btctax.HIFO),
	)

	md := ComparisonMarkdown(c)
	for _, want := range []string{
		"# Cost Basis Method Comparison",
		"| FIFO |", "| HIFO |",
		"Optimal method: **LIFO**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	// LIFO and HIFO both take the expensive mined lot first and tie on
	// total gain; LIFO wins the tie and gets bolded.
	if !strings.Contains(md, "| **LIFO** |") {
		t.Errorf("optimal row should be bold:\n%s", md)
	}
}

func TestForm8949Markdown(t *testing.T) {
	md := Form8949Markdown(buildResult(t, btctax.FIFO))
	for _, want := range []string{
		"# Form 8949 (FIFO)",
		"Part I: Short-Term",
		"Part II: Long-Term",
		"Bitcoin (",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestScheduleDMarkdown(t *testing.T) {
	s := btctax.NewScheduleDSummary(buildResult(t, btctax.FIFO))
	md := ScheduleDMarkdown(s)
	for _, want := range []string{
		"# Schedule D Summary",
		"| Short-Term | 1 |",
		"| Long-Term | 1 |",
		"| **Total** | **2** |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRemainingMarkdown(t *testing.T) {
	result := buildResult(t, btctax.HIFO)
	lots := btctax.NewLots(
		btctax.AcquisitionLot{
			Time:      time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
			Quantity:  btctax.Q(1.0),
			CostBasis: btctax.USD(5000),
			Source:    btctax.Purchase,
		},
		btctax.AcquisitionLot{
			Time:      time.Date(2021, time.January, 10, 0, 0, 0, 0, time.UTC),
			Quantity:  btctax.Q(0.5),
			CostBasis: btctax.USD(20000),
			Source:    btctax.Mined,
		},
	)
	md := RemainingMarkdown(btctax.RemainingLots(lots, result.Matches))
	if !strings.Contains(md, "# Remaining Lots") {
		t.Fatalf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "0.3") {
		t.Errorf("expected 0.3 BTC remaining:\n%s", md)
	}
}

func TestRemainingMarkdown_Empty(t *testing.T) {
	md := RemainingMarkdown(nil)
	if !strings.Contains(md, "All lots fully consumed.") {
		t.Errorf("unexpected markdown for empty remaining:\n%s", md)
	}
}
