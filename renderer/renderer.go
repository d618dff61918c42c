// Package renderer turns matching results into markdown reports.
package renderer

import (
	"fmt"
	"strings"

	btctax "github.com/grantathon/btc-tax"
)

// MatchingMarkdown renders a single policy's matching result: the per-match
// detail table, unmatched disposals if any, and the aggregate totals.
func MatchingMarkdown(result *btctax.MatchingResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Lot Matching Report (%s)\n\n", strings.ToUpper(result.Policy.String()))

	fmt.Fprint(&b, "## Matches\n\n")
	fmt.Fprintln(&b, "| Disposed | Acquired | Lot | Quantity | Proceeds | Cost Basis | Gain/Loss | Days | Term |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|:---|")
	for _, m := range result.Matches {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s | %d | %s |\n",
			m.DisposalDate(),
			m.LotDate(),
			m.LotID,
			m.QuantityAllocated,
			m.Proceeds(),
			m.CostBasisConsumed,
			m.GainLoss.SignedString(),
			m.HoldingPeriodDays,
			term(m.LongTerm),
		)
	}

	if len(result.Unmatched) > 0 {
		fmt.Fprint(&b, "\n## Unmatched Disposals\n\n")
		fmt.Fprintln(&b, "| Disposed | Source | Unmatched Quantity |")
		fmt.Fprintln(&b, "|:---|:---|---:|")
		for _, u := range result.Unmatched {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				u.Date(), u.DisposalSource, u.Quantity)
		}
	}

	fmt.Fprint(&b, "\n## Totals\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Proceeds | %s |\n", result.TotalProceeds)
	fmt.Fprintf(&b, "| Total Cost Basis | %s |\n", result.TotalCostBasis)
	fmt.Fprintf(&b, "| Short-Term Gain | %s |\n", result.ShortTermGain.SignedString())
	fmt.Fprintf(&b, "| Long-Term Gain | %s |\n", result.LongTermGain.SignedString())
	fmt.Fprintf(&b, "| **Total Gain** | **%s** |\n", result.TotalGain.SignedString())

	return b.String()
}

// ComparisonMarkdown renders the side-by-side policy comparison and calls out
// the optimal method.
func ComparisonMarkdown(c btctax.Comparison) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Cost Basis Method Comparison\n\n")
	fmt.Fprintln(&b, "| Method | Proceeds | Cost Basis | Short-Term | Long-Term | Total Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")

	optimal := c.Optimal()
	for _, r := range c.Results() {
		name := strings.ToUpper(r.Policy.String())
		if r.Policy == optimal.Policy {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			name,
			r.TotalProceeds,
			r.TotalCostBasis,
			r.ShortTermGain.SignedString(),
			r.LongTermGain.SignedString(),
			r.TotalGain.SignedString(),
		)
	}

	fmt.Fprintf(&b, "\nOptimal method: **%s** with a total gain of %s.\n",
		strings.ToUpper(optimal.Policy.String()), optimal.TotalGain.SignedString())

	return b.String()
}

// Form8949Markdown renders IRS Form 8949 rows for the given result, split
// into short-term (Part I) and long-term (Part II) sections.
func Form8949Markdown(result *btctax.MatchingResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Form 8949 (%s)\n\n", strings.ToUpper(result.Policy.String()))

	rows := btctax.Form8949(result)
	writePart := func(title string, longTerm bool) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		fmt.Fprintln(&b, "| Description | Date Acquired | Date Sold | Proceeds | Cost Basis | Gain/Loss |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
		for _, r := range rows {
			if r.LongTerm != longTerm {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				r.Description, r.DateAcquired, r.DateSold,
				r.Proceeds, r.CostBasis, r.GainLoss.SignedString())
		}
		fmt.Fprintln(&b)
	}
	writePart("Part I: Short-Term", false)
	writePart("Part II: Long-Term", true)

	return b.String()
}

// ScheduleDMarkdown renders the accountant-facing Schedule D summary.
func ScheduleDMarkdown(s btctax.ScheduleDSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Schedule D Summary\n\n")
	fmt.Fprintln(&b, "| Term | Transactions | Proceeds | Cost Basis | Gain/Loss |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	fmt.Fprintf(&b, "| Short-Term | %d | %s | %s | %s |\n",
		s.ShortTermCount, s.ShortTermProceeds, s.ShortTermCostBasis, s.ShortTermGain.SignedString())
	fmt.Fprintf(&b, "| Long-Term | %d | %s | %s | %s |\n",
		s.LongTermCount, s.LongTermProceeds, s.LongTermCostBasis, s.LongTermGain.SignedString())
	fmt.Fprintf(&b, "| **Total** | **%d** | **%s** | **%s** | **%s** |\n",
		s.TotalCount, s.TotalProceeds, s.TotalCostBasis, s.TotalGain.SignedString())

	return b.String()
}

// RemainingMarkdown renders the lots still held after all disposals, with the
// portion of each lot consumed.
func RemainingMarkdown(remaining []btctax.RemainingLot) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Remaining Lots\n\n")
	if len(remaining) == 0 {
		fmt.Fprintln(&b, "All lots fully consumed.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Lot | Acquired | Source | Original | Remaining | Basis/Unit |")
	fmt.Fprintln(&b, "|---:|:---|:---|---:|---:|---:|")
	for _, r := range remaining {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			r.Lot.ID, r.Lot.Date(), r.Lot.Source,
			r.Lot.Quantity, r.Remaining, r.Lot.CostBasisPerUnit())
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | |\n", btctax.TotalRemaining(remaining))

	return b.String()
}

func term(longTerm bool) string {
	if longTerm {
		return "Long"
	}
	return "Short"
}
