package renderer

import (
	"fmt"
	"strings"

	btctax "github.com/grantathon/btc-tax"
)

// LotsMarkdown renders the acquisition lots as a markdown table.
func LotsMarkdown(lots btctax.Lots) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Acquisition Lots\n\n")
	fmt.Fprintln(&b, "| Lot | Acquired | Source | Quantity | Cost Basis | Basis/Unit |")
	fmt.Fprintln(&b, "|---:|:---|:---|---:|---:|---:|")
	for _, l := range lots {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			l.ID, l.Date(), l.Source, l.Quantity, l.CostBasis, l.CostBasisPerUnit())
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | **%s** | |\n",
		lots.TotalQuantity(), lots.TotalCostBasis())

	return b.String()
}

// DisposalsMarkdown renders the disposals as a markdown table.
func DisposalsMarkdown(disposals btctax.Disposals) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Disposals\n\n")
	fmt.Fprintln(&b, "| Disposed | Source | Quantity | Unit Price | Gross | Fee | Net |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	for _, d := range disposals {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			d.Date(), d.Source, d.Quantity, d.UnitPrice,
			d.GrossProceeds(), d.Fee, d.NetProceeds())
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | | | | |\n", disposals.TotalQuantity())

	return b.String()
}
