package btctax

import (
	"sort"
	"time"

	"github.com/grantathon/btc-tax/date"
)

// DisposalSource identifies the kind of disposal event.
type DisposalSource string

const (
	Sale          DisposalSource = "SALE"
	InKindPayment DisposalSource = "IN_KIND_PAYMENT"
)

// Disposal represents a single disposal of BTC: an outright sale, or an
// expense paid in kind (which is a taxable disposal all the same).
type Disposal struct {
	Time      time.Time
	Quantity  Quantity
	UnitPrice Money // Spot value of one unit at disposal time.
	Fee       Money // Fee paid in fiat, or converted from BTC at UnitPrice upstream.
	Source    DisposalSource
}

// Date returns the civil date of the disposal.
func (d Disposal) Date() date.Date { return date.FromTime(d.Time) }

// GrossProceeds returns the disposal's value before fees.
func (d Disposal) GrossProceeds() Money { return d.UnitPrice.Mul(d.Quantity) }

// NetProceeds returns the disposal's value after fees.
func (d Disposal) NetProceeds() Money { return d.GrossProceeds().Sub(d.Fee) }

// Disposals is a set of disposals ordered chronologically.
type Disposals []Disposal

// NewDisposals sorts the given disposals chronologically (stable).
func NewDisposals(disposals ...Disposal) Disposals {
	all := make(Disposals, len(disposals))
	copy(all, disposals)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Time.Before(all[j].Time) })
	return all
}

// TotalQuantity sums the disposed quantity over all disposals.
func (ds Disposals) TotalQuantity() Quantity {
	total := Q(0)
	for _, d := range ds {
		total = total.Add(d.Quantity)
	}
	return total
}
