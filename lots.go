package btctax

import (
	"sort"
	"time"

	"github.com/grantathon/btc-tax/date"
)

// LotSource identifies how an acquisition lot came into the holder's possession.
type LotSource string

const (
	Purchase LotSource = "PURCHASE"
	Mined    LotSource = "MINED"
	Legacy   LotSource = "LEGACY"
)

// AcquisitionLot represents a discrete acquisition of BTC with an associated
// cost basis. A lot is immutable once constructed: matching never mutates a
// lot, it only tracks how much of it has been consumed.
type AcquisitionLot struct {
	// ID is a surrogate identifier assigned by NewLots. Consumption tracking
	// is keyed on it, so two lots sharing a date and source remain distinct.
	ID        int
	Time      time.Time
	Quantity  Quantity
	CostBasis Money // Total cost of acquiring the full quantity, fees included.
	Source    LotSource
}

// Date returns the civil date of acquisition.
func (l AcquisitionLot) Date() date.Date { return date.FromTime(l.Time) }

// CostBasisPerUnit returns the cost basis of a single unit of the lot.
// It is zero for a zero-quantity lot.
func (l AcquisitionLot) CostBasisPerUnit() Money {
	if l.Quantity.IsZero() {
		return USD(0)
	}
	return l.CostBasis.Div(l.Quantity)
}

// Lots is a set of acquisition lots ordered by acquisition date.
type Lots []AcquisitionLot

// NewLots sorts the given lots by acquisition time (stable, so same-day lots
// keep their input order) and assigns each a sequential surrogate ID.
func NewLots(lots ...AcquisitionLot) Lots {
	all := make(Lots, len(lots))
	copy(all, lots)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Time.Before(all[j].Time) })
	for i := range all {
		all[i].ID = i + 1
	}
	return all
}

// TotalQuantity sums the quantity over all lots.
func (ls Lots) TotalQuantity() Quantity {
	total := Q(0)
	for _, l := range ls {
		total = total.Add(l.Quantity)
	}
	return total
}

// TotalCostBasis sums the cost basis over all lots.
func (ls Lots) TotalCostBasis() Money {
	total := USD(0)
	for _, l := range ls {
		total = total.Add(l.CostBasis)
	}
	return total
}

// SynthesizeLegacyLot models BTC present in the current balance but
// unexplained by recorded acquisitions as a single zero-cost-basis lot dated
// at the fallback acquisition time. Zero basis is the conservative,
// tax-maximizing assumption for coins received before records began.
//
// It returns false when the unexplained difference is not above the dust
// tolerance: either the balance is fully explained, or disposals have already
// reduced it below the acquired total.
func SynthesizeLegacyLot(knownTotal, currentBalance Quantity, fallback time.Time) (AcquisitionLot, bool) {
	legacy := currentBalance.Sub(knownTotal)
	if !legacy.IsPositive() || legacy.Negligible() {
		return AcquisitionLot{}, false
	}
	return AcquisitionLot{
		Time:      fallback,
		Quantity:  legacy,
		CostBasis: USD(0),
		Source:    Legacy,
	}, true
}
