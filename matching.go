package btctax

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/grantathon/btc-tax/date"
)

// ErrInvalidInput reports a lot or disposal that violates the data model
// invariants. The normalization layer rejects such records before they reach
// the engine, so hitting it indicates a programming error upstream.
var ErrInvalidInput = errors.New("invalid input")

// longTermThresholdDays is the holding period, in days, above which a gain is
// long-term (the one-year-and-a-day rule: exactly 365 days is still short-term).
const longTermThresholdDays = 365

// Match records the allocation of part of a disposal against a single
// acquisition lot. It is a flat, denormalized record: report writers need no
// further joins.
type Match struct {
	DisposalTime     time.Time
	DisposalQuantity Quantity // full quantity of the disposal, not just this allocation
	DisposalPrice    Money    // unit price at disposal time
	DisposalSource   DisposalSource

	LotID           int
	LotTime         time.Time
	LotBasisPerUnit Money
	LotSource       LotSource

	QuantityAllocated Quantity
	CostBasisConsumed Money
	GainLoss          Money
	HoldingPeriodDays int
	LongTerm          bool
}

// Proceeds returns the portion of the disposal's gross proceeds attributable
// to this allocation.
func (m Match) Proceeds() Money { return m.DisposalPrice.Mul(m.QuantityAllocated) }

// DisposalDate returns the civil date of the disposal.
func (m Match) DisposalDate() date.Date { return date.FromTime(m.DisposalTime) }

// LotDate returns the civil date the matched lot was acquired.
func (m Match) LotDate() date.Date { return date.FromTime(m.LotTime) }

// UnmatchedDisposal records the remainder of a disposal that no eligible lot
// could cover. The remainder contributes nothing to the result's totals; it
// is surfaced so a balance-reconciliation problem upstream does not vanish
// silently.
type UnmatchedDisposal struct {
	DisposalTime   time.Time
	DisposalSource DisposalSource
	Quantity       Quantity
}

// Date returns the civil date of the under-matched disposal.
func (u UnmatchedDisposal) Date() date.Date { return date.FromTime(u.DisposalTime) }

// MatchingResult is the outcome of one matching run under a single policy.
// It is immutable once returned. The aggregate totals are always the exact
// sums over Matches.
type MatchingResult struct {
	Policy    Policy
	Matches   []Match
	Unmatched []UnmatchedDisposal

	TotalGain      Money
	ShortTermGain  Money
	LongTermGain   Money
	TotalCostBasis Money
	TotalProceeds  Money
}

// MatchDisposals allocates each disposal against the acquisition lots under
// the given policy and returns the per-match records and aggregate totals.
//
// All three policies share the same allocation algorithm; they differ only in
// how the lot set is ordered. Disposals are processed in chronological order
// regardless of the order supplied: which lots are available at the time of a
// disposal depends on it. A lot acquired after a disposal's date is never
// consumed by it, whatever the policy's sort key says.
func MatchDisposals(lots Lots, disposals Disposals, policy Policy) (*MatchingResult, error) {
	if err := validateInputs(lots, disposals); err != nil {
		return nil, err
	}

	ordered := orderLots(lots, policy)

	// The only mutable state: how much of each ordered lot is left.
	remaining := make([]Quantity, len(ordered))
	for i, l := range ordered {
		remaining[i] = l.Quantity
	}

	result := &MatchingResult{Policy: policy}

	for _, disposal := range NewDisposals(disposals...) {
		left := disposal.Quantity
		for i, l := range ordered {
			if !left.IsPositive() {
				break
			}
			if !remaining[i].IsPositive() {
				continue
			}
			// A disposal can never consume BTC not yet acquired.
			if l.Date().After(disposal.Date()) {
				continue
			}

			allocated := left.Min(remaining[i])
			basisPerUnit := l.CostBasisPerUnit()
			days := disposal.Date().Sub(l.Date())

			result.Matches = append(result.Matches, Match{
				DisposalTime:      disposal.Time,
				DisposalQuantity:  disposal.Quantity,
				DisposalPrice:     disposal.UnitPrice,
				DisposalSource:    disposal.Source,
				LotID:             l.ID,
				LotTime:           l.Time,
				LotBasisPerUnit:   basisPerUnit,
				LotSource:         l.Source,
				QuantityAllocated: allocated,
				CostBasisConsumed: basisPerUnit.Mul(allocated),
				GainLoss:          disposal.UnitPrice.Sub(basisPerUnit).Mul(allocated),
				HoldingPeriodDays: days,
				LongTerm:          days > longTermThresholdDays,
			})

			left = left.Sub(allocated)
			remaining[i] = remaining[i].Sub(allocated)
		}
		if left.IsPositive() && !left.Negligible() {
			result.Unmatched = append(result.Unmatched, UnmatchedDisposal{
				DisposalTime:   disposal.Time,
				DisposalSource: disposal.Source,
				Quantity:       left,
			})
		}
	}

	result.computeTotals()
	return result, nil
}

// orderLots returns a copy of the lot set sorted for the policy. All sorts
// are stable so that ties keep the input order and a rerun on the same input
// is byte-identical.
func orderLots(lots Lots, policy Policy) Lots {
	ordered := make(Lots, len(lots))
	copy(ordered, lots)
	switch policy {
	case LIFO:
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Time.After(ordered[j].Time) })
	case HIFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].CostBasisPerUnit().GreaterThan(ordered[j].CostBasisPerUnit())
		})
	default: // FIFO
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Time.Before(ordered[j].Time) })
	}
	return ordered
}

// computeTotals derives the aggregate totals from the emitted matches. They
// are never maintained independently of Matches.
func (r *MatchingResult) computeTotals() {
	total, short, long := USD(0), USD(0), USD(0)
	basis, proceeds := USD(0), USD(0)
	for _, m := range r.Matches {
		total = total.Add(m.GainLoss)
		if m.LongTerm {
			long = long.Add(m.GainLoss)
		} else {
			short = short.Add(m.GainLoss)
		}
		basis = basis.Add(m.CostBasisConsumed)
		proceeds = proceeds.Add(m.Proceeds())
	}
	r.TotalGain = total
	r.ShortTermGain = short
	r.LongTermGain = long
	r.TotalCostBasis = basis
	r.TotalProceeds = proceeds
}

// UnmatchedQuantity sums the disposal remainders that no lot could cover.
func (r *MatchingResult) UnmatchedQuantity() Quantity {
	total := Q(0)
	for _, u := range r.Unmatched {
		total = total.Add(u.Quantity)
	}
	return total
}

// MatchedQuantity sums the quantity allocated over all matches.
func (r *MatchingResult) MatchedQuantity() Quantity {
	total := Q(0)
	for _, m := range r.Matches {
		total = total.Add(m.QuantityAllocated)
	}
	return total
}

// HoldingPeriod returns the civil-day distance between an acquisition and a
// disposal, and whether it qualifies as long-term.
func HoldingPeriod(acquired, disposed time.Time) (days int, longTerm bool) {
	days = date.FromTime(disposed).Sub(date.FromTime(acquired))
	return days, days > longTermThresholdDays
}

func validateInputs(lots Lots, disposals Disposals) error {
	for _, l := range lots {
		if !l.Quantity.IsPositive() {
			return fmt.Errorf("%w: lot %d (%s %s) has non-positive quantity %s",
				ErrInvalidInput, l.ID, l.Source, l.Date(), l.Quantity)
		}
		if l.CostBasis.IsNegative() {
			return fmt.Errorf("%w: lot %d (%s %s) has negative cost basis %s",
				ErrInvalidInput, l.ID, l.Source, l.Date(), l.CostBasis)
		}
	}
	for _, d := range disposals {
		if !d.Quantity.IsPositive() {
			return fmt.Errorf("%w: disposal (%s %s) has non-positive quantity %s",
				ErrInvalidInput, d.Source, d.Date(), d.Quantity)
		}
		if d.Fee.IsNegative() {
			return fmt.Errorf("%w: disposal (%s %s) has negative fee %s",
				ErrInvalidInput, d.Source, d.Date(), d.Fee)
		}
	}
	return nil
}
