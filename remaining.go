package btctax

// RemainingLot pairs an acquisition lot with the quantity of it left after
// matching.
type RemainingLot struct {
	Lot       AcquisitionLot
	Remaining Quantity
}

// RemainingLots computes how much of each lot survives a set of matches.
// Consumption is keyed on the lot's surrogate ID, so two lots sharing an
// acquisition date and source are tracked separately. Lots with a remainder
// at or below the dust tolerance are omitted.
func RemainingLots(lots Lots, matches []Match) []RemainingLot {
	used := make(map[int]Quantity, len(lots))
	for _, m := range matches {
		used[m.LotID] = used[m.LotID].Add(m.QuantityAllocated)
	}

	var remaining []RemainingLot
	for _, l := range lots {
		left := l.Quantity.Sub(used[l.ID])
		if !left.IsPositive() || left.Negligible() {
			continue
		}
		remaining = append(remaining, RemainingLot{Lot: l, Remaining: left})
	}
	return remaining
}

// TotalRemaining sums the remainder over a RemainingLots result.
func TotalRemaining(remaining []RemainingLot) Quantity {
	total := Q(0)
	for _, r := range remaining {
		total = total.Add(r.Remaining)
	}
	return total
}
