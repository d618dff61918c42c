package btctax

// Comparison holds the matching results of all three policies over the same
// lot and disposal sets, for side-by-side reporting and policy selection.
type Comparison struct {
	results []*MatchingResult // in Policies order
}

// NewComparison builds a Comparison from the three policy runs.
func NewComparison(fifo, lifo, hifo *MatchingResult) Comparison {
	return Comparison{results: []*MatchingResult{fifo, lifo, hifo}}
}

// CompareAll runs the matching engine once per policy and returns the
// comparison. The runs are independent: each takes its own snapshot of the
// lot remainders.
func CompareAll(lots Lots, disposals Disposals) (Comparison, error) {
	results := make([]*MatchingResult, 0, len(Policies))
	for _, p := range Policies {
		r, err := MatchDisposals(lots, disposals, p)
		if err != nil {
			return Comparison{}, err
		}
		results = append(results, r)
	}
	return Comparison{results: results}, nil
}

// Results returns the per-policy results in Policies order.
func (c Comparison) Results() []*MatchingResult { return c.results }

// Result returns the result for a single policy.
func (c Comparison) Result(p Policy) *MatchingResult {
	for _, r := range c.results {
		if r.Policy == p {
			return r
		}
	}
	return nil
}

// Optimal returns the result with the minimum total realized gain, hence the
// lowest tax liability. Ties are broken by the Policies order.
func (c Comparison) Optimal() *MatchingResult {
	var best *MatchingResult
	for _, r := range c.results {
		if best == nil || r.TotalGain.LessThan(best.TotalGain) {
			best = r
		}
	}
	return best
}
