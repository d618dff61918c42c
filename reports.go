package btctax

import (
	"fmt"
	"sort"

	"github.com/grantathon/btc-tax/date"
)

// Form8949Row is one line of IRS Form 8949: a single lot allocation,
// described as a disposed property with its acquisition and sale dates.
type Form8949Row struct {
	Description  string
	DateAcquired date.Date
	DateSold     date.Date
	Proceeds     Money
	CostBasis    Money
	GainLoss     Money
	LongTerm     bool

	DisposalSource DisposalSource
	LotSource      LotSource
}

// Form8949 renders the matching result as Form 8949 rows, sorted by sale
// date then acquisition date.
func Form8949(result *MatchingResult) []Form8949Row {
	rows := make([]Form8949Row, 0, len(result.Matches))
	for _, m := range result.Matches {
		rows = append(rows, Form8949Row{
			Description:    fmt.Sprintf("Bitcoin (%s BTC)", m.QuantityAllocated),
			DateAcquired:   date.FromTime(m.LotTime),
			DateSold:       date.FromTime(m.DisposalTime),
			Proceeds:       m.Proceeds(),
			CostBasis:      m.CostBasisConsumed,
			GainLoss:       m.GainLoss,
			LongTerm:       m.LongTerm,
			DisposalSource: m.DisposalSource,
			LotSource:      m.LotSource,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DateSold != rows[j].DateSold {
			return rows[i].DateSold.Before(rows[j].DateSold)
		}
		return rows[i].DateAcquired.Before(rows[j].DateAcquired)
	})
	return rows
}

// ScheduleDSummary aggregates a matching result into the short-term and
// long-term subtotals that feed Schedule D.
type ScheduleDSummary struct {
	Policy Policy

	ShortTermCount     int
	ShortTermProceeds  Money
	ShortTermCostBasis Money
	ShortTermGain      Money

	LongTermCount     int
	LongTermProceeds  Money
	LongTermCostBasis Money
	LongTermGain      Money

	TotalCount     int
	TotalProceeds  Money
	TotalCostBasis Money
	TotalGain      Money
}

// NewScheduleDSummary computes the Schedule D subtotals from a matching
// result. Every figure is the exact sum over the result's matches.
func NewScheduleDSummary(result *MatchingResult) ScheduleDSummary {
	s := ScheduleDSummary{
		Policy:             result.Policy,
		ShortTermProceeds:  USD(0),
		ShortTermCostBasis: USD(0),
		ShortTermGain:      USD(0),
		LongTermProceeds:   USD(0),
		LongTermCostBasis:  USD(0),
		LongTermGain:       USD(0),
	}
	for _, m := range result.Matches {
		if m.LongTerm {
			s.LongTermCount++
			s.LongTermProceeds = s.LongTermProceeds.Add(m.Proceeds())
			s.LongTermCostBasis = s.LongTermCostBasis.Add(m.CostBasisConsumed)
			s.LongTermGain = s.LongTermGain.Add(m.GainLoss)
		} else {
			s.ShortTermCount++
			s.ShortTermProceeds = s.ShortTermProceeds.Add(m.Proceeds())
			s.ShortTermCostBasis = s.ShortTermCostBasis.Add(m.CostBasisConsumed)
			s.ShortTermGain = s.ShortTermGain.Add(m.GainLoss)
		}
	}
	s.TotalCount = s.ShortTermCount + s.LongTermCount
	s.TotalProceeds = s.ShortTermProceeds.Add(s.LongTermProceeds)
	s.TotalCostBasis = s.ShortTermCostBasis.Add(s.LongTermCostBasis)
	s.TotalGain = s.ShortTermGain.Add(s.LongTermGain)
	return s
}
