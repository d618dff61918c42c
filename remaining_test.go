package btctax

import (
	"testing"
	"time"
)

func TestRemainingLots(t *testing.T) {
	lots := NewLots(
		lot(ts(2020, time.January, 1), 1.0, 10000, Purchase),
		lot(ts(2021, time.June, 1), 2.0, 60000, Purchase),
	)
	disposals := NewDisposals(disposal(ts(2022, time.January, 1), 1.5, 50000, Sale))

	result, err := MatchDisposals(lots, disposals, FIFO)
	if err != nil {
		t.Fatalf("MatchDisposals() error = %v", err)
	}

	remaining := RemainingLots(lots, result.Matches)
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining lot, got %d: %+v", len(remaining), remaining)
	}
	if remaining[0].Lot.ID != lots[1].ID {
		t.Errorf("remaining lot ID = %d, want %d", remaining[0].Lot.ID, lots[1].ID)
	}
	if !remaining[0].Remaining.Equal(Q(1.5)) {
		t.Errorf("Remaining = %s, want 1.5", remaining[0].Remaining)
	}
	if !TotalRemaining(remaining).Equal(Q(1.5)) {
		t.Errorf("TotalRemaining = %s, want 1.5", TotalRemaining(remaining))
	}
}

func TestRemainingLots_DistinguishesSameDateAndSource(t *testing.T) {
	// Two lots sharing acquisition date and source: the surrogate ID keeps
	// their consumption separate.
	lots := NewLots(
		lot(ts(2021, time.January, 1), 1.0, 10000, Purchase),
		lot(ts(2021, time.January, 1), 1.0, 10000, Purchase),
	)
	disposals := NewDisposals(disposal(ts(2022, time.January, 1), 1.0, 20000, Sale))

	result, err := MatchDisposals(lots, disposals, FIFO)
	if err != nil {
		t.Fatalf("MatchDisposals() error = %v", err)
	}

	remaining := RemainingLots(lots, result.Matches)
	if len(remaining) != 1 {
		t.Fatalf("expected exactly 1 remaining lot, got %d: %+v", len(remaining), remaining)
	}
	if !remaining[0].Remaining.Equal(Q(1.0)) {
		t.Errorf("Remaining = %s, want 1.0 (the untouched twin lot)", remaining[0].Remaining)
	}
}

func TestRemainingLots_FullyConsumed(t *testing.T) {
	lots := NewLots(lot(ts(2021, time.January, 1), 1.0, 10000, Purchase))
	disposals := NewDisposals(disposal(ts(2022, time.January, 1), 1.0, 20000, Sale))

	result, err := MatchDisposals(lots, disposals, FIFO)
	if err != nil {
		t.Fatalf("MatchDisposals() error = %v", err)
	}
	if remaining := RemainingLots(lots, result.Matches); len(remaining) != 0 {
		t.Errorf("expected no remaining lots, got %+v", remaining)
	}
}

func TestRemainingLots_NoMatches(t *testing.T) {
	lots := NewLots(lot(ts(2021, time.January, 1), 1.0, 10000, Purchase))
	remaining := RemainingLots(lots, nil)
	if len(remaining) != 1 || !remaining[0].Remaining.Equal(Q(1.0)) {
		t.Errorf("expected the full lot to remain, got %+v", remaining)
	}
}
