package btctax

import "fmt"

// Policy defines the lot ordering used when matching disposals to acquisition lots.
type Policy int

const (
	// FIFO (First-In, First-Out) consumes the oldest lots first.
	FIFO Policy = iota
	// LIFO (Last-In, First-Out) consumes the newest lots first.
	LIFO
	// HIFO (Highest-In, First-Out) consumes the lots with the highest cost basis per unit first.
	HIFO
)

// Policies lists all policies in their canonical comparison order.
// The order is load-bearing: it is the tie-break order when selecting
// the optimal policy.
var Policies = []Policy{FIFO, LIFO, HIFO}

func (p Policy) String() string {
	switch p {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	default:
		return 0, fmt.Errorf("unknown matching policy: %q", s)
	}
}
