package reviews

import (
	"fmt"
	"slices"

	"tastemap/internal/domain/statuses"
)

// Policy decides which reviews are counted in a restaurant's average rating.
type Policy struct {
	name    string
	counted []statuses.ID
}

var (
	// CountAll counts every review regardless of moderation status.
	CountAll = Policy{name: "all"}
	// CountModerated leaves rejected reviews out of the average.
	CountModerated = Policy{
		name:    "moderated",
		counted: []statuses.ID{statuses.Pending, statuses.Approved, statuses.RecheckRequested},
	}
)

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", CountAll.name:
		return CountAll, nil
	case CountModerated.name:
		return CountModerated, nil
	default:
		return Policy{}, fmt.Errorf("unknown rating policy %q", name)
	}
}

func (p Policy) String() string { return p.name }

// Counts reports whether a review in status s contributes to the average.
func (p Policy) Counts(s statuses.ID) bool {
	if p.counted == nil {
		return true
	}
	return slices.Contains(p.counted, s)
}

// Mean is the arithmetic mean of count ratings summing to sum, or 0 when
// there are none.
func Mean(sum, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
