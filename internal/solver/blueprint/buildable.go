package blueprint

import (
	"fmt"

	"github.com/napolitain/solver-geode/internal/models"
)

// Status is the outcome of an affordability check
type Status int

const (
	// Now means the stock already covers the cost
	Now Status = iota
	// In means the cost is covered after waiting Buildable.Wait minutes
	In
	// Never means a missing resource has no production at all
	Never
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Now:
		return "Now"
	case In:
		return "In"
	case Never:
		return "Never"
	}
	return "Unknown"
}

// Buildable tells when a robot becomes affordable
type Buildable struct {
	Status Status
	Wait   int // minutes to wait; only set for In
}

// String returns e.g. "In(4)"
func (b Buildable) String() string {
	if b.Status == In {
		return fmt.Sprintf("In(%d)", b.Wait)
	}
	return b.Status.String()
}

// CanBuild decides whether a robot with the given cost can be commissioned
// from the current stock, and if not, how many minutes of production at the
// current rate are needed before it can.
func CanBuild(held, production, cost models.Resources) Buildable {
	if held.AllGE(cost) {
		return Buildable{Status: Now}
	}

	wait := 0
	for k := range cost {
		if cost[k] == 0 || held[k] >= cost[k] {
			continue
		}
		if production[k] <= 0 {
			return Buildable{Status: Never}
		}
		shortfall := cost[k] - held[k]
		// ceil(shortfall / production)
		minutes := (shortfall + production[k] - 1) / production[k]
		if minutes > wait {
			wait = minutes
		}
	}

	return Buildable{Status: In, Wait: wait}
}
