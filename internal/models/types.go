package models

import (
	"fmt"
	"math"
	"strings"
)

// ResourceKind represents the different resource types produced by robots
type ResourceKind int

const (
	Ore ResourceKind = iota
	Clay
	Obsidian
	Geode
)

// NumResourceKinds is the size of every per-kind array
const NumResourceKinds = 4

// Unbounded is the production cap used for kinds that are never limited
const Unbounded = math.MaxInt

var resourceNames = [NumResourceKinds]string{"ore", "clay", "obsidian", "geode"}

// AllResourceKinds returns all resource kinds in deterministic order
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{Ore, Clay, Obsidian, Geode}
}

// String returns the lower-case resource name
func (k ResourceKind) String() string {
	if k < Ore || k > Geode {
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
	return resourceNames[k]
}

// ParseResourceKind maps a resource name to its kind
func ParseResourceKind(name string) (ResourceKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range resourceNames {
		if n == name {
			return ResourceKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", name)
}

// Resources holds one quantity per resource kind. The same type is used for
// stock held, robots active (production per minute) and robot costs.
type Resources [NumResourceKinds]int

// NewResources creates a vector in canonical kind order
func NewResources(ore, clay, obsidian, geode int) Resources {
	return Resources{ore, clay, obsidian, geode}
}

// Get returns the quantity for a kind
func (r Resources) Get(k ResourceKind) int {
	return r[k]
}

// Set returns a copy with the quantity for a kind replaced
func (r Resources) Set(k ResourceKind, v int) Resources {
	r[k] = v
	return r
}

// Add returns the element-wise sum
func (r Resources) Add(o Resources) Resources {
	for i := range r {
		r[i] += o[i]
	}
	return r
}

// SaturatingSub returns the element-wise difference, floored at zero
func (r Resources) SaturatingSub(o Resources) Resources {
	for i := range r {
		if r[i] > o[i] {
			r[i] -= o[i]
		} else {
			r[i] = 0
		}
	}
	return r
}

// Max returns the element-wise maximum
func (r Resources) Max(o Resources) Resources {
	for i := range r {
		if o[i] > r[i] {
			r[i] = o[i]
		}
	}
	return r
}

// Scale multiplies every component by n
func (r Resources) Scale(n int) Resources {
	for i := range r {
		r[i] *= n
	}
	return r
}

// AllGE reports whether every component is at least the matching one in o
func (r Resources) AllGE(o Resources) bool {
	for i := range r {
		if r[i] < o[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether all components are zero
func (r Resources) IsZero() bool {
	return r == Resources{}
}

// String formats non-zero components as "3 ore and 14 clay"
func (r Resources) String() string {
	var parts []string
	for _, k := range AllResourceKinds() {
		if r[k] != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", r[k], k))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " and ")
}

// Blueprint maps each robot kind to the resources needed to commission it
type Blueprint struct {
	ID    int
	Costs [NumResourceKinds]Resources // indexed by the kind the robot produces
}

// Cost returns the cost of one robot producing kind k
func (b *Blueprint) Cost(k ResourceKind) Resources {
	return b.Costs[k]
}

// MaxProduction returns the largest single-step cost of every kind across
// all robots. Producing more than this per minute never helps, except for
// geodes, which are uncapped.
func MaxProduction(b *Blueprint) Resources {
	var caps Resources
	for _, c := range b.Costs {
		caps = caps.Max(c)
	}
	caps[Geode] = Unbounded
	return caps
}

// StartingProduction is the fleet every simulation starts with: one ore robot
func StartingProduction() Resources {
	return NewResources(1, 0, 0, 0)
}
