package blueprint

import (
	"context"
	"fmt"

	"github.com/napolitain/solver-geode/internal/models"
)

// Commission is one robot build in a plan
type Commission struct {
	Minute int // 1-based minute during which the robot is built
	Kind   models.ResourceKind
}

// Snapshot is the state at the end of a commission's minute
type Snapshot struct {
	Commission
	Cost       models.Resources
	Held       models.Resources
	Production models.Resources // includes the new robot
}

// Solution represents the best build order found for one blueprint
type Solution struct {
	BlueprintID int
	Minutes     int
	Geodes      int
	Commissions []Commission
	Stats       Stats
}

// Plan runs the search and also returns the build order achieving the optimum.
// Ties between equally good orders go to the one found first in canonical
// robot order.
func (s *Solver) Plan(ctx context.Context, minutes int) (*Solution, error) {
	r := s.newRun(ctx, minutes)
	geodes := r.solve(models.Resources{}, models.StartingProduction(), minutes)
	if r.err != nil {
		return nil, r.err
	}

	commissions := make([]Commission, len(r.bestPath))
	copy(commissions, r.bestPath)

	return &Solution{
		BlueprintID: s.Blueprint.ID,
		Minutes:     minutes,
		Geodes:      geodes,
		Commissions: commissions,
		Stats:       r.stats(),
	}, nil
}

// Replay simulates a build order minute by minute from the starting fleet and
// returns one snapshot per commission plus the stock at the end. It fails if
// the order is not feasible: a robot that cannot be afforded, two robots in
// the same minute, or a minute out of range.
func Replay(bp *models.Blueprint, minutes int, commissions []Commission) ([]Snapshot, models.Resources, error) {
	var held models.Resources
	production := models.StartingProduction()
	snapshots := make([]Snapshot, 0, len(commissions))

	next := 0
	for minute := 1; minute <= minutes; minute++ {
		var building *Commission
		if next < len(commissions) {
			c := commissions[next]
			if c.Minute < minute {
				return nil, held, fmt.Errorf("commission %d: minute %d out of order", next+1, c.Minute)
			}
			if c.Minute == minute {
				building = &commissions[next]
				next++
			}
		}

		var cost models.Resources
		if building != nil {
			cost = bp.Cost(building.Kind)
			if !held.AllGE(cost) {
				return nil, held, fmt.Errorf("minute %d: cannot afford %s robot (%s) with %s",
					minute, building.Kind, cost, held)
			}
			held = held.SaturatingSub(cost)
		}

		held = held.Add(production)

		if building != nil {
			production[building.Kind]++
			snapshots = append(snapshots, Snapshot{
				Commission: *building,
				Cost:       cost,
				Held:       held,
				Production: production,
			})
		}
	}

	if next < len(commissions) {
		return nil, held, fmt.Errorf("commission %d: minute %d beyond %d-minute horizon",
			next+1, commissions[next].Minute, minutes)
	}

	return snapshots, held, nil
}
