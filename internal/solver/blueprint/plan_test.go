package blueprint

import (
	"context"
	"testing"

	"github.com/napolitain/solver-geode/internal/models"
)

func TestPlanMatchesSimulate(t *testing.T) {
	for _, bp := range exampleBlueprints() {
		for _, minutes := range []int{0, 12, 19, 24} {
			s := NewSolver(bp)
			solution, err := s.Plan(context.Background(), minutes)
			if err != nil {
				t.Fatalf("blueprint %d: %v", bp.ID, err)
			}

			if want := s.Simulate(minutes); solution.Geodes != want {
				t.Errorf("blueprint %d, %d minutes: plan has %d geodes, simulate %d",
					bp.ID, minutes, solution.Geodes, want)
			}
			if solution.BlueprintID != bp.ID || solution.Minutes != minutes {
				t.Errorf("solution header mismatch: %+v", solution)
			}

			// Replaying the build order must reach the same count
			snapshots, held, err := Replay(bp, minutes, solution.Commissions)
			if err != nil {
				t.Fatalf("blueprint %d, %d minutes: replay failed: %v", bp.ID, minutes, err)
			}
			if held[models.Geode] != solution.Geodes {
				t.Errorf("blueprint %d, %d minutes: replay gives %d geodes, plan %d",
					bp.ID, minutes, held[models.Geode], solution.Geodes)
			}
			if len(snapshots) != len(solution.Commissions) {
				t.Errorf("got %d snapshots for %d commissions", len(snapshots), len(solution.Commissions))
			}
		}
	}
}

func TestPlanBlueprint1(t *testing.T) {
	bp := exampleBlueprints()[0]
	solution, err := NewSolver(bp).Plan(context.Background(), 24)
	if err != nil {
		t.Fatal(err)
	}

	if solution.Geodes != 9 {
		t.Fatalf("got %d geodes, want 9", solution.Geodes)
	}

	geodeRobots := 0
	for i, c := range solution.Commissions {
		if c.Minute < 1 || c.Minute > 24 {
			t.Errorf("commission %d at minute %d out of range", i, c.Minute)
		}
		if i > 0 && c.Minute <= solution.Commissions[i-1].Minute {
			t.Errorf("commission %d at minute %d not after previous", i, c.Minute)
		}
		if c.Kind == models.Geode {
			geodeRobots++
		}
	}
	if geodeRobots == 0 {
		t.Error("plan reaches geodes without a geode robot")
	}
}

func TestPlanHonoursCaps(t *testing.T) {
	bp := exampleBlueprints()[0]
	solution, err := NewSolver(bp, WithCaps(models.NewResources(1, 0, 0, 0))).Plan(context.Background(), 24)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range solution.Commissions {
		if c.Kind == models.Ore {
			t.Errorf("ore robot built at minute %d despite cap of 1", c.Minute)
		}
	}
}

func TestReplayWalkthrough(t *testing.T) {
	// The build order from the puzzle's own walkthrough of blueprint 1
	bp := exampleBlueprints()[0]
	commissions := []Commission{
		{3, models.Clay}, {5, models.Clay}, {7, models.Clay},
		{11, models.Obsidian}, {12, models.Clay}, {15, models.Obsidian},
		{18, models.Geode}, {21, models.Geode},
	}

	snapshots, held, err := Replay(bp, 24, commissions)
	if err != nil {
		t.Fatal(err)
	}
	if held[models.Geode] != 9 {
		t.Errorf("got %d geodes, want 9", held[models.Geode])
	}

	last := snapshots[len(snapshots)-1]
	if want := models.NewResources(1, 4, 2, 2); last.Production != want {
		t.Errorf("final fleet %v, want %v", last.Production, want)
	}
}

func TestReplayErrors(t *testing.T) {
	bp := exampleBlueprints()[0]

	tests := []struct {
		name        string
		commissions []Commission
	}{
		{"unaffordable", []Commission{{1, models.Ore}}},
		{"same minute", []Commission{{3, models.Clay}, {3, models.Clay}}},
		{"out of order", []Commission{{5, models.Clay}, {3, models.Clay}}},
		{"beyond horizon", []Commission{{30, models.Clay}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Replay(bp, 24, tt.commissions); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
