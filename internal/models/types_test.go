package models

import (
	"testing"
)

func TestResourcesArithmetic(t *testing.T) {
	a := NewResources(1, 2, 3, 4)
	b := NewResources(4, 1, 0, 4)

	if got, want := a.Add(b), NewResources(5, 3, 3, 8); got != want {
		t.Errorf("Add: got %v, want %v", got, want)
	}
	if got, want := a.SaturatingSub(b), NewResources(0, 1, 3, 0); got != want {
		t.Errorf("SaturatingSub: got %v, want %v", got, want)
	}
	if got, want := a.Max(b), NewResources(4, 2, 3, 4); got != want {
		t.Errorf("Max: got %v, want %v", got, want)
	}
	if got, want := a.Scale(3), NewResources(3, 6, 9, 12); got != want {
		t.Errorf("Scale: got %v, want %v", got, want)
	}

	// Receivers are values; operands must be untouched
	if a != NewResources(1, 2, 3, 4) {
		t.Errorf("operand mutated: %v", a)
	}
}

func TestResourcesAllGE(t *testing.T) {
	tests := []struct {
		name string
		a, b Resources
		want bool
	}{
		{"equal", NewResources(2, 2, 2, 2), NewResources(2, 2, 2, 2), true},
		{"greater", NewResources(5, 0, 0, 0), NewResources(4, 0, 0, 0), true},
		{"one short", NewResources(5, 13, 0, 0), NewResources(3, 14, 0, 0), false},
		{"zero cost", NewResources(0, 0, 0, 0), Resources{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.AllGE(tt.b); got != tt.want {
				t.Errorf("%v.AllGE(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestResourcesGetSet(t *testing.T) {
	var r Resources
	r = r.Set(Obsidian, 7)
	if r.Get(Obsidian) != 7 {
		t.Errorf("Get(Obsidian) = %d, want 7", r.Get(Obsidian))
	}
	if !(Resources{}).IsZero() || r.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestResourceKindOrder(t *testing.T) {
	kinds := AllResourceKinds()
	want := []string{"ore", "clay", "obsidian", "geode"}
	for i, k := range kinds {
		if int(k) != i {
			t.Errorf("kind %s has ordinal %d, want %d", k, int(k), i)
		}
		if k.String() != want[i] {
			t.Errorf("String() = %q, want %q", k.String(), want[i])
		}
		parsed, err := ParseResourceKind(" " + want[i] + " ")
		if err != nil || parsed != k {
			t.Errorf("ParseResourceKind(%q) = %v, %v", want[i], parsed, err)
		}
	}

	if _, err := ParseResourceKind("diamond"); err == nil {
		t.Error("expected error for unknown resource")
	}
}

func TestResourcesString(t *testing.T) {
	if got := NewResources(3, 14, 0, 0).String(); got != "3 ore and 14 clay" {
		t.Errorf("String() = %q", got)
	}
	if got := (Resources{}).String(); got != "nothing" {
		t.Errorf("String() = %q", got)
	}
}

func TestMaxProduction(t *testing.T) {
	bp := &Blueprint{
		ID: 1,
		Costs: [NumResourceKinds]Resources{
			Ore:      NewResources(4, 0, 0, 0),
			Clay:     NewResources(2, 0, 0, 0),
			Obsidian: NewResources(3, 14, 0, 0),
			Geode:    NewResources(2, 0, 7, 0),
		},
	}

	caps := MaxProduction(bp)
	if caps[Ore] != 4 {
		t.Errorf("ore cap = %d, want 4", caps[Ore])
	}
	if caps[Clay] != 14 {
		t.Errorf("clay cap = %d, want 14", caps[Clay])
	}
	if caps[Obsidian] != 7 {
		t.Errorf("obsidian cap = %d, want 7", caps[Obsidian])
	}
	if caps[Geode] != Unbounded {
		t.Errorf("geode cap = %d, want Unbounded", caps[Geode])
	}
}
