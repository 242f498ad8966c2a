package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/napolitain/solver-geode/internal/models"
)

// ErrMalformedBlueprint is returned for records that do not follow the
// "Blueprint N: Each X robot costs ..." grammar
var ErrMalformedBlueprint = errors.New("malformed blueprint")

// Precompiled regex for better performance
var (
	blueprintHeaderRegex = regexp.MustCompile(`^Blueprint\s+(\d+):\s*(.*)$`)
	robotClauseRegex     = regexp.MustCompile(`^Each\s+(\w+)\s+robot\s+costs\s+(.+)$`)
	amountRegex          = regexp.MustCompile(`^(\d+)\s+(\w+)$`)
	recordStartRegex     = regexp.MustCompile(`Blueprint\s+\d+:`)
	whitespaceRegex      = regexp.MustCompile(`\s+`)
)

// BlueprintJSON represents the JSON structure for a blueprint
type BlueprintJSON struct {
	ID    int                       `json:"id"`
	Costs map[string]map[string]int `json:"costs"` // robot kind -> resource -> amount
}

// LoadBlueprints loads blueprints from a text or .json file
func LoadBlueprints(path string) ([]*models.Blueprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseBlueprintsJSON(file)
	}
	return ParseBlueprints(file)
}

// ParseBlueprints reads every blueprint record from r. A record may span
// several lines; records are split on their "Blueprint N:" header.
func ParseBlueprints(r io.Reader) ([]*models.Blueprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprints: %w", err)
	}

	text := string(data)
	starts := recordStartRegex.FindAllStringIndex(text, -1)
	if len(starts) == 0 && strings.TrimSpace(text) != "" {
		return nil, fmt.Errorf("%w: no blueprint header found", ErrMalformedBlueprint)
	}

	blueprints := make([]*models.Blueprint, 0, len(starts))
	line := 1
	prev := 0
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if i == 0 && strings.TrimSpace(text[:loc[0]]) != "" {
			return nil, fmt.Errorf("%w: unexpected text before first record", ErrMalformedBlueprint)
		}

		// Line of the record header, for error context
		line += strings.Count(text[prev:loc[0]], "\n")
		prev = loc[0]

		bp, err := ParseBlueprint(text[loc[0]:end])
		if err != nil {
			return nil, fmt.Errorf("line %d (record %d): %w", line, i+1, err)
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

// ParseBlueprint parses a single blueprint record
func ParseBlueprint(record string) (*models.Blueprint, error) {
	record = strings.TrimSpace(whitespaceRegex.ReplaceAllString(record, " "))

	m := blueprintHeaderRegex.FindStringSubmatch(record)
	if m == nil {
		return nil, fmt.Errorf("%w: missing header in %q", ErrMalformedBlueprint, record)
	}

	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: invalid id %q", ErrMalformedBlueprint, m[1])
	}

	bp := &models.Blueprint{ID: id}
	seen := make(map[models.ResourceKind]bool)

	for _, clause := range strings.Split(m[2], ".") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		cm := robotClauseRegex.FindStringSubmatch(clause)
		if cm == nil {
			return nil, fmt.Errorf("%w: blueprint %d: bad clause %q", ErrMalformedBlueprint, id, clause)
		}

		kind, err := models.ParseResourceKind(cm[1])
		if err != nil {
			return nil, fmt.Errorf("%w: blueprint %d: %v", ErrMalformedBlueprint, id, err)
		}
		if seen[kind] {
			return nil, fmt.Errorf("%w: blueprint %d: %s robot listed twice", ErrMalformedBlueprint, id, kind)
		}

		cost, err := parseCost(cm[2])
		if err != nil {
			return nil, fmt.Errorf("%w: blueprint %d: %s robot: %v", ErrMalformedBlueprint, id, kind, err)
		}

		bp.Costs[kind] = cost
		seen[kind] = true
	}

	for _, k := range models.AllResourceKinds() {
		if !seen[k] {
			return nil, fmt.Errorf("%w: blueprint %d: no %s robot", ErrMalformedBlueprint, id, k)
		}
	}

	return bp, nil
}

// parseCost parses "3 ore and 14 clay"
func parseCost(s string) (models.Resources, error) {
	var cost models.Resources
	for _, part := range strings.Split(s, " and ") {
		m := amountRegex.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return cost, fmt.Errorf("bad amount %q", part)
		}
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			return cost, fmt.Errorf("bad amount %q: %w", m[1], err)
		}
		kind, err := models.ParseResourceKind(m[2])
		if err != nil {
			return cost, err
		}
		cost[kind] += amount
	}
	return cost, nil
}

// ParseBlueprintsJSON reads a JSON array of blueprints
func ParseBlueprintsJSON(r io.Reader) ([]*models.Blueprint, error) {
	var raw []BlueprintJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse blueprints json: %w", err)
	}

	blueprints := make([]*models.Blueprint, 0, len(raw))
	for i, rb := range raw {
		if rb.ID <= 0 {
			return nil, fmt.Errorf("%w: entry %d: invalid id %d", ErrMalformedBlueprint, i, rb.ID)
		}
		bp := &models.Blueprint{ID: rb.ID}

		// Sorted so the first error reported is stable
		robots := make([]string, 0, len(rb.Costs))
		for name := range rb.Costs {
			robots = append(robots, name)
		}
		sort.Strings(robots)

		seen := make(map[models.ResourceKind]bool, models.NumResourceKinds)
		for _, name := range robots {
			kind, err := models.ParseResourceKind(name)
			if err != nil {
				return nil, fmt.Errorf("%w: blueprint %d: %v", ErrMalformedBlueprint, rb.ID, err)
			}
			if seen[kind] {
				return nil, fmt.Errorf("%w: blueprint %d: duplicate %s robot", ErrMalformedBlueprint, rb.ID, kind)
			}
			seen[kind] = true
			for res, amount := range rb.Costs[name] {
				rk, err := models.ParseResourceKind(res)
				if err != nil {
					return nil, fmt.Errorf("%w: blueprint %d: %s robot: %v", ErrMalformedBlueprint, rb.ID, kind, err)
				}
				if amount < 0 {
					return nil, fmt.Errorf("%w: blueprint %d: negative %s cost", ErrMalformedBlueprint, rb.ID, rk)
				}
				bp.Costs[kind][rk] = amount
			}
		}
		for _, k := range models.AllResourceKinds() {
			if !seen[k] {
				return nil, fmt.Errorf("%w: blueprint %d: no %s robot", ErrMalformedBlueprint, rb.ID, k)
			}
		}

		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}
