// Package order maintains a strict linear order among sibling entities
// using sparse floating-point sort keys, so a move touches one sibling
// instead of renumbering all of them. Higher key = appears first when the
// set is read back sorted descending.
//
// The same algorithm serves issues (team-wide), projects (team-wide) and
// milestones (scoped to one project); callers supply the sibling set and
// persist the resulting assignments.
package order

import (
	"fmt"
	"math"
	"sort"

	"github.com/groblegark/linctl/internal/match"
)

// Step is the spacing between freshly assigned keys and the offset used
// for boundary insertions.
const Step = 1000.0

// Direction selects which side of the anchor a moved item lands on.
type Direction int

const (
	// None means no direction was supplied.
	None Direction = iota
	// Before places the item ahead of the anchor (higher key).
	Before
	// After places the item behind the anchor (lower key).
	After
)

// Item is one sibling in the ordered set.
type Item struct {
	ID   string  // remote id used for persistence
	Code string  // canonical identifier, when the entity has one (issues)
	Name string  // human-readable name used for substring matching
	Key  float64 // current sort key
}

// Assignment is a new key for one item, to be persisted by the caller.
// Assignments are issued as independent remote updates; there is no
// rollback when one of them fails.
type Assignment struct {
	ID   string
	Name string
	Key  float64
}

// NotFoundError reports a target or anchor that matched no sibling.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no matching entity for %q", e.Query)
}

// ErrInsufficientTargets rejects full reorders of fewer than two targets.
var ErrInsufficientTargets = fmt.Errorf("need at least two targets to reorder")

// ErrMissingAnchor rejects single moves with no before/after anchor.
var ErrMissingAnchor = fmt.Errorf("specify an anchor with --before or --after")

// ReorderAll assigns descending keys to the named targets: the first
// listed target receives max(existing keys) + Step, each following one
// Step less, so reading the set back sorted descending yields exactly
// the given order. Key values differ between calls but the read-back
// order is idempotent.
func ReorderAll(items []Item, targets []string) ([]Assignment, error) {
	if len(targets) < 2 {
		return nil, ErrInsufficientTargets
	}

	// All-negative key sets happen after enough after-the-last boundary
	// moves, so the base cannot assume zero as a floor.
	maxKey := math.Inf(-1)
	for _, it := range items {
		if it.Key > maxKey {
			maxKey = it.Key
		}
	}

	assignments := make([]Assignment, 0, len(targets))
	key := maxKey + Step
	for _, target := range targets {
		idx, ok := findItem(target, items)
		if !ok {
			return nil, &NotFoundError{Query: target}
		}
		assignments = append(assignments, Assignment{
			ID:   items[idx].ID,
			Name: items[idx].Name,
			Key:  key,
		})
		key -= Step
	}
	return assignments, nil
}

// MoveOne computes the key that places target directly before or after
// anchor. The new key is the arithmetic midpoint between the anchor and
// its neighbor on the requested side; at a boundary the key steps past
// the anchor instead, so no midpoint with a nonexistent neighbor is ever
// attempted. Repeated bisection between the same neighbors loses
// floating-point precision eventually; keys are never renormalized.
func MoveOne(items []Item, target, anchor string, dir Direction) (*Assignment, error) {
	if dir == None {
		return nil, ErrMissingAnchor
	}

	targetIdx, ok := findItem(target, items)
	if !ok {
		return nil, &NotFoundError{Query: target}
	}
	moved := items[targetIdx]

	// The target's own old position must not count as a neighbor.
	siblings := make([]Item, 0, len(items)-1)
	for i, it := range items {
		if i != targetIdx {
			siblings = append(siblings, it)
		}
	}
	sort.Slice(siblings, func(i, j int) bool { return siblings[i].Key > siblings[j].Key })

	anchorIdx, ok := findItem(anchor, siblings)
	if !ok {
		return nil, &NotFoundError{Query: anchor}
	}
	anchorKey := siblings[anchorIdx].Key

	var key float64
	switch dir {
	case Before:
		if anchorIdx == 0 {
			key = anchorKey + Step
		} else {
			key = (anchorKey + siblings[anchorIdx-1].Key) / 2
		}
	case After:
		if anchorIdx == len(siblings)-1 {
			key = anchorKey - Step
		} else {
			key = (anchorKey + siblings[anchorIdx+1].Key) / 2
		}
	}

	return &Assignment{ID: moved.ID, Name: moved.Name, Key: key}, nil
}

// findItem resolves a query against the sibling set: exact identifier
// match on Code first, so ENG-4 can never fall through to a substring
// hit on ENG-42, then the substring name matching used everywhere else.
func findItem(query string, items []Item) (int, bool) {
	for i, it := range items {
		if it.Code != "" && match.Identifier(query, it.Code) {
			return i, true
		}
	}
	for i, it := range items {
		if match.Identifier(query, it.Name) {
			return i, true
		}
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return match.Name(query, names)
}
