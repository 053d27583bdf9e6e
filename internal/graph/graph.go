// Package graph derives the blocking relation graph from a flat issue
// fetch and computes the subset that is ready to work on.
package graph

import (
	"sort"

	"github.com/groblegark/linctl/internal/linear"
)

// BlockedSet scans every issue's relations and marks the target of each
// `blocks` edge as blocked. The blocker's own state is deliberately not
// consulted: a completed or canceled blocker still marks its target as
// blocked. That is long-standing behavior callers depend on being able
// to observe, not an oversight to fix here.
func BlockedSet(issues []linear.Issue) map[string]bool {
	blocked := make(map[string]bool)
	for i := range issues {
		for _, rel := range issues[i].Relations.Nodes {
			if rel.Type == linear.RelationBlocks {
				blocked[rel.RelatedIssue.Identifier] = true
			}
		}
	}
	return blocked
}

// Unblocked returns the issues whose coarse state is open and which no
// `blocks` relation anywhere in the set names as a target.
func Unblocked(issues []linear.Issue) []linear.Issue {
	blocked := BlockedSet(issues)
	var out []linear.Issue
	for _, is := range issues {
		if is.Open() && !blocked[is.Identifier] {
			out = append(out, is)
		}
	}
	return out
}

// SortForDisplay orders issues for listing: the viewer's own issues
// first, then by priority ordinal ascending with the no-priority
// sentinel sorting last, then by the remote sort key descending.
func SortForDisplay(issues []linear.Issue, viewerID string) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := &issues[i], &issues[j]
		am, bm := isMine(a, viewerID), isMine(b, viewerID)
		if am != bm {
			return am
		}
		ap, bp := displayPriority(a.Priority), displayPriority(b.Priority)
		if ap != bp {
			return ap < bp
		}
		return a.SortOrder > b.SortOrder
	})
}

func isMine(is *linear.Issue, viewerID string) bool {
	return viewerID != "" && is.Assignee != nil && is.Assignee.ID == viewerID
}

// displayPriority maps the zero "no priority" sentinel past low so it
// sorts last.
func displayPriority(p int) int {
	if p == linear.PriorityNone {
		return linear.PriorityLow + 1
	}
	return p
}
