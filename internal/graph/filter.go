package graph

import (
	"strings"

	"github.com/groblegark/linctl/internal/linear"
)

// Filter holds the orthogonal listing criteria. Classes are intersected:
// an issue must pass every non-empty class. Within the Labels and
// Statuses classes any single match passes.
//
// Project and Milestone are matched by case-insensitive substring and
// must already be alias-resolved by the caller.
type Filter struct {
	ViewerID  string // when set, keep only issues assigned to the viewer
	Labels    []string
	Project   string
	Milestone string
	Priority  *int
	Statuses  []string
	Unblocked bool
}

// Apply filters issues, deriving the blocked set from the full input
// when the unblocked criterion is on.
func (f *Filter) Apply(issues []linear.Issue) []linear.Issue {
	blocked := map[string]bool{}
	if f.Unblocked {
		blocked = BlockedSet(issues)
	}

	var out []linear.Issue
	for _, is := range issues {
		if f.Unblocked && (!is.Open() || blocked[is.Identifier]) {
			continue
		}
		if f.ViewerID != "" && !isMine(&is, f.ViewerID) {
			continue
		}
		if len(f.Labels) > 0 && !matchesAnyLabel(&is, f.Labels) {
			continue
		}
		if f.Project != "" && !matchesProject(&is, f.Project) {
			continue
		}
		if f.Milestone != "" && !matchesMilestone(&is, f.Milestone, f.Project) {
			continue
		}
		if f.Priority != nil && is.Priority != *f.Priority {
			continue
		}
		if len(f.Statuses) > 0 && !matchesAnyStatus(&is, f.Statuses) {
			continue
		}
		out = append(out, is)
	}
	return out
}

// matchesAnyLabel passes when any filter label matches any issue label.
func matchesAnyLabel(is *linear.Issue, labels []string) bool {
	for _, want := range labels {
		for _, have := range is.Labels.Nodes {
			if strings.EqualFold(want, have.Name) {
				return true
			}
		}
	}
	return false
}

func matchesProject(is *linear.Issue, project string) bool {
	return is.Project != nil &&
		strings.Contains(strings.ToLower(is.Project.Name), strings.ToLower(project))
}

// matchesMilestone matches the milestone name by substring; when a
// project filter is also given, the milestone must belong to an issue
// that already passed the project criterion, which Apply guarantees by
// ordering the checks.
func matchesMilestone(is *linear.Issue, milestone, _ string) bool {
	return is.Milestone != nil &&
		strings.Contains(strings.ToLower(is.Milestone.Name), strings.ToLower(milestone))
}

// matchesAnyStatus passes when any status filter equals the issue's
// coarse state type or its exact display name, case-insensitively.
func matchesAnyStatus(is *linear.Issue, statuses []string) bool {
	if is.State == nil {
		return false
	}
	for _, want := range statuses {
		if strings.EqualFold(want, string(is.State.Type)) ||
			strings.EqualFold(want, is.State.Name) {
			return true
		}
	}
	return false
}

// CanonicalStatus maps the CLI status vocabulary (including the
// deprecated boolean-flag spellings) onto coarse state types. Unknown
// names pass through so exact display names still match.
func CanonicalStatus(name string) string {
	switch strings.ToLower(name) {
	case "todo", "unstarted":
		return string(linear.StateUnstarted)
	case "in-progress", "in progress", "started":
		return string(linear.StateStarted)
	case "done", "completed":
		return string(linear.StateCompleted)
	case "backlog":
		return string(linear.StateBacklog)
	case "canceled", "cancelled":
		return string(linear.StateCanceled)
	case "triage":
		return string(linear.StateTriage)
	}
	return name
}
