package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/match"
	"github.com/groblegark/linctl/internal/order"
)

// issueFetchLimit bounds the flat team fetch that listings and the
// blocking graph are built from.
const issueFetchLimit = 250

func fetchIssues(ctx context.Context, c *linear.Client) ([]linear.Issue, error) {
	return c.Issues(ctx, cfg.Team, issueFetchLimit)
}

func resolveTeam(ctx context.Context, c *linear.Client) (*linear.Team, error) {
	return c.TeamByKey(ctx, cfg.Team)
}

// resolveProject finds a project by alias code or fuzzy name. Alias
// substitution happens first, so a code like MOB resolves through its
// configured target name.
func resolveProject(ctx context.Context, c *linear.Client, nameOrCode string) (*linear.Project, error) {
	projects, err := c.Projects(ctx, cfg.Team)
	if err != nil {
		return nil, err
	}
	name := cfg.Resolve(nameOrCode)
	names := make([]string, len(projects))
	for i := range projects {
		names[i] = projects[i].Name
	}
	idx, ok := match.Name(name, names)
	if !ok {
		return nil, fmt.Errorf("no project matches %q", nameOrCode)
	}
	return &projects[idx], nil
}

// resolveMilestone finds a milestone by alias code or fuzzy name inside
// one project.
func resolveMilestone(ctx context.Context, c *linear.Client, projectID, nameOrCode string) (*linear.Milestone, error) {
	milestones, err := c.Milestones(ctx, projectID)
	if err != nil {
		return nil, err
	}
	name := cfg.Resolve(nameOrCode)
	names := make([]string, len(milestones))
	for i := range milestones {
		names[i] = milestones[i].Name
	}
	idx, ok := match.Name(name, names)
	if !ok {
		return nil, fmt.Errorf("no milestone matches %q", nameOrCode)
	}
	return &milestones[idx], nil
}

// resolveLabels maps label names onto team label ids, creating nothing.
func resolveLabels(ctx context.Context, c *linear.Client, teamID string, names []string) ([]string, error) {
	labels, err := c.Labels(ctx, teamID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(names))
	for _, want := range names {
		found := false
		for i := range labels {
			if strings.EqualFold(labels[i].Name, want) {
				ids = append(ids, labels[i].ID)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no label named %q; see `lin labels`", want)
		}
	}
	return ids, nil
}

// parsePriority accepts both the name vocabulary and bare ordinals.
func parsePriority(s string) (int, error) {
	if p, ok := linear.PriorityNames[strings.ToLower(s)]; ok {
		return p, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= linear.PriorityNone && n <= linear.PriorityLow {
		return n, nil
	}
	return 0, fmt.Errorf("invalid priority %q (none, urgent, high, medium, low)", s)
}

// applyAssignments persists new sort keys as independent concurrent
// updates. A failed update is reported but does not undo the others;
// the next reorder repairs any partial result.
func applyAssignments(ctx context.Context, assignments []order.Assignment, persist func(context.Context, order.Assignment) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range assignments {
		g.Go(func() error {
			if err := persist(ctx, a); err != nil {
				return fmt.Errorf("updating %s: %w", a.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// issueOrderItems adapts issues to the ordering engine. Code carries
// the identifier so exact lookups win; Name keeps identifier and title
// together for substring matching and messages.
func issueOrderItems(issues []linear.Issue) []order.Item {
	items := make([]order.Item, len(issues))
	for i := range issues {
		items[i] = order.Item{
			ID:   issues[i].ID,
			Code: issues[i].Identifier,
			Name: issues[i].Identifier + " " + issues[i].Title,
			Key:  issues[i].SortOrder,
		}
	}
	return items
}

func projectOrderItems(projects []linear.Project) []order.Item {
	items := make([]order.Item, len(projects))
	for i := range projects {
		items[i] = order.Item{ID: projects[i].ID, Name: projects[i].Name, Key: projects[i].SortOrder}
	}
	return items
}

func milestoneOrderItems(milestones []linear.Milestone) []order.Item {
	items := make([]order.Item, len(milestones))
	for i := range milestones {
		items[i] = order.Item{ID: milestones[i].ID, Name: milestones[i].Name, Key: milestones[i].SortOrder}
	}
	return items
}

// directionFromFlags folds the --before/--after pair into a Direction
// plus its anchor. Both set is an error; neither is order.None.
func directionFromFlags(before, after string) (order.Direction, string, error) {
	switch {
	case before != "" && after != "":
		return order.None, "", fmt.Errorf("--before and --after are mutually exclusive")
	case before != "":
		return order.Before, before, nil
	case after != "":
		return order.After, after, nil
	}
	return order.None, "", nil
}
