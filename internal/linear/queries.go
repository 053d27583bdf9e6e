package linear

import (
	"context"
	"fmt"
)

// issueFields is the selection set shared by every issue read. Relations
// are always fetched so the blocking graph can be built from one pass.
const issueFields = `
	id
	identifier
	title
	description
	url
	priority
	estimate
	sortOrder
	state { id name type }
	assignee { id name email displayName }
	project { id name state }
	projectMilestone { id name targetDate sortOrder }
	parent { id identifier title }
	labels { nodes { id name color } }
	relations {
		nodes {
			id
			type
			relatedIssue { id identifier state { id name type } }
		}
	}
	createdAt
	updatedAt
	completedAt
`

// Viewer returns the authenticated user.
func (c *Client) Viewer(ctx context.Context) (*User, error) {
	var resp struct {
		Viewer User `json:"viewer"`
	}
	query := `query { viewer { id name email displayName } }`
	if err := c.Execute(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Viewer, nil
}

// Teams lists the teams visible to the viewer.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var resp struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	query := `query { teams { nodes { id key name } } }`
	if err := c.Execute(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams.Nodes, nil
}

// TeamByKey resolves a team key (the issue identifier prefix) to a team.
func (c *Client) TeamByKey(ctx context.Context, key string) (*Team, error) {
	teams, err := c.Teams(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if teams[i].Key == key {
			return &teams[i], nil
		}
	}
	return nil, fmt.Errorf("team %q not found", key)
}

// Issues fetches up to first issues for the team in one flat read,
// with relation lists attached.
func (c *Client) Issues(ctx context.Context, teamKey string, first int) ([]Issue, error) {
	var resp struct {
		Issues struct {
			Nodes    []Issue  `json:"nodes"`
			PageInfo PageInfo `json:"pageInfo"`
		} `json:"issues"`
	}
	query := `
		query Issues($teamKey: String!, $first: Int!) {
			issues(
				first: $first
				filter: { team: { key: { eq: $teamKey } } }
			) {
				nodes {` + issueFields + `}
				pageInfo { hasNextPage endCursor }
			}
		}`
	vars := map[string]any{"teamKey": teamKey, "first": first}
	if err := c.Execute(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Issues.Nodes, nil
}

// IssueByIdentifier fetches a single issue by its human key, e.g. "ENG-42",
// including comments.
func (c *Client) IssueByIdentifier(ctx context.Context, identifier string) (*Issue, error) {
	var resp struct {
		Issue *Issue `json:"issue"`
	}
	query := `
		query Issue($id: String!) {
			issue(id: $id) {` + issueFields + `
				comments { nodes { id body createdAt user { id name displayName } } }
			}
		}`
	if err := c.Execute(ctx, query, map[string]any{"id": identifier}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, fmt.Errorf("issue %q not found", identifier)
	}
	return resp.Issue, nil
}

// Projects lists the team's projects.
func (c *Client) Projects(ctx context.Context, teamKey string) ([]Project, error) {
	var resp struct {
		Projects struct {
			Nodes []Project `json:"nodes"`
		} `json:"projects"`
	}
	query := `
		query Projects($teamKey: String!) {
			projects(
				first: 100
				filter: { accessibleTeams: { key: { eq: $teamKey } } }
			) {
				nodes {
					id name description state progress sortOrder
					priority startDate targetDate
				}
			}
		}`
	if err := c.Execute(ctx, query, map[string]any{"teamKey": teamKey}, &resp); err != nil {
		return nil, err
	}
	return resp.Projects.Nodes, nil
}

// Milestones lists the milestones of one project.
func (c *Client) Milestones(ctx context.Context, projectID string) ([]Milestone, error) {
	var resp struct {
		Project struct {
			Milestones struct {
				Nodes []Milestone `json:"nodes"`
			} `json:"projectMilestones"`
		} `json:"project"`
	}
	query := `
		query Milestones($projectId: String!) {
			project(id: $projectId) {
				projectMilestones(first: 100) {
					nodes { id name description targetDate status sortOrder }
				}
			}
		}`
	if err := c.Execute(ctx, query, map[string]any{"projectId": projectID}, &resp); err != nil {
		return nil, err
	}
	return resp.Project.Milestones.Nodes, nil
}

// Labels lists the team's labels.
func (c *Client) Labels(ctx context.Context, teamID string) ([]Label, error) {
	var resp struct {
		Team struct {
			Labels struct {
				Nodes []Label `json:"nodes"`
			} `json:"labels"`
		} `json:"team"`
	}
	query := `
		query Labels($teamId: String!) {
			team(id: $teamId) {
				labels(first: 250) { nodes { id name color description } }
			}
		}`
	if err := c.Execute(ctx, query, map[string]any{"teamId": teamID}, &resp); err != nil {
		return nil, err
	}
	return resp.Team.Labels.Nodes, nil
}

// WorkflowStates lists the team's workflow states with coarse types.
func (c *Client) WorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	var resp struct {
		Team struct {
			States struct {
				Nodes []WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	query := `
		query States($teamId: String!) {
			team(id: $teamId) {
				states { nodes { id name type } }
			}
		}`
	if err := c.Execute(ctx, query, map[string]any{"teamId": teamID}, &resp); err != nil {
		return nil, err
	}
	return resp.Team.States.Nodes, nil
}

// StateOfType returns the team's first workflow state with the given
// coarse type. Used by start/close to pick a concrete target state.
func (c *Client) StateOfType(ctx context.Context, teamID string, t StateType) (*WorkflowState, error) {
	states, err := c.WorkflowStates(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for i := range states {
		if states[i].Type == t {
			return &states[i], nil
		}
	}
	return nil, fmt.Errorf("no workflow state of type %q", t)
}
