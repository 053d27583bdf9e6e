package linear

import (
	"context"
	"fmt"
)

// IssueCreateInput carries the writable fields for issue creation.
// Zero values are omitted from the mutation input.
type IssueCreateInput struct {
	TeamID      string   `json:"teamId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	MilestoneID string   `json:"projectMilestoneId,omitempty"`
	ParentID    string   `json:"parentId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

// CreateIssue creates an issue and returns it.
func (c *Client) CreateIssue(ctx context.Context, input *IssueCreateInput) (*Issue, error) {
	var resp struct {
		IssueCreate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	query := `
		mutation IssueCreate($input: IssueCreateInput!) {
			issueCreate(input: $input) {
				success
				issue {` + issueFields + `}
			}
		}`
	if err := c.Execute(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueCreate.Success {
		return nil, fmt.Errorf("issue creation was rejected")
	}
	return &resp.IssueCreate.Issue, nil
}

// UpdateIssue applies a partial update to one issue. The input map is the
// raw IssueUpdateInput: stateId, assigneeId, priority, description,
// sortOrder, projectId, projectMilestoneId, labelIds, and so on.
func (c *Client) UpdateIssue(ctx context.Context, id string, input map[string]any) (*Issue, error) {
	var resp struct {
		IssueUpdate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueUpdate"`
	}
	query := `
		mutation IssueUpdate($id: String!, $input: IssueUpdateInput!) {
			issueUpdate(id: $id, input: $input) {
				success
				issue {` + issueFields + `}
			}
		}`
	vars := map[string]any{"id": id, "input": input}
	if err := c.Execute(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueUpdate.Success {
		return nil, fmt.Errorf("issue update was rejected")
	}
	return &resp.IssueUpdate.Issue, nil
}

// CreateComment appends a comment to an issue.
func (c *Client) CreateComment(ctx context.Context, issueID, body string) (*Comment, error) {
	var resp struct {
		CommentCreate struct {
			Success bool    `json:"success"`
			Comment Comment `json:"comment"`
		} `json:"commentCreate"`
	}
	query := `
		mutation CommentCreate($input: CommentCreateInput!) {
			commentCreate(input: $input) {
				success
				comment { id body createdAt user { id name displayName } }
			}
		}`
	input := map[string]any{"issueId": issueID, "body": body}
	if err := c.Execute(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.CommentCreate.Success {
		return nil, fmt.Errorf("comment creation was rejected")
	}
	return &resp.CommentCreate.Comment, nil
}

// CreateRelation records a typed directed edge between two issues.
// For blocking, issueID blocks relatedIssueID.
func (c *Client) CreateRelation(ctx context.Context, issueID, relatedIssueID, relType string) error {
	var resp struct {
		IssueRelationCreate struct {
			Success bool `json:"success"`
		} `json:"issueRelationCreate"`
	}
	query := `
		mutation RelationCreate($input: IssueRelationCreateInput!) {
			issueRelationCreate(input: $input) { success }
		}`
	input := map[string]any{
		"issueId":        issueID,
		"relatedIssueId": relatedIssueID,
		"type":           relType,
	}
	if err := c.Execute(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return err
	}
	if !resp.IssueRelationCreate.Success {
		return fmt.Errorf("relation creation was rejected")
	}
	return nil
}

// CreateProject creates a project attached to the team.
func (c *Client) CreateProject(ctx context.Context, teamID, name, description string) (*Project, error) {
	var resp struct {
		ProjectCreate struct {
			Success bool    `json:"success"`
			Project Project `json:"project"`
		} `json:"projectCreate"`
	}
	query := `
		mutation ProjectCreate($input: ProjectCreateInput!) {
			projectCreate(input: $input) {
				success
				project { id name description state progress sortOrder priority startDate targetDate }
			}
		}`
	input := map[string]any{"teamIds": []string{teamID}, "name": name}
	if description != "" {
		input["description"] = description
	}
	if err := c.Execute(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.ProjectCreate.Success {
		return nil, fmt.Errorf("project creation was rejected")
	}
	return &resp.ProjectCreate.Project, nil
}

// UpdateProject applies a partial ProjectUpdateInput, e.g. {"sortOrder": k}.
func (c *Client) UpdateProject(ctx context.Context, id string, input map[string]any) (*Project, error) {
	var resp struct {
		ProjectUpdate struct {
			Success bool    `json:"success"`
			Project Project `json:"project"`
		} `json:"projectUpdate"`
	}
	query := `
		mutation ProjectUpdate($id: String!, $input: ProjectUpdateInput!) {
			projectUpdate(id: $id, input: $input) {
				success
				project { id name description state progress sortOrder priority startDate targetDate }
			}
		}`
	vars := map[string]any{"id": id, "input": input}
	if err := c.Execute(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.ProjectUpdate.Success {
		return nil, fmt.Errorf("project update was rejected")
	}
	return &resp.ProjectUpdate.Project, nil
}

// CreateMilestone creates a milestone inside one project.
func (c *Client) CreateMilestone(ctx context.Context, projectID, name, targetDate string) (*Milestone, error) {
	var resp struct {
		ProjectMilestoneCreate struct {
			Success   bool      `json:"success"`
			Milestone Milestone `json:"projectMilestone"`
		} `json:"projectMilestoneCreate"`
	}
	query := `
		mutation MilestoneCreate($input: ProjectMilestoneCreateInput!) {
			projectMilestoneCreate(input: $input) {
				success
				projectMilestone { id name description targetDate status sortOrder }
			}
		}`
	input := map[string]any{"projectId": projectID, "name": name}
	if targetDate != "" {
		input["targetDate"] = targetDate
	}
	if err := c.Execute(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.ProjectMilestoneCreate.Success {
		return nil, fmt.Errorf("milestone creation was rejected")
	}
	return &resp.ProjectMilestoneCreate.Milestone, nil
}

// UpdateMilestone applies a partial ProjectMilestoneUpdateInput.
func (c *Client) UpdateMilestone(ctx context.Context, id string, input map[string]any) (*Milestone, error) {
	var resp struct {
		ProjectMilestoneUpdate struct {
			Success   bool      `json:"success"`
			Milestone Milestone `json:"projectMilestone"`
		} `json:"projectMilestoneUpdate"`
	}
	query := `
		mutation MilestoneUpdate($id: String!, $input: ProjectMilestoneUpdateInput!) {
			projectMilestoneUpdate(id: $id, input: $input) {
				success
				projectMilestone { id name description targetDate status sortOrder }
			}
		}`
	vars := map[string]any{"id": id, "input": input}
	if err := c.Execute(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.ProjectMilestoneUpdate.Success {
		return nil, fmt.Errorf("milestone update was rejected")
	}
	return &resp.ProjectMilestoneUpdate.Milestone, nil
}

// CreateLabel creates a team label.
func (c *Client) CreateLabel(ctx context.Context, teamID, name, color string) (*Label, error) {
	var resp struct {
		IssueLabelCreate struct {
			Success bool  `json:"success"`
			Label   Label `json:"issueLabel"`
		} `json:"issueLabelCreate"`
	}
	query := `
		mutation LabelCreate($input: IssueLabelCreateInput!) {
			issueLabelCreate(input: $input) {
				success
				issueLabel { id name color description }
			}
		}`
	input := map[string]any{"teamId": teamID, "name": name}
	if color != "" {
		input["color"] = color
	}
	if err := c.Execute(ctx, query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueLabelCreate.Success {
		return nil, fmt.Errorf("label creation was rejected")
	}
	return &resp.IssueLabelCreate.Label, nil
}
