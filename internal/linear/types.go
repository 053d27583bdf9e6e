package linear

// StateType is the coarse classification layered over workflow state names.
type StateType string

const (
	StateBacklog   StateType = "backlog"
	StateUnstarted StateType = "unstarted"
	StateStarted   StateType = "started"
	StateCompleted StateType = "completed"
	StateCanceled  StateType = "canceled"
	StateTriage    StateType = "triage"
)

// Closed reports whether the type counts as closed for blocking purposes.
func (t StateType) Closed() bool {
	return t == StateCompleted || t == StateCanceled
}

// Priority ordinals. Lower nonzero value means more urgent; zero is the
// "no priority" sentinel and sorts after everything else.
const (
	PriorityNone   = 0
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityMedium = 3
	PriorityLow    = 4
)

// PriorityNames maps the CLI vocabulary onto priority ordinals.
var PriorityNames = map[string]int{
	"none":   PriorityNone,
	"urgent": PriorityUrgent,
	"high":   PriorityHigh,
	"medium": PriorityMedium,
	"low":    PriorityLow,
}

// PriorityLabel returns the display name for a priority ordinal.
func PriorityLabel(p int) string {
	switch p {
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "none"
}

// RelationBlocks is the stored direction of a blocking edge: the issue
// carrying the relation blocks the related issue. The inverse view is
// derived, never stored.
const (
	RelationBlocks    = "blocks"
	RelationBlockedBy = "blockedBy"
)

// User is an identity on the remote service.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Team is a workspace team; Key prefixes issue identifiers.
type Team struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// WorkflowState is a named state with a coarse type.
type WorkflowState struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type StateType `json:"type"`
}

// Label is a team-scoped label.
type Label struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Project groups issues; only completed/canceled count as closed.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	State       string  `json:"state"` // planned, started, completed, canceled
	Progress    float64 `json:"progress"`
	SortOrder   float64 `json:"sortOrder"`
	Priority    int     `json:"priority"`
	StartDate   string  `json:"startDate"`
	TargetDate  string  `json:"targetDate"`
}

// ClosedState reports whether the project lifecycle state is closed.
func (p *Project) ClosedState() bool {
	return p.State == "completed" || p.State == "canceled"
}

// Milestone belongs to exactly one project.
type Milestone struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TargetDate  string   `json:"targetDate"`
	Status      string   `json:"status"`
	SortOrder   float64  `json:"sortOrder"`
	Project     *Project `json:"project,omitempty"`
}

// IssueRef is a lightweight reference to another issue.
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title,omitempty"`
}

// Relation is a typed directed edge on an issue. Type "blocks" means this
// issue blocks RelatedIssue.
type Relation struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	RelatedIssue struct {
		ID         string         `json:"id"`
		Identifier string         `json:"identifier"`
		State      *WorkflowState `json:"state,omitempty"`
	} `json:"relatedIssue"`
}

// Comment is one append-only comment on an issue.
type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	User      *User  `json:"user,omitempty"`
}

// Issue is the core work item as fetched from the remote API.
type Issue struct {
	ID          string         `json:"id"`
	Identifier  string         `json:"identifier"` // e.g. "ENG-42"
	Title       string         `json:"title"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	Priority    int            `json:"priority"`
	Estimate    *float64       `json:"estimate,omitempty"`
	SortOrder   float64        `json:"sortOrder"`
	State       *WorkflowState `json:"state"`
	Assignee    *User          `json:"assignee"`
	Project     *Project       `json:"project,omitempty"`
	Milestone   *Milestone     `json:"projectMilestone,omitempty"`
	Parent      *IssueRef      `json:"parent,omitempty"`
	Labels      struct {
		Nodes []Label `json:"nodes"`
	} `json:"labels"`
	Relations struct {
		Nodes []Relation `json:"nodes"`
	} `json:"relations"`
	Comments struct {
		Nodes []Comment `json:"nodes"`
	} `json:"comments"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// StateType returns the issue's coarse state type, or empty when the
// state was not fetched.
func (i *Issue) StateType() StateType {
	if i.State == nil {
		return ""
	}
	return i.State.Type
}

// Open reports whether the issue is neither completed nor canceled.
func (i *Issue) Open() bool {
	return !i.StateType().Closed()
}

// LabelNames returns the issue's label names in fetch order.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels.Nodes))
	for _, l := range i.Labels.Nodes {
		names = append(names, l.Name)
	}
	return names
}

// PageInfo is the cursor envelope on paginated connections.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}
