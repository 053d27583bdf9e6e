package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/graph"
	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/match"
	"github.com/groblegark/linctl/internal/order"
	"github.com/groblegark/linctl/internal/ui"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Work with issues",
}

// issuesCmd is the listing shorthand: `lin issues` = `lin issue list`.
var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List issues",
	RunE:  runIssueList,
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	RunE:  runIssueList,
}

var (
	listMine      bool
	listUnblocked bool
	listLabels    []string
	listStatuses  []string
	listProject   string
	listMilestone string
	listPriority  string

	// Deprecated boolean spellings, each mapped onto --status.
	listBacklog    bool
	listTodo       bool
	listInProgress bool
	listDone       bool
)

func addListFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&listMine, "mine", false, "only issues assigned to me")
	f.BoolVar(&listUnblocked, "unblocked", false, "only open issues nothing blocks")
	f.StringArrayVarP(&listLabels, "label", "l", nil, "filter by label (repeatable, any match)")
	f.StringArrayVarP(&listStatuses, "status", "s", nil, "filter by status (repeatable, any match)")
	f.StringVarP(&listProject, "project", "p", "", "filter by project name or alias")
	f.StringVarP(&listMilestone, "milestone", "m", "", "filter by milestone name or alias")
	f.StringVar(&listPriority, "priority", "", "filter by priority (none, urgent, high, medium, low)")

	f.BoolVar(&listBacklog, "backlog", false, "")
	f.BoolVar(&listTodo, "todo", false, "")
	f.BoolVar(&listInProgress, "in-progress", false, "")
	f.BoolVar(&listDone, "done", false, "")
	f.MarkDeprecated("backlog", "use --status backlog")
	f.MarkDeprecated("todo", "use --status todo")
	f.MarkDeprecated("in-progress", "use --status in-progress")
	f.MarkDeprecated("done", "use --status done")
}

func runIssueList(cmd *cobra.Command, args []string) error {
	client, err := api()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	viewer, err := client.Viewer(ctx)
	if err != nil {
		return err
	}
	issues, err := fetchIssues(ctx, client)
	if err != nil {
		return err
	}

	statuses := append([]string{}, listStatuses...)
	for _, d := range []struct {
		set    bool
		status string
	}{
		{listBacklog, "backlog"},
		{listTodo, "todo"},
		{listInProgress, "in-progress"},
		{listDone, "done"},
	} {
		if d.set {
			statuses = append(statuses, d.status)
		}
	}
	for i := range statuses {
		statuses[i] = graph.CanonicalStatus(statuses[i])
	}

	f := graph.Filter{
		Labels:    listLabels,
		Statuses:  statuses,
		Unblocked: listUnblocked,
	}
	if listMine {
		f.ViewerID = viewer.ID
	}
	if listProject != "" {
		f.Project = cfg.Resolve(listProject)
	}
	if listMilestone != "" {
		f.Milestone = cfg.Resolve(listMilestone)
	}
	if listPriority != "" {
		p, err := parsePriority(listPriority)
		if err != nil {
			return err
		}
		f.Priority = &p
	}

	out := f.Apply(issues)
	graph.SortForDisplay(out, viewer.ID)
	return printIssueList(out)
}

var issueShowCmd = &cobra.Command{
	Use:   "show IDENTIFIER",
	Short: "Show one issue with description and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		issue, err := client.IssueByIdentifier(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printIssue(issue)
	},
}

var (
	createDescription string
	createPriority    string
	createEstimate    float64
	createProject     string
	createMilestone   string
	createParent      string
	createLabels      []string
	createMine        bool
	createBlocks      []string
	createBlockedBy   []string
)

var issueCreateCmd = &cobra.Command{
	Use:   "create TITLE",
	Short: "Create an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		team, err := resolveTeam(ctx, client)
		if err != nil {
			return err
		}

		input := &linear.IssueCreateInput{
			TeamID:      team.ID,
			Title:       args[0],
			Description: createDescription,
		}
		if createPriority != "" {
			p, err := parsePriority(createPriority)
			if err != nil {
				return err
			}
			input.Priority = &p
		}
		if cmd.Flags().Changed("estimate") {
			input.Estimate = &createEstimate
		}
		project := createProject
		if project == "" {
			project = cfg.DefaultProject
		}
		if project != "" {
			p, err := resolveProject(ctx, client, project)
			if err != nil {
				return err
			}
			input.ProjectID = p.ID
			milestone := createMilestone
			if milestone == "" {
				milestone = cfg.DefaultMilestone
			}
			if milestone != "" {
				m, err := resolveMilestone(ctx, client, p.ID, milestone)
				if err != nil {
					return err
				}
				input.MilestoneID = m.ID
			}
		} else if createMilestone != "" {
			return fmt.Errorf("--milestone requires --project")
		}
		if len(createLabels) > 0 {
			ids, err := resolveLabels(ctx, client, team.ID, createLabels)
			if err != nil {
				return err
			}
			input.LabelIDs = ids
		}
		if createParent != "" {
			parent, err := client.IssueByIdentifier(ctx, createParent)
			if err != nil {
				return err
			}
			input.ParentID = parent.ID
		}
		if createMine {
			viewer, err := client.Viewer(ctx)
			if err != nil {
				return err
			}
			input.AssigneeID = viewer.ID
		}

		issue, err := client.CreateIssue(ctx, input)
		if err != nil {
			return err
		}
		if err := linkBlocking(ctx, client, issue, createBlocks, createBlockedBy); err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(issue)
		}
		fmt.Printf("Created %s  %s\n", ui.AccentStyle.Render(issue.Identifier), issue.Title)
		return nil
	},
}

// linkBlocking records blocking edges around a freshly created issue.
// The stored direction is always `blocks`: for --blocked-by the edge is
// created on the other issue pointing at this one.
func linkBlocking(ctx context.Context, c *linear.Client, issue *linear.Issue, blocks, blockedBy []string) error {
	for _, id := range blocks {
		target, err := c.IssueByIdentifier(ctx, id)
		if err != nil {
			return err
		}
		if err := c.CreateRelation(ctx, issue.ID, target.ID, linear.RelationBlocks); err != nil {
			return err
		}
	}
	for _, id := range blockedBy {
		blocker, err := c.IssueByIdentifier(ctx, id)
		if err != nil {
			return err
		}
		if err := c.CreateRelation(ctx, blocker.ID, issue.ID, linear.RelationBlocks); err != nil {
			return err
		}
	}
	return nil
}

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateEstimate    float64
	updateStatus      string
	updateProject     string
	updateMilestone   string
)

var issueUpdateCmd = &cobra.Command{
	Use:   "update IDENTIFIER",
	Short: "Update fields of an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		issue, err := client.IssueByIdentifier(ctx, args[0])
		if err != nil {
			return err
		}

		input := map[string]any{}
		if updateTitle != "" {
			input["title"] = updateTitle
		}
		if cmd.Flags().Changed("description") {
			input["description"] = updateDescription
		}
		if updatePriority != "" {
			p, err := parsePriority(updatePriority)
			if err != nil {
				return err
			}
			input["priority"] = p
		}
		if cmd.Flags().Changed("estimate") {
			input["estimate"] = updateEstimate
		}
		if updateStatus != "" {
			team, err := resolveTeam(ctx, client)
			if err != nil {
				return err
			}
			state, err := resolveState(ctx, client, team.ID, updateStatus)
			if err != nil {
				return err
			}
			input["stateId"] = state.ID
		}
		if updateProject != "" {
			p, err := resolveProject(ctx, client, updateProject)
			if err != nil {
				return err
			}
			input["projectId"] = p.ID
			if updateMilestone != "" {
				m, err := resolveMilestone(ctx, client, p.ID, updateMilestone)
				if err != nil {
					return err
				}
				input["projectMilestoneId"] = m.ID
			}
		} else if updateMilestone != "" {
			if issue.Project == nil {
				return fmt.Errorf("%s has no project; pass --project too", issue.Identifier)
			}
			m, err := resolveMilestone(ctx, client, issue.Project.ID, updateMilestone)
			if err != nil {
				return err
			}
			input["projectMilestoneId"] = m.ID
		}
		if len(input) == 0 {
			return fmt.Errorf("nothing to update; see `lin issue update --help`")
		}

		updated, err := client.UpdateIssue(ctx, issue.ID, input)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(updated)
		}
		fmt.Printf("Updated %s\n", updated.Identifier)
		return nil
	},
}

// resolveState picks the workflow state for a status word: exact display
// name first, then the first state of the canonical coarse type.
func resolveState(ctx context.Context, c *linear.Client, teamID, status string) (*linear.WorkflowState, error) {
	states, err := c.WorkflowStates(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for i := range states {
		if strings.EqualFold(states[i].Name, status) {
			return &states[i], nil
		}
	}
	want := graph.CanonicalStatus(status)
	for i := range states {
		if strings.EqualFold(string(states[i].Type), want) {
			return &states[i], nil
		}
	}
	return nil, fmt.Errorf("no workflow state matches %q", status)
}

var issueStartCmd = &cobra.Command{
	Use:   "start IDENTIFIER",
	Short: "Assign an issue to me and move it to a started state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		issue, err := client.IssueByIdentifier(ctx, args[0])
		if err != nil {
			return err
		}
		team, err := resolveTeam(ctx, client)
		if err != nil {
			return err
		}
		state, err := client.StateOfType(ctx, team.ID, linear.StateStarted)
		if err != nil {
			return err
		}
		viewer, err := client.Viewer(ctx)
		if err != nil {
			return err
		}
		updated, err := client.UpdateIssue(ctx, issue.ID, map[string]any{
			"stateId":    state.ID,
			"assigneeId": viewer.ID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Started %s  %s\n", ui.AccentStyle.Render(updated.Identifier), updated.Title)
		return nil
	},
}

var issueCloseCmd = &cobra.Command{
	Use:   "close IDENTIFIER",
	Short: "Move an issue to a completed state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		_, err = closeIssue(cmd.Context(), client, args[0])
		return err
	},
}

// closeIssue moves one issue to the team's first completed state and is
// shared with `lin done`.
func closeIssue(ctx context.Context, c *linear.Client, identifier string) (*linear.Issue, error) {
	issue, err := c.IssueByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	team, err := resolveTeam(ctx, c)
	if err != nil {
		return nil, err
	}
	state, err := c.StateOfType(ctx, team.ID, linear.StateCompleted)
	if err != nil {
		return nil, err
	}
	updated, err := c.UpdateIssue(ctx, issue.ID, map[string]any{"stateId": state.ID})
	if err != nil {
		return nil, err
	}
	fmt.Printf("Closed %s  %s\n", ui.AccentStyle.Render(updated.Identifier), updated.Title)
	return updated, nil
}

var issueCommentCmd = &cobra.Command{
	Use:   "comment IDENTIFIER BODY",
	Short: "Add a comment to an issue",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		issue, err := client.IssueByIdentifier(ctx, args[0])
		if err != nil {
			return err
		}
		body := strings.Join(args[1:], " ")
		if _, err := client.CreateComment(ctx, issue.ID, body); err != nil {
			return err
		}
		fmt.Printf("Commented on %s\n", issue.Identifier)
		return nil
	},
}

var issueCheckCmd = &cobra.Command{
	Use:   "check IDENTIFIER TEXT",
	Short: "Check off a checklist item in the description",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleChecklistItem(cmd, args, true)
	},
}

var issueUncheckCmd = &cobra.Command{
	Use:   "uncheck IDENTIFIER TEXT",
	Short: "Uncheck a checklist item in the description",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleChecklistItem(cmd, args, false)
	},
}

func toggleChecklistItem(cmd *cobra.Command, args []string, check bool) error {
	client, err := api()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	issue, err := client.IssueByIdentifier(ctx, args[0])
	if err != nil {
		return err
	}
	query := strings.Join(args[1:], " ")

	updated, err := match.ToggleChecklist(issue.Description, query, check)
	if err != nil {
		var noMatch *match.NoChecklistMatchError
		if errors.As(err, &noMatch) && len(noMatch.Candidates) > 0 {
			fmt.Fprintln(os.Stderr, "Candidates:")
			for _, line := range noMatch.Candidates {
				fmt.Fprintln(os.Stderr, "  "+line)
			}
		}
		return err
	}

	if _, err := client.UpdateIssue(ctx, issue.ID, map[string]any{"description": updated}); err != nil {
		return err
	}
	verb := "Checked"
	if !check {
		verb = "Unchecked"
	}
	fmt.Printf("%s item on %s\n", verb, issue.Identifier)
	return nil
}

var (
	moveBefore string
	moveAfter  string
)

var issueMoveCmd = &cobra.Command{
	Use:   "move IDENTIFIER (--before ANCHOR | --after ANCHOR)",
	Short: "Move an issue next to another in the team order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		dir, anchor, err := directionFromFlags(moveBefore, moveAfter)
		if err != nil {
			return err
		}
		issues, err := fetchIssues(ctx, client)
		if err != nil {
			return err
		}
		a, err := order.MoveOne(issueOrderItems(issues), args[0], anchor, dir)
		if err != nil {
			return err
		}
		if _, err := client.UpdateIssue(ctx, a.ID, map[string]any{"sortOrder": a.Key}); err != nil {
			return err
		}
		fmt.Printf("Moved %s\n", args[0])
		return nil
	},
}

var issueReorderCmd = &cobra.Command{
	Use:   "reorder IDENTIFIER...",
	Short: "Put the named issues in the given order, ahead of the rest",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		issues, err := fetchIssues(ctx, client)
		if err != nil {
			return err
		}
		assignments, err := order.ReorderAll(issueOrderItems(issues), args)
		if err != nil {
			return err
		}
		err = applyAssignments(ctx, assignments, func(ctx context.Context, a order.Assignment) error {
			_, err := client.UpdateIssue(ctx, a.ID, map[string]any{"sortOrder": a.Key})
			return err
		})
		if err != nil {
			return err
		}
		fmt.Printf("Reordered %d issues\n", len(assignments))
		return nil
	},
}

func init() {
	addListFlags(issuesCmd)
	addListFlags(issueListCmd)

	f := issueCreateCmd.Flags()
	f.StringVarP(&createDescription, "description", "d", "", "markdown description")
	f.StringVar(&createPriority, "priority", "", "priority (none, urgent, high, medium, low)")
	f.Float64Var(&createEstimate, "estimate", 0, "point estimate")
	f.StringVarP(&createProject, "project", "p", "", "project name or alias")
	f.StringVarP(&createMilestone, "milestone", "m", "", "milestone name or alias")
	f.StringVar(&createParent, "parent", "", "parent issue identifier")
	f.StringArrayVarP(&createLabels, "label", "l", nil, "label name (repeatable)")
	f.BoolVar(&createMine, "mine", false, "assign to me")
	f.StringArrayVar(&createBlocks, "blocks", nil, "issue this one blocks (repeatable)")
	f.StringArrayVar(&createBlockedBy, "blocked-by", nil, "issue blocking this one (repeatable)")

	u := issueUpdateCmd.Flags()
	u.StringVar(&updateTitle, "title", "", "new title")
	u.StringVarP(&updateDescription, "description", "d", "", "new markdown description")
	u.StringVar(&updatePriority, "priority", "", "new priority")
	u.Float64Var(&updateEstimate, "estimate", 0, "new point estimate")
	u.StringVarP(&updateStatus, "status", "s", "", "new status (name or coarse type)")
	u.StringVarP(&updateProject, "project", "p", "", "new project name or alias")
	u.StringVarP(&updateMilestone, "milestone", "m", "", "new milestone name or alias")

	issueMoveCmd.Flags().StringVar(&moveBefore, "before", "", "place ahead of this issue")
	issueMoveCmd.Flags().StringVar(&moveAfter, "after", "", "place behind this issue")

	issueCmd.AddCommand(
		issueListCmd,
		issueShowCmd,
		issueCreateCmd,
		issueUpdateCmd,
		issueStartCmd,
		issueCloseCmd,
		issueCommentCmd,
		issueCheckCmd,
		issueUncheckCmd,
		issueMoveCmd,
		issueReorderCmd,
	)
}
