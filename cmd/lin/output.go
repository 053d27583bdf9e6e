package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/ui"
)

func warn(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ui.WarnStyle.Render(fmt.Sprintf("warning: "+format, args...)))
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printIssueList(issues []linear.Issue) error {
	if jsonOutput {
		return printJSON(issues)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRI\tSTATE\tTITLE\tASSIGNEE\tPROJECT")
	for i := range issues {
		is := &issues[i]
		title := is.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		assignee := ""
		if is.Assignee != nil {
			assignee = is.Assignee.DisplayName
			if assignee == "" {
				assignee = is.Assignee.Name
			}
		}
		project := ""
		if is.Project != nil {
			project = projectDisplay(is.Project.Name)
		}
		state := ""
		if is.State != nil {
			state = is.State.Name
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s %s\t%s\t%s\t%s\n",
			ui.AccentStyle.Render(is.Identifier),
			ui.PriorityGlyph(is.Priority), linear.PriorityLabel(is.Priority),
			ui.StateGlyph(string(is.StateType())), state,
			title,
			assignee,
			project,
		)
	}
	w.Flush()
	fmt.Printf("\n%d issues\n", len(issues))
	return nil
}

// projectDisplay prefixes the project name with its alias code when one
// is configured, e.g. "[MOB] Mobile App".
func projectDisplay(name string) string {
	if code, ok := cfg.AliasFor(name); ok {
		return "[" + code + "] " + name
	}
	return name
}

func printIssue(is *linear.Issue) error {
	if jsonOutput {
		return printJSON(is)
	}
	fmt.Printf("%s  %s\n", ui.HeaderStyle.Render(is.Identifier), is.Title)
	if is.State != nil {
		fmt.Printf("State:      %s %s\n", ui.StateGlyph(string(is.StateType())), is.State.Name)
	}
	fmt.Printf("Priority:   %s\n", linear.PriorityLabel(is.Priority))
	if is.Estimate != nil {
		fmt.Printf("Estimate:   %g\n", *is.Estimate)
	}
	if is.Assignee != nil {
		fmt.Printf("Assignee:   %s\n", is.Assignee.Name)
	}
	if is.Project != nil {
		fmt.Printf("Project:    %s\n", projectDisplay(is.Project.Name))
	}
	if is.Milestone != nil {
		fmt.Printf("Milestone:  %s\n", is.Milestone.Name)
	}
	if is.Parent != nil {
		fmt.Printf("Parent:     %s %s\n", is.Parent.Identifier, is.Parent.Title)
	}
	if names := is.LabelNames(); len(names) > 0 {
		fmt.Printf("Labels:     %s\n", strings.Join(names, ", "))
	}
	if len(is.Relations.Nodes) > 0 {
		printRelations(is)
	}
	if is.URL != "" {
		fmt.Printf("URL:        %s\n", ui.MutedStyle.Render(is.URL))
	}
	if is.Description != "" {
		fmt.Println()
		fmt.Print(ui.RenderMarkdown(is.Description))
	}
	if len(is.Comments.Nodes) > 0 {
		fmt.Println()
		for _, c := range is.Comments.Nodes {
			author := ""
			if c.User != nil {
				author = c.User.Name
			}
			fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("— %s (%s)", author, c.CreatedAt)))
			fmt.Println(c.Body)
		}
	}
	return nil
}

// printRelations shows both directions of the blocking relation: stored
// `blocks` edges and the derived inverse view.
func printRelations(is *linear.Issue) {
	for _, rel := range is.Relations.Nodes {
		switch rel.Type {
		case linear.RelationBlocks:
			fmt.Printf("Blocks:     %s\n", rel.RelatedIssue.Identifier)
		case linear.RelationBlockedBy:
			fmt.Printf("Blocked by: %s\n", rel.RelatedIssue.Identifier)
		}
	}
}

func printProjectList(projects []linear.Project) error {
	if jsonOutput {
		return printJSON(projects)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tPROGRESS\tTARGET")
	for i := range projects {
		p := &projects[i]
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\n",
			projectDisplay(p.Name),
			p.State,
			int(p.Progress*100),
			p.TargetDate,
		)
	}
	w.Flush()
	return nil
}

func printMilestoneList(milestones []linear.Milestone) error {
	if jsonOutput {
		return printJSON(milestones)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tTARGET")
	for i := range milestones {
		m := &milestones[i]
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Status, m.TargetDate)
	}
	w.Flush()
	return nil
}

func printLabelList(labels []linear.Label) error {
	if jsonOutput {
		return printJSON(labels)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLOR\tDESCRIPTION")
	for _, l := range labels {
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Color, l.Description)
	}
	w.Flush()
	return nil
}
