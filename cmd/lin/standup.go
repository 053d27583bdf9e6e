package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/ui"
)

var standupSince time.Duration

var standupCmd = &cobra.Command{
	Use:   "standup",
	Short: "Summarize my in-progress and recently completed work",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		cutoff := time.Now().Add(-standupSince)
		var started, completed []linear.Issue
		for _, is := range issues {
			if is.Assignee == nil || is.Assignee.ID != viewer.ID {
				continue
			}
			switch {
			case is.StateType() == linear.StateStarted:
				started = append(started, is)
			case is.StateType() == linear.StateCompleted && completedAfter(&is, cutoff):
				completed = append(completed, is)
			}
		}

		if jsonOutput {
			return printJSON(map[string]any{
				"inProgress": started,
				"completed":  completed,
			})
		}

		fmt.Println(ui.HeaderStyle.Render("In progress"))
		printStandupLines(started)
		fmt.Println()
		fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Completed in the last %s", standupSince)))
		printStandupLines(completed)

		printGitHubActivity(cmd)
		return nil
	},
}

func completedAfter(is *linear.Issue, cutoff time.Time) bool {
	if is.CompletedAt == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, is.CompletedAt)
	if err != nil {
		return false
	}
	return t.After(cutoff)
}

func printStandupLines(issues []linear.Issue) {
	if len(issues) == 0 {
		fmt.Println(ui.MutedStyle.Render("  (none)"))
		return
	}
	for _, is := range issues {
		fmt.Printf("  %s  %s\n", ui.AccentStyle.Render(is.Identifier), is.Title)
	}
}

// printGitHubActivity is a best-effort enrichment from the gh CLI. Any
// failure, including gh not being installed, downgrades to a warning.
func printGitHubActivity(cmd *cobra.Command) {
	out, err := exec.CommandContext(cmd.Context(),
		"gh", "pr", "list", "--author", "@me", "--limit", "10").Output()
	if err != nil {
		warn("could not fetch GitHub activity: %v", err)
		return
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return
	}
	fmt.Println()
	fmt.Println(ui.HeaderStyle.Render("Open pull requests"))
	fmt.Println(trimmed)
}

func init() {
	standupCmd.Flags().DurationVar(&standupSince, "since", 24*time.Hour, "completed-work window")
}
