package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/ui"
	"github.com/groblegark/linctl/internal/worktree"
)

var branchCmd = &cobra.Command{
	Use:   "branch IDENTIFIER",
	Short: "Create a branch and worktree sandbox for an issue",
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

		out, err := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel").Output()
		if err != nil {
			return fmt.Errorf("not inside a git repository")
		}
		repoRoot := strings.TrimSpace(string(out))

		worktree.Warn = warn
		path, err := worktree.Start(ctx, repoRoot, issue.Identifier, issue.Title)
		if err != nil {
			return err
		}

		fmt.Printf("Worktree ready for %s\n", ui.AccentStyle.Render(issue.Identifier))
		fmt.Println("  cd " + path)
		return nil
	},
}
