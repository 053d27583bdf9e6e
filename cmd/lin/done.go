package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/ui"
	"github.com/groblegark/linctl/internal/worktree"
)

var doneDeleteBranch bool

var doneCmd = &cobra.Command{
	Use:   "done [IDENTIFIER]",
	Short: "Close an issue and print worktree cleanup commands",
	Long: `Close an issue as completed. Inside an issue worktree the identifier
can be omitted; it is derived from the branch name. The worktree removal
commands are printed rather than run, because leaving the worktree has
to happen in your shell.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		session, inWorktree := worktree.Detect(ctx, cwd)

		var identifier string
		switch {
		case len(args) == 1:
			identifier = args[0]
		case inWorktree:
			id, ok := identifierFromBranch(session.Branch)
			if !ok {
				return fmt.Errorf("cannot derive an issue from branch %q; pass the identifier", session.Branch)
			}
			identifier = id
		default:
			return fmt.Errorf("no identifier given and not inside an issue worktree")
		}

		if _, err := closeIssue(ctx, client, identifier); err != nil {
			return err
		}

		if inWorktree {
			fmt.Println()
			fmt.Println("To remove the worktree:")
			for _, c := range session.RemovalCommands(doneDeleteBranch) {
				fmt.Println("  " + ui.MutedStyle.Render(c))
			}
		}
		return nil
	},
}

// identifierFromBranch recovers "ENG-42" from a branch named
// "ENG-42-fix-the-thing". The branch layout is identifier first, then
// the title slug.
func identifierFromBranch(branch string) (string, bool) {
	parts := strings.SplitN(branch, "-", 3)
	if len(parts) < 2 {
		return "", false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return "", false
	}
	return strings.ToUpper(parts[0]) + "-" + parts[1], true
}

func init() {
	doneCmd.Flags().BoolVar(&doneDeleteBranch, "delete-branch", false, "also print the branch deletion command")
}
