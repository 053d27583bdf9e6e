package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/order"
	"github.com/groblegark/linctl/internal/ui"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Work with projects",
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE:  runProjectList,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectList,
}

func runProjectList(cmd *cobra.Command, args []string) error {
	client, err := api()
	if err != nil {
		return err
	}
	projects, err := client.Projects(cmd.Context(), cfg.Team)
	if err != nil {
		return err
	}
	return printProjectList(projects)
}

var projectCreateDescription string

var projectCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a project",
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
		project, err := client.CreateProject(ctx, team.ID, args[0], projectCreateDescription)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(project)
		}
		fmt.Printf("Created project %s\n", ui.AccentStyle.Render(project.Name))
		return nil
	},
}

var (
	projectMoveBefore string
	projectMoveAfter  string
)

var projectMoveCmd = &cobra.Command{
	Use:   "move NAME (--before ANCHOR | --after ANCHOR)",
	Short: "Move a project next to another",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		dir, anchor, err := directionFromFlags(projectMoveBefore, projectMoveAfter)
		if err != nil {
			return err
		}
		projects, err := client.Projects(ctx, cfg.Team)
		if err != nil {
			return err
		}
		a, err := order.MoveOne(projectOrderItems(projects), cfg.Resolve(args[0]), cfg.Resolve(anchor), dir)
		if err != nil {
			return err
		}
		if _, err := client.UpdateProject(ctx, a.ID, map[string]any{"sortOrder": a.Key}); err != nil {
			return err
		}
		fmt.Printf("Moved %s\n", a.Name)
		return nil
	},
}

var projectReorderCmd = &cobra.Command{
	Use:   "reorder NAME...",
	Short: "Put the named projects in the given order, ahead of the rest",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		projects, err := client.Projects(ctx, cfg.Team)
		if err != nil {
			return err
		}
		targets := make([]string, len(args))
		for i, a := range args {
			targets[i] = cfg.Resolve(a)
		}
		assignments, err := order.ReorderAll(projectOrderItems(projects), targets)
		if err != nil {
			return err
		}
		err = applyAssignments(ctx, assignments, func(ctx context.Context, a order.Assignment) error {
			_, err := client.UpdateProject(ctx, a.ID, map[string]any{"sortOrder": a.Key})
			return err
		})
		if err != nil {
			return err
		}
		fmt.Printf("Reordered %d projects\n", len(assignments))
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringVarP(&projectCreateDescription, "description", "d", "", "project description")
	projectMoveCmd.Flags().StringVar(&projectMoveBefore, "before", "", "place ahead of this project")
	projectMoveCmd.Flags().StringVar(&projectMoveAfter, "after", "", "place behind this project")

	projectCmd.AddCommand(projectListCmd, projectCreateCmd, projectMoveCmd, projectReorderCmd)
}
