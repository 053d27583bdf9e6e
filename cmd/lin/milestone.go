package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/order"
	"github.com/groblegark/linctl/internal/ui"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Work with project milestones",
}

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "List milestones of a project",
	RunE:  runMilestoneList,
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones of a project",
	RunE:  runMilestoneList,
}

// milestoneProject scopes every milestone command to one project,
// falling back to default_project from the config.
var milestoneProject string

// scopedProject resolves the --project flag or the configured default.
func scopedProject(cmd *cobra.Command) (*linear.Project, error) {
	client, err := api()
	if err != nil {
		return nil, err
	}
	name := milestoneProject
	if name == "" {
		name = cfg.DefaultProject
	}
	if name == "" {
		return nil, fmt.Errorf("no project given; pass --project or set default_project")
	}
	return resolveProject(cmd.Context(), client, name)
}

func runMilestoneList(cmd *cobra.Command, args []string) error {
	project, err := scopedProject(cmd)
	if err != nil {
		return err
	}
	client, err := api()
	if err != nil {
		return err
	}
	milestones, err := client.Milestones(cmd.Context(), project.ID)
	if err != nil {
		return err
	}
	return printMilestoneList(milestones)
}

var milestoneTargetDate string

var milestoneCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a milestone in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := scopedProject(cmd)
		if err != nil {
			return err
		}
		client, err := api()
		if err != nil {
			return err
		}
		milestone, err := client.CreateMilestone(cmd.Context(), project.ID, args[0], milestoneTargetDate)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(milestone)
		}
		fmt.Printf("Created milestone %s in %s\n",
			ui.AccentStyle.Render(milestone.Name), project.Name)
		return nil
	},
}

var (
	milestoneMoveBefore string
	milestoneMoveAfter  string
)

var milestoneMoveCmd = &cobra.Command{
	Use:   "move NAME (--before ANCHOR | --after ANCHOR)",
	Short: "Move a milestone next to another in its project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := scopedProject(cmd)
		if err != nil {
			return err
		}
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		dir, anchor, err := directionFromFlags(milestoneMoveBefore, milestoneMoveAfter)
		if err != nil {
			return err
		}
		milestones, err := client.Milestones(ctx, project.ID)
		if err != nil {
			return err
		}
		a, err := order.MoveOne(milestoneOrderItems(milestones), cfg.Resolve(args[0]), cfg.Resolve(anchor), dir)
		if err != nil {
			return err
		}
		if _, err := client.UpdateMilestone(ctx, a.ID, map[string]any{"sortOrder": a.Key}); err != nil {
			return err
		}
		fmt.Printf("Moved %s\n", a.Name)
		return nil
	},
}

var milestoneReorderCmd = &cobra.Command{
	Use:   "reorder NAME...",
	Short: "Put the named milestones in the given order, ahead of the rest",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := scopedProject(cmd)
		if err != nil {
			return err
		}
		client, err := api()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		milestones, err := client.Milestones(ctx, project.ID)
		if err != nil {
			return err
		}
		targets := make([]string, len(args))
		for i, a := range args {
			targets[i] = cfg.Resolve(a)
		}
		assignments, err := order.ReorderAll(milestoneOrderItems(milestones), targets)
		if err != nil {
			return err
		}
		err = applyAssignments(ctx, assignments, func(ctx context.Context, a order.Assignment) error {
			_, err := client.UpdateMilestone(ctx, a.ID, map[string]any{"sortOrder": a.Key})
			return err
		})
		if err != nil {
			return err
		}
		fmt.Printf("Reordered %d milestones\n", len(assignments))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{
		milestonesCmd, milestoneListCmd, milestoneCreateCmd, milestoneMoveCmd, milestoneReorderCmd,
	} {
		cmd.Flags().StringVarP(&milestoneProject, "project", "p", "", "project name or alias")
	}
	milestoneCreateCmd.Flags().StringVar(&milestoneTargetDate, "target", "", "target date (YYYY-MM-DD)")
	milestoneMoveCmd.Flags().StringVar(&milestoneMoveBefore, "before", "", "place ahead of this milestone")
	milestoneMoveCmd.Flags().StringVar(&milestoneMoveAfter, "after", "", "place behind this milestone")

	milestoneCmd.AddCommand(milestoneListCmd, milestoneCreateCmd, milestoneMoveCmd, milestoneReorderCmd)
}
