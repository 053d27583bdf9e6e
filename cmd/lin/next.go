package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/graph"
	"github.com/groblegark/linctl/internal/linear"
)

var (
	nextPick  bool
	nextLimit int
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the best unblocked issue to pick up",
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
		ready := graph.Unblocked(issues)
		graph.SortForDisplay(ready, viewer.ID)
		if len(ready) == 0 {
			fmt.Println("Nothing is unblocked right now.")
			return nil
		}

		limit := nextLimit
		if limit < 1 {
			limit = 1
		}
		if nextPick && !cmd.Flags().Changed("limit") {
			limit = 10
		}
		if limit > len(ready) {
			limit = len(ready)
		}

		if nextPick {
			options := make([]huh.Option[string], limit)
			for i, is := range ready[:limit] {
				label := fmt.Sprintf("%s  %s (%s)", is.Identifier, is.Title, linear.PriorityLabel(is.Priority))
				options[i] = huh.NewOption(label, is.Identifier)
			}
			var picked string
			form := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title("Pick an issue to start").
					Options(options...).
					Value(&picked),
			))
			if err := form.Run(); err != nil {
				return err
			}
			return issueStartCmd.RunE(cmd, []string{picked})
		}

		if limit > 1 {
			return printIssueList(ready[:limit])
		}
		return printIssue(&ready[0])
	},
}

func init() {
	nextCmd.Flags().BoolVar(&nextPick, "pick", false, "choose interactively and start it")
	nextCmd.Flags().IntVarP(&nextLimit, "limit", "n", 1, "how many candidates to show")
}
