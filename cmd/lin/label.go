package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/ui"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Work with team labels",
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List team labels",
	RunE:  runLabelList,
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team labels",
	RunE:  runLabelList,
}

func runLabelList(cmd *cobra.Command, args []string) error {
	client, err := api()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	team, err := resolveTeam(ctx, client)
	if err != nil {
		return err
	}
	labels, err := client.Labels(ctx, team.ID)
	if err != nil {
		return err
	}
	return printLabelList(labels)
}

var labelColor string

var labelCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a team label",
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
		label, err := client.CreateLabel(ctx, team.ID, args[0], labelColor)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(label)
		}
		fmt.Printf("Created label %s\n", ui.AccentStyle.Render(label.Name))
		return nil
	},
}

func init() {
	labelCreateCmd.Flags().StringVar(&labelColor, "color", "", "hex color, e.g. #bb87fc")
	labelCmd.AddCommand(labelListCmd, labelCreateCmd)
}
