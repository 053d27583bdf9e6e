package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/config"
	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/ui"
)

var (
	jsonOutput bool

	cfg *config.Config
)

// api returns a client for the remote service, failing before any
// network call when credentials are missing.
func api() (*linear.Client, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	return linear.NewClient(cfg.APIKey), nil
}

var rootCmd = &cobra.Command{
	Use:           "lin",
	Short:         "CLI client for the Linear issue tracker",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(milestoneCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(standupCmd)
}

func main() {
	ui.ConfigureColor()
	if err := rootCmd.Execute(); err != nil {
		// Single error boundary: one colored line on stderr, exit 1.
		fmt.Fprintln(os.Stderr, ui.FailStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
