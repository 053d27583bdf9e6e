package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/config"
	"github.com/groblegark/linctl/internal/linear"
	"github.com/groblegark/linctl/internal/ui"
)

var loginKey string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and pick a default team",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(loginKey)
		if key == "" {
			if !ui.IsInteractive() {
				return fmt.Errorf("not a terminal; pass --key or set %s", config.EnvAPIKey)
			}
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Linear API key").
					Description("Create a personal API key under Settings > Security & access.").
					EchoMode(huh.EchoModePassword).
					Value(&key),
			))
			if err := form.Run(); err != nil {
				return err
			}
			key = strings.TrimSpace(key)
		}
		if key == "" {
			return fmt.Errorf("no API key given")
		}

		ctx := cmd.Context()
		client := linear.NewClient(key)
		viewer, err := client.Viewer(ctx)
		if err != nil {
			return fmt.Errorf("verifying API key: %w", err)
		}

		teams, err := client.Teams(ctx)
		if err != nil {
			return err
		}
		var teamKey string
		switch {
		case len(teams) == 0:
			return fmt.Errorf("the API key has access to no teams")
		case len(teams) == 1:
			teamKey = teams[0].Key
		case !ui.IsInteractive():
			teamKey = teams[0].Key
			warn("multiple teams visible, defaulting to %s; edit %s to change", teamKey, config.FileName)
		default:
			options := make([]huh.Option[string], len(teams))
			for i, t := range teams {
				options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.Key), t.Key)
			}
			form := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title("Default team").
					Options(options...).
					Value(&teamKey),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		_, global, err := config.Paths()
		if err != nil {
			return err
		}
		if err := config.SetScalar(global, "api_key", key); err != nil {
			return err
		}
		if err := config.SetScalar(global, "team", teamKey); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (team %s)\n", viewer.Name, teamKey)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, global, err := config.Paths()
		if err != nil {
			return err
		}
		if err := config.RemoveScalar(global, "api_key"); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api()
		if err != nil {
			return err
		}
		viewer, err := client.Viewer(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(viewer)
		}
		fmt.Printf("%s <%s>\n", viewer.Name, viewer.Email)
		fmt.Printf("Team: %s\n", cfg.Team)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginKey, "key", "", "API key (skips the prompt)")
}
