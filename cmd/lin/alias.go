package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/linctl/internal/ui"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage short codes for projects and milestones",
	RunE:  runAliasList,
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured aliases",
	RunE:  runAliasList,
}

func runAliasList(cmd *cobra.Command, args []string) error {
	if jsonOutput {
		return printJSON(cfg.Aliases)
	}
	if len(cfg.Aliases) == 0 {
		fmt.Println("No aliases configured; try `lin alias set MOB \"Mobile App\"`")
		return nil
	}
	codes := make([]string, 0, len(cfg.Aliases))
	for code := range cfg.Aliases {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, code := range codes {
		fmt.Fprintf(w, "%s\t%s\n", ui.AccentStyle.Render(code), cfg.Aliases[code])
	}
	w.Flush()
	return nil
}

var aliasSetCmd = &cobra.Command{
	Use:   "set CODE NAME",
	Short: "Create or replace an alias",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		name := strings.Join(args[1:], " ")
		if err := cfg.SetAlias(code, name); err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%s)\n", strings.ToUpper(code), name, cfg.ActivePath())
		return nil
	},
}

var aliasRmCmd = &cobra.Command{
	Use:   "rm CODE",
	Short: "Remove an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveAlias(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", strings.ToUpper(args[0]))
		return nil
	},
}

func init() {
	aliasCmd.AddCommand(aliasListCmd, aliasSetCmd, aliasRmCmd)
}
