package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/ui/theme"
	"github.com/abhisek/bibletrack/internal/views"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage reading profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			e.svc.Read(func(st *state.State) {
				for _, id := range views.ProfilesSorted(st) {
					p := st.Profiles[id]
					mark := " "
					name := p.Name
					if id == st.Profile {
						mark = "*"
						name = theme.Active.Render(name)
					}
					progress := views.ProgressString(st, views.Progress(p))
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n", mark, id, name, theme.Hint.Render(progress))
				}
			})
			return nil
		})
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a profile and switch to it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			id, err := e.svc.AddProfile(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a profile and all its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			return e.svc.RemoveProfile(args[0])
		})
	},
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			return e.svc.SwitchProfile(args[0])
		})
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a profile",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			return e.svc.RenameProfile(args[0], strings.Join(args[1:], " "))
		})
	},
}

var profilePuzzleCmd = &cobra.Command{
	Use:   "puzzle <id>",
	Short: "Give a profile a different completion puzzle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			return e.svc.ChangePuzzle(args[0])
		})
	},
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profilePuzzleCmd)
}
