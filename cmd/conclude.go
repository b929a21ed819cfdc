package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/views"
)

var concludeCmd = &cobra.Command{
	Use:   "conclude",
	Short: "Record a full Bible completion and start a new read-through",
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset-chapters")
		force, _ := cmd.Flags().GetBool("force")
		return withEngine(cmd, func(e *engine) error {
			var complete bool
			e.svc.Read(func(st *state.State) {
				if p := st.Active(); p != nil {
					complete = views.IsProfileComplete(p)
				}
			})
			if !complete && !force {
				return fmt.Errorf("not every book is done yet (use --force to conclude anyway)")
			}
			if err := e.svc.ConcludeBibleCompletion(reset); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "New read-through started")
			return nil
		})
	},
}

func init() {
	concludeCmd.Flags().Bool("reset-chapters", false, "Also mark every chapter unread")
	concludeCmd.Flags().Bool("force", false, "Conclude even when some books are not done")
}
