package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/ui/theme"
	"github.com/abhisek/bibletrack/internal/views"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the share summary of the active profile and its image key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			var summary views.ShareSummary
			var ok bool
			e.svc.Read(func(st *state.State) {
				if p := st.Active(); p != nil {
					summary = views.Share(st, e.svc.Canon(), p)
					ok = true
				}
			})
			if !ok {
				return errors.New("no active profile")
			}
			body, err := summary.JSON()
			if err != nil {
				return err
			}
			key, err := summary.Key()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Card.Render(key))
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		})
	},
}
