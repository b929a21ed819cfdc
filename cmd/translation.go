package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/refdata"
)

var translationCmd = &cobra.Command{
	Use:   "translation <version>",
	Short: "Switch the reading version used for book names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(e *engine) error {
			err := e.svc.ChangeReadingVersion(cmd.Context(), args[0])
			if errors.Is(err, refdata.ErrUnavailable) {
				return fmt.Errorf("reading version %s is not available offline or from the asset server", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reading version set to %s\n", args[0])
			return nil
		})
	},
}
