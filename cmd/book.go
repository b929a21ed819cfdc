package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/tracker"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Change a whole book at once",
}

// bookAction builds a subcommand that applies action to one book.
func bookAction(use, short, done string, action func(svc *tracker.Service, book string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <book>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(e *engine) error {
				if err := action(e.svc, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], done)
				return nil
			})
		},
	}
}

func init() {
	bookCmd.AddCommand(bookAction("complete", "Mark a book done without reading every chapter", "completed",
		(*tracker.Service).BulkCompleteBook))
	bookCmd.AddCommand(bookAction("unread", "Mark every chapter and the book unread", "marked unread",
		(*tracker.Service).BulkUnreadBook))
	bookCmd.AddCommand(bookAction("uncount", "Remove one completion of a book", "completion removed",
		(*tracker.Service).DecreaseCompletionsForBook))
	bookCmd.AddCommand(bookAction("reset", "Mark every chapter unread, keeping the book's done flag", "chapters reset",
		(*tracker.Service).ResetChapters))
}
