package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/ui/theme"
)

var readCmd = &cobra.Command{
	Use:   "read <book> <chapter>",
	Short: "Toggle whether a chapter is read",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("chapter must be a number: %q", args[1])
		}
		return withEngine(cmd, func(e *engine) error {
			book, ok := e.svc.Canon().Resolve(args[0])
			if !ok {
				book = args[0]
			}
			var wasRead, read bool
			e.svc.Read(func(st *state.State) {
				if p := st.Active(); p != nil {
					wasRead = p.DoneChapters[book][chapter]
				}
			})
			if err := e.svc.ToggleChapterRead(book, chapter); err != nil {
				return err
			}
			e.svc.Read(func(st *state.State) { read = st.Active().DoneChapters[book][chapter] })

			out := cmd.OutOrStdout()
			switch {
			case wasRead:
				fmt.Fprintf(out, "%s %d marked unread\n", book, chapter)
			case read:
				fmt.Fprintf(out, "%s %d marked read\n", book, chapter)
			default:
				fmt.Fprintln(out, theme.Done.Render(book+" completed"))
			}
			return nil
		})
	},
}
