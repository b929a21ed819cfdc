package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/ui/components"
	"github.com/abhisek/bibletrack/internal/ui/theme"
	"github.com/abhisek/bibletrack/internal/views"
)

const barWidth = 60

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show reading progress of the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		books, _ := cmd.Flags().GetBool("books")
		return runStatus(cmd, books)
	},
}

func init() {
	statusCmd.Flags().Bool("books", false, "List every book")
}

func runStatus(cmd *cobra.Command, books bool) error {
	return withEngine(cmd, func(e *engine) error {
		var sum views.Summary
		var dark bool
		e.svc.Read(func(st *state.State) {
			sum = views.Summarize(st, e.svc.Canon())
			dark = st.Dark
		})
		printSummary(cmd.OutOrStdout(), sum, dark, books)
		return nil
	})
}

func printSummary(w io.Writer, sum views.Summary, dark, books bool) {
	body := theme.Body(dark)

	name := sum.Profile
	for _, p := range sum.Profiles {
		if p.Active {
			name = p.Name
		}
	}
	fmt.Fprintf(w, "%s %s  %s\n", theme.Title.Render(name), theme.Subtitle.Render("("+sum.Initials+")"),
		theme.Hint.Render(sum.BibleVersion))
	fmt.Fprintln(w)

	fmt.Fprintln(w, components.NewProgressBar("Bible        ", sum.Progress.Read, sum.Progress.Total, sum.Bible, barWidth).View())
	fmt.Fprintln(w, body.Render(fmt.Sprintf("Old Testament %s   New Testament %s", sum.OldTestament, sum.NewTestament)))
	if sum.CompletionsBible > 0 {
		fmt.Fprintln(w, theme.Done.Render(fmt.Sprintf("Bible completed ×%d", sum.CompletionsBible)))
	}
	if sum.Complete && !sum.PuzzleDismissed {
		fmt.Fprintln(w, theme.Active.Render("Every book is done! Run `bibletrack conclude` to start a new read-through."))
	}

	if !books {
		return
	}
	fmt.Fprintln(w)
	for _, b := range sum.Books {
		mark := " "
		if b.Done {
			mark = theme.Done.Render("✓")
		}
		fmt.Fprintf(w, "%s %-6s %-22s %s\n", mark, b.ID, body.Render(b.Name), theme.Hint.Render(b.Badge))
	}
}
