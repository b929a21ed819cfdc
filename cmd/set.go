package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/tracker"
)

var setCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change a preference",
	Long: fmt.Sprintf("Change a preference. Preferences: %v. Session flags: %v.",
		sortedNames(tracker.Preferences), sortedNames(tracker.PrivateFields)),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		raw, err := tracker.ParseValue(name, args[1])
		if err != nil {
			return err
		}
		return withEngine(cmd, func(e *engine) error {
			if _, ok := tracker.PrivateFields[name]; ok {
				return e.svc.SetPrivate(name, raw)
			}
			return e.svc.SetPreference(name, raw)
		})
	},
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
