package views

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abhisek/bibletrack/internal/state"
)

func stripSpace(s string) []rune {
	return []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

// ProfileInitials returns the shortest prefix of the active profile's name,
// one or two characters with whitespace removed, that tells it apart from
// other profiles whose names share its first character.
func ProfileInitials(profiles map[string]*state.Profile, activeID string) string {
	active, ok := profiles[activeID]
	if !ok {
		return ""
	}
	name := stripSpace(active.Name)
	if len(name) == 0 {
		return ""
	}
	if len(name) == 1 {
		return string(name[0])
	}
	for id, p := range profiles {
		if id == activeID {
			continue
		}
		if other := stripSpace(p.Name); len(other) > 0 && other[0] == name[0] {
			return string(name[:2])
		}
	}
	return string(name[0])
}

// ProfilesSorted returns profile ids ordered by name using the collation
// rules of the state's locale.
func ProfilesSorted(st *state.State) []string {
	tag, err := language.Parse(st.Locale)
	if err != nil {
		tag = language.English
	}
	c := collate.New(tag)

	ids := st.ProfileIDs()
	slices.SortStableFunc(ids, func(a, b string) int {
		return c.CompareString(st.Profiles[a].Name, st.Profiles[b].Name)
	})
	return ids
}
