package views

import (
	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/state"
)

// BookSummary is the progress of one book of the active profile.
type BookSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Done        bool     `json:"done"`
	Completions int      `json:"completions"`
	Progress    Fraction `json:"progress"`
	Badge       string   `json:"badge"`
}

// ProfileSummary names one profile.
type ProfileSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Summary is everything a front end shows on its home screen.
type Summary struct {
	Profile          string           `json:"profile"`
	Initials         string           `json:"initials"`
	Profiles         []ProfileSummary `json:"profiles"`
	Progress         Fraction         `json:"progress"`
	Bible            string           `json:"bible"`
	OldTestament     string           `json:"old_testament"`
	NewTestament     string           `json:"new_testament"`
	CompletionsBible int              `json:"completions_bible"`
	Complete         bool             `json:"complete"`
	PuzzleDismissed  bool             `json:"puzzle_dismissed"`
	Puzzle           string           `json:"puzzle"`
	BibleVersion     string           `json:"bible_version"`
	Books            []BookSummary    `json:"books"`
}

// BookName returns the display name of a book in the loaded reading version,
// falling back to the canon's name.
func BookName(st *state.State, canon *bible.Canon, id string) string {
	if name, ok := st.Tmp.BookNames[id]; ok && name != "" {
		return name
	}
	b, _ := canon.Book(id)
	return b.Name
}

// Summarize builds the summary of the active profile.
func Summarize(st *state.State, canon *bible.Canon) Summary {
	p := st.Active()
	if p == nil {
		return Summary{Profile: st.Profile}
	}

	progress := Progress(p)
	testaments := TestamentProgress(st, canon, p)
	sum := Summary{
		Profile:          st.Profile,
		Initials:         ProfileInitials(st.Profiles, st.Profile),
		Progress:         progress,
		Bible:            ProgressString(st, progress),
		OldTestament:     testaments.Old,
		NewTestament:     testaments.New,
		CompletionsBible: p.CompletionsBible,
		Complete:         IsProfileComplete(p),
		PuzzleDismissed:  p.CompletedPuzzleDismissed,
		Puzzle:           p.Puzzle,
		BibleVersion:     st.BibleVersion,
	}
	for _, id := range ProfilesSorted(st) {
		sum.Profiles = append(sum.Profiles, ProfileSummary{
			ID:     id,
			Name:   st.Profiles[id].Name,
			Active: id == st.Profile,
		})
	}
	for _, b := range canon.Books() {
		sum.Books = append(sum.Books, BookSummary{
			ID:          b.ID,
			Name:        BookName(st, canon, b.ID),
			Done:        p.DoneBooks[b.ID],
			Completions: p.CompletionsBooks[b.ID],
			Progress:    BookProgress(p, b.ID),
			Badge:       BookBadge(st, p, b.ID),
		})
	}
	return sum
}
