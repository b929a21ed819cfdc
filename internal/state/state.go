// Package state defines the application state tree: preferences, session
// flags, and per-profile reading progress.
//
// The json names of exported fields are the path segments used to address
// them, both for live mutation and for replaying the durable store. Tmp is
// excluded from addressing so it can never be persisted.
package state

import (
	"time"

	"github.com/abhisek/bibletrack/internal/bible"
)

// DefaultProfileName names the profile created on first launch.
const DefaultProfileName = "Personal reading"

// PlaceholderPuzzle is the puzzle of a blank profile until one is assigned.
const PlaceholderPuzzle = "000"

// Profile is one reading-tracking identity.
type Profile struct {
	Name                     string                  `json:"name"`
	Puzzle                   string                  `json:"puzzle"`
	CompletedPuzzleDismissed bool                    `json:"completed_puzzle_dismissed"`
	LastCompleted            string                  `json:"last_completed"`
	LastProgressed           []string                `json:"last_progressed"`
	CurrentRunStart          time.Time               `json:"current_run_start"`
	CompletionsBible         int                     `json:"completions_bible"`
	CompletionsBooks         map[string]int          `json:"completions_books"`
	DoneBooks                map[string]bool         `json:"done_books"`
	DoneChapters             map[string]map[int]bool `json:"done_chapters"`
}

// Tmp holds per-session scratch values that are rebuilt on every start.
type Tmp struct {
	RootSelectedTab int
	BookNames       map[string]string
	ChapterTitles   map[string]map[int]string
	PrevRoute       string
}

// State is the whole application state of one running instance.
type State struct {
	// Preferences.
	Dark          bool   `json:"dark"`
	Percentages   bool   `json:"percentages"`
	Celebrations  bool   `json:"celebrations"`
	BookGroups    bool   `json:"book_groups"`
	Locale        string `json:"locale"`
	BibleVersion  string `json:"bible_version"`
	ShareLastRead bool   `json:"share_last_read"`

	// Session flags.
	ShowSplashWelcome       bool   `json:"show_splash_welcome"`
	ShowSplashWelcomeInit   bool   `json:"show_splash_welcome_init"`
	ShowSplashInstallAverse bool   `json:"show_splash_install_averse"`
	ShowInstallBanner       bool   `json:"show_install_banner"`
	ShowChapterIntro        bool   `json:"show_chapter_intro"`
	LastURL                 string `json:"last_url"`
	OfflineOpens            int    `json:"offline_opens"`

	// Profile is the id of the active profile, empty when none is set.
	Profile  string              `json:"profile"`
	Profiles map[string]*Profile `json:"profiles"`

	Tmp Tmp `json:"-"`
}

// BlankProfile returns a profile with no progress for every book of canon.
func BlankProfile(canon *bible.Canon, now time.Time) *Profile {
	p := &Profile{
		Name:             DefaultProfileName,
		Puzzle:           PlaceholderPuzzle,
		LastProgressed:   []string{},
		CurrentRunStart:  now,
		CompletionsBooks: make(map[string]int),
		DoneBooks:        make(map[string]bool),
		DoneChapters:     make(map[string]map[int]bool),
	}
	for _, b := range canon.Books() {
		p.CompletionsBooks[b.ID] = 0
		p.DoneBooks[b.ID] = false
		chapters := make(map[int]bool, b.Chapters)
		for ch := 1; ch <= b.Chapters; ch++ {
			chapters[ch] = false
		}
		p.DoneChapters[b.ID] = chapters
	}
	return p
}

// New returns the default state with a blank profile for each id.
func New(canon *bible.Canon, profileIDs []string, now time.Time) *State {
	profiles := make(map[string]*Profile, len(profileIDs))
	for _, id := range profileIDs {
		profiles[id] = BlankProfile(canon, now)
	}
	return &State{
		Dark:          true,
		Percentages:   true,
		Celebrations:  true,
		BookGroups:    true,
		Locale:        "en",
		BibleVersion:  "NIV",
		ShareLastRead: true,

		ShowSplashWelcome:     true,
		ShowSplashWelcomeInit: true,
		ShowInstallBanner:     true,
		ShowChapterIntro:      true,
		LastURL:               "/",

		Profiles: profiles,
	}
}

// Active returns the active profile, or nil if the pointer is dangling.
func (s *State) Active() *Profile {
	return s.Profiles[s.Profile]
}
