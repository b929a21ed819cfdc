package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/abhisek/bibletrack/internal/nested"
	"github.com/abhisek/bibletrack/internal/state"
)

type valueKind int

const (
	kindBool valueKind = iota
	kindString
)

// Preferences are the user-editable settings. The reading version is
// changed with ChangeReadingVersion instead.
var Preferences = map[string]valueKind{
	"dark":            kindBool,
	"percentages":     kindBool,
	"celebrations":    kindBool,
	"book_groups":     kindBool,
	"locale":          kindString,
	"share_last_read": kindBool,
}

// PrivateFields are the session flags kept for the front end.
var PrivateFields = map[string]valueKind{
	"show_splash_welcome":        kindBool,
	"show_splash_welcome_init":   kindBool,
	"show_splash_install_averse": kindBool,
	"show_install_banner":        kindBool,
	"show_chapter_intro":         kindBool,
	"last_url":                   kindString,
}

// ParseValue converts command line text for a preference or private field
// into its stored JSON form.
func ParseValue(name, text string) (json.RawMessage, error) {
	kind, ok := Preferences[name]
	if !ok {
		kind, ok = PrivateFields[name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreference, name)
	}
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false: %w", name, err)
		}
		return json.Marshal(b)
	default:
		return json.Marshal(text)
	}
}

// SetPreference stores a preference. raw must decode into the preference's
// type. Locales are normalized to their BCP 47 form.
func (s *Service) SetPreference(name string, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := Preferences[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreference, name)
	}
	if name == "locale" {
		var locale string
		if err := json.Unmarshal(raw, &locale); err != nil {
			return &nested.ValueError{Key: "locale", Err: err}
		}
		tag, err := language.Parse(strings.TrimSpace(locale))
		if err != nil {
			return &nested.ValueError{Key: "locale", Err: err}
		}
		return s.set(state.Path{"locale"}, tag.String())
	}
	return s.setRaw(state.Path{name}, raw)
}

// SetPrivate stores a session flag.
func (s *Service) SetPrivate(name string, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := PrivateFields[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreference, name)
	}
	return s.setRaw(state.Path{name}, raw)
}

// RecordOfflineOpen counts a start without network access.
func (s *Service) RecordOfflineOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(state.Path{"offline_opens"}, s.st.OfflineOpens+1)
}

// SetSelectedTab remembers the selected tab for this session only.
func (s *Service) SetSelectedTab(tab int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Tmp.RootSelectedTab = tab
}

// ChangeReadingVersion switches the reading version and its display names.
// When the version's data cannot be loaded nothing changes.
func (s *Service) ChangeReadingVersion(ctx context.Context, version string) error {
	version = strings.TrimSpace(version)
	data, err := s.ref.Load(ctx, version)
	if err != nil {
		return fmt.Errorf("load reading version %q: %w", version, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.set(state.Path{"bible_version"}, version); err != nil {
		return err
	}
	s.st.Tmp.BookNames = data.BookNames
	s.st.Tmp.ChapterTitles = data.ChapterTitles
	return nil
}
