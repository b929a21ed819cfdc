package tracker

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/abhisek/bibletrack/internal/state"
)

// ToggleChapterRead flips the read flag of a chapter in the active profile.
// Marking a chapter read moves its book to the front of the recently
// progressed list, unless the book is already done, and completes the book
// once every chapter is read.
func (s *Service) ToggleChapterRead(book string, chapter int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolveBook(book)
	if err != nil {
		return err
	}
	if chapter < 1 || chapter > s.canon.Chapters(book) {
		return fmt.Errorf("%w: %s %d", ErrUnknownChapter, book, chapter)
	}
	p, err := s.active()
	if err != nil {
		return err
	}

	key := state.Path{"done_chapters", book, strconv.Itoa(chapter)}
	if p.DoneChapters[book][chapter] {
		return s.setProfile(key, false)
	}
	if err := s.setProfile(key, true); err != nil {
		return err
	}

	// A book already done this run stays out of the recent list.
	if !p.DoneBooks[book] {
		progressed := make([]string, 0, len(p.LastProgressed)+1)
		progressed = append(progressed, book)
		for _, b := range p.LastProgressed {
			if b != book {
				progressed = append(progressed, b)
			}
		}
		if err := s.setProfile(state.Path{"last_progressed"}, progressed); err != nil {
			return err
		}
	}

	return s.resolveAllReadChapters(book, false)
}

// ResolveAllReadChapters records a completion of book once all its chapters
// are read, or unconditionally when force is set. The chapter flags are
// cleared for the next read-through while the book stays done.
func (s *Service) ResolveAllReadChapters(book string, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolveBook(book)
	if err != nil {
		return err
	}
	return s.resolveAllReadChapters(book, force)
}

func (s *Service) resolveAllReadChapters(book string, force bool) error {
	p, err := s.active()
	if err != nil {
		return err
	}
	if !force {
		for _, done := range p.DoneChapters[book] {
			if !done {
				return nil
			}
		}
	}

	if err := s.setProfile(state.Path{"done_books", book}, true); err != nil {
		return err
	}
	if err := s.setProfile(state.Path{"completions_books", book}, p.CompletionsBooks[book]+1); err != nil {
		return err
	}
	if err := s.setProfile(state.Path{"last_completed"}, book); err != nil {
		return err
	}
	progressed := slices.DeleteFunc(slices.Clone(p.LastProgressed), func(b string) bool { return b == book })
	if progressed == nil {
		progressed = []string{}
	}
	if err := s.setProfile(state.Path{"last_progressed"}, progressed); err != nil {
		return err
	}
	if err := s.resetChapters(book); err != nil {
		return err
	}

	if s.st.Celebrations {
		s.celebrate.Celebrate(s.canon.Chapters(book))
	}
	return nil
}

// BulkCompleteBook completes book whether or not its chapters are read.
func (s *Service) BulkCompleteBook(book string) error {
	return s.ResolveAllReadChapters(book, true)
}

// BulkUnreadBook clears every chapter of book and its done flag.
func (s *Service) BulkUnreadBook(book string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolveBook(book)
	if err != nil {
		return err
	}
	if err := s.resetChapters(book); err != nil {
		return err
	}
	return s.setProfile(state.Path{"done_books", book}, false)
}

// ResetChapters marks every chapter of book unread.
func (s *Service) ResetChapters(book string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolveBook(book)
	if err != nil {
		return err
	}
	return s.resetChapters(book)
}

// resetChapters writes only the chapters that are currently read.
func (s *Service) resetChapters(book string) error {
	p, err := s.active()
	if err != nil {
		return err
	}
	for ch := 1; ch <= s.canon.Chapters(book); ch++ {
		if !p.DoneChapters[book][ch] {
			continue
		}
		if err := s.setProfile(state.Path{"done_chapters", book, strconv.Itoa(ch)}, false); err != nil {
			return err
		}
	}
	return nil
}

// DecreaseCompletionsForBook lowers the completion count of book, never
// below zero.
func (s *Service) DecreaseCompletionsForBook(book string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolveBook(book)
	if err != nil {
		return err
	}
	p, err := s.active()
	if err != nil {
		return err
	}
	return s.setProfile(state.Path{"completions_books", book}, max(p.CompletionsBooks[book]-1, 0))
}

// ResolveCheckAll completes every book of the active profile whose chapters
// are all read. It converges state left over from an interrupted session.
func (s *Service) ResolveCheckAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveCheckAll()
}

func (s *Service) resolveCheckAll() error {
	for _, book := range s.canon.IDs() {
		if err := s.resolveAllReadChapters(book, false); err != nil {
			return err
		}
	}
	return nil
}

// ConcludeBibleCompletion starts a new read-through after every book is done.
// The dismissed flag of the completion puzzle is cleared last so the
// completion is not reported again while the books are being reset.
func (s *Service) ConcludeBibleCompletion(resetChapters bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.active()
	if err != nil {
		return err
	}

	s.st.Tmp.RootSelectedTab = 0
	s.st.Tmp.PrevRoute = ""

	if err := s.setProfile(state.Path{"completions_bible"}, p.CompletionsBible+1); err != nil {
		return err
	}
	if err := s.setProfile(state.Path{"current_run_start"}, s.now()); err != nil {
		return err
	}
	if err := s.changePuzzle(s.st.Profile); err != nil {
		return err
	}
	if resetChapters {
		if err := s.setProfile(state.Path{"last_progressed"}, []string{}); err != nil {
			return err
		}
	}
	for _, book := range s.canon.IDs() {
		if err := s.setProfile(state.Path{"done_books", book}, false); err != nil {
			return err
		}
		if resetChapters {
			if err := s.resetChapters(book); err != nil {
				return err
			}
		}
	}
	return s.setProfile(state.Path{"completed_puzzle_dismissed"}, false)
}
