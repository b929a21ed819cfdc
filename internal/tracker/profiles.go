package tracker

import (
	"fmt"
	"strings"

	"github.com/abhisek/bibletrack/internal/state"
)

// AddProfile creates a profile with a fresh id and activates it. An empty
// name keeps the default profile name.
func (s *Service) AddProfile(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addProfile(name)
}

func (s *Service) addProfile(name string) (string, error) {
	id := s.newID()
	s.persist.PutProfileID(id)

	now := s.now()
	s.st.Profiles[id] = state.BlankProfile(s.canon, now)

	if err := s.set(state.ProfilePath(id, "puzzle"), s.puzzles.Random()); err != nil {
		return "", err
	}
	if name = strings.TrimSpace(name); name != "" {
		if err := s.set(state.ProfilePath(id, "name"), name); err != nil {
			return "", err
		}
	}
	if err := s.set(state.ProfilePath(id, "current_run_start"), now); err != nil {
		return "", err
	}
	if err := s.set(state.Path{"profile"}, id); err != nil {
		return "", err
	}
	return id, nil
}

// RemoveProfile deletes a profile from memory and from the durable store,
// including every value stored under it. The active profile moves to
// another profile only when the removed one was active.
func (s *Service) RemoveProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.Profiles[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	if len(s.st.Profiles) == 1 {
		return ErrLastProfile
	}

	delete(s.st.Profiles, id)
	if s.st.Profile == id {
		if err := s.set(state.Path{"profile"}, s.st.ProfileIDs()[0]); err != nil {
			return err
		}
	}

	s.persist.DeleteProfileID(id)
	s.persist.DeleteDictPrefix(state.ProfileKeyPrefix(id))
	return nil
}

// SwitchProfile activates an existing profile.
func (s *Service) SwitchProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.Profiles[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return s.set(state.Path{"profile"}, id)
}

// RenameProfile changes the display name of a profile.
func (s *Service) RenameProfile(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.Profiles[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.set(state.ProfilePath(id, "name"), name)
}

// ChangePuzzle gives a profile a new puzzle, never the one it has now.
func (s *Service) ChangePuzzle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changePuzzle(id)
}

func (s *Service) changePuzzle(id string) error {
	p, ok := s.st.Profiles[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return s.set(state.ProfilePath(id, "puzzle"), s.puzzles.Next(p.Puzzle))
}

// DismissCompletedPuzzle records that the completion reward was seen.
func (s *Service) DismissCompletedPuzzle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.active(); err != nil {
		return err
	}
	return s.setProfile(state.Path{"completed_puzzle_dismissed"}, true)
}
