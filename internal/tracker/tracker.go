// Package tracker owns the running application state. Every change goes
// through a Service, which applies it in memory and queues the durable write.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/celebrate"
	"github.com/abhisek/bibletrack/internal/puzzle"
	"github.com/abhisek/bibletrack/internal/refdata"
	"github.com/abhisek/bibletrack/internal/state"
)

var (
	ErrUnknownBook       = errors.New("unknown book")
	ErrUnknownChapter    = errors.New("unknown chapter")
	ErrUnknownProfile    = errors.New("unknown profile")
	ErrLastProfile       = errors.New("cannot remove the last profile")
	ErrEmptyName         = errors.New("profile name is empty")
	ErrUnknownPreference = errors.New("unknown preference")
)

// Persister queues durable writes. Calls must not block on the disk.
type Persister interface {
	PutDict(key string, value json.RawMessage)
	DeleteDict(key string)
	DeleteDictPrefix(prefix string)
	PutProfileID(id string)
	DeleteProfileID(id string)
}

// Deps are the collaborators of a Service. Canon and Persister are required.
type Deps struct {
	Canon      *bible.Canon
	Persister  Persister
	Reference  refdata.Provider
	Celebrator celebrate.Celebrator
	Puzzles    *puzzle.Picker
	Logger     hclog.Logger
	// NewID generates profile ids. Defaults to random UUIDs.
	NewID func() string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d *Deps) defaults() error {
	if d.Canon == nil {
		return errors.New("tracker: canon is required")
	}
	if d.Persister == nil {
		return errors.New("tracker: persister is required")
	}
	if d.Reference == nil {
		d.Reference = refdata.CanonProvider{Canon: d.Canon}
	}
	if d.Celebrator == nil {
		d.Celebrator = celebrate.Nop{}
	}
	if d.Puzzles == nil {
		d.Puzzles = puzzle.NewPicker(puzzle.DefaultPoolSize, nil)
	}
	if d.Logger == nil {
		d.Logger = hclog.NewNullLogger()
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return nil
}

// Service is the single pathway for state changes. Its methods are safe for
// concurrent use and never interleave.
type Service struct {
	mu sync.Mutex
	st *state.State

	canon     *bible.Canon
	persist   Persister
	ref       refdata.Provider
	celebrate celebrate.Celebrator
	puzzles   *puzzle.Picker
	log       hclog.Logger
	newID     func() string
	now       func() time.Time
}

func newService(st *state.State, deps Deps) (*Service, error) {
	if err := deps.defaults(); err != nil {
		return nil, err
	}
	return &Service{
		st:        st,
		canon:     deps.Canon,
		persist:   deps.Persister,
		ref:       deps.Reference,
		celebrate: deps.Celebrator,
		puzzles:   deps.Puzzles,
		log:       deps.Logger,
		newID:     deps.NewID,
		now:       deps.Now,
	}, nil
}

// Canon returns the book list the service tracks.
func (s *Service) Canon() *bible.Canon {
	return s.canon
}

// Read calls fn with the current state. fn must not retain or modify it.
func (s *Service) Read(fn func(st *state.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// set writes value at path in memory and queues the durable write.
func (s *Service) set(path state.Path, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path.Key(), err)
	}
	return s.setRaw(path, raw)
}

func (s *Service) setRaw(path state.Path, raw json.RawMessage) error {
	if err := state.Apply(s.st, path, raw); err != nil {
		return fmt.Errorf("set %s: %w", path.Key(), err)
	}
	s.persist.PutDict(path.Key(), raw)
	return nil
}

// setProfile is set within the active profile.
func (s *Service) setProfile(keys state.Path, value any) error {
	return s.set(state.ProfilePath(s.st.Profile, keys...), value)
}

func (s *Service) active() (*state.Profile, error) {
	p := s.st.Active()
	if p == nil {
		return nil, fmt.Errorf("%w: %q is active", ErrUnknownProfile, s.st.Profile)
	}
	return p, nil
}

func (s *Service) resolveBook(book string) (string, error) {
	id, ok := s.canon.Resolve(book)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBook, book)
	}
	return id, nil
}
