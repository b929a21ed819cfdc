package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/bibletrack/internal/nested"
	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/store"
)

// Source reads the durable records a Service is rebuilt from.
type Source interface {
	ListProfileIDs(ctx context.Context) ([]string, error)
	ListDict(ctx context.Context) ([]store.DictItem, error)
}

// Build reconstructs the state from src and returns a ready Service.
//
// Stored values are replayed over the defaults one key at a time. Keys that
// no longer address a field are logged and skipped. An active profile
// pointer left dangling by another instance is repaired, and the reference
// data of the reading version must load before Build returns.
func Build(ctx context.Context, src Source, deps Deps) (*Service, error) {
	if err := deps.defaults(); err != nil {
		return nil, err
	}

	ids, err := src.ListProfileIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profile ids: %w", err)
	}
	st := state.New(deps.Canon, ids, deps.Now())

	items, err := src.ListDict(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored values: %w", err)
	}

	s, err := newService(st, deps)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[string]bool, len(items))
	for _, item := range items {
		stored[item.Key] = true
	}
	for _, item := range items {
		s.replay(item, stored)
	}

	if err := s.repair(); err != nil {
		return nil, fmt.Errorf("repair active profile: %w", err)
	}

	data, err := s.ref.Load(ctx, st.BibleVersion)
	if err != nil {
		return nil, fmt.Errorf("load reading version %q: %w", st.BibleVersion, err)
	}
	st.Tmp.BookNames = data.BookNames
	st.Tmp.ChapterTitles = data.ChapterTitles

	if err := s.resolveCheckAll(); err != nil {
		return nil, err
	}
	return s, nil
}

// replay applies one stored value. Values are never logged. A legacy book
// key is dropped when its current key is stored too.
func (s *Service) replay(item store.DictItem, stored map[string]bool) {
	path := state.ParseKey(item.Key)
	if renamed, ok := s.renameLegacyBook(path); ok {
		if stored[renamed.Key()] {
			s.log.Info("dropped superseded legacy book key", "key", item.Key)
			s.persist.DeleteDict(item.Key)
			return
		}
		if err := state.Apply(s.st, renamed, item.Value); err == nil {
			s.log.Info("migrated legacy book key", "key", item.Key, "to", renamed.Key())
			s.persist.PutDict(renamed.Key(), item.Value)
			s.persist.DeleteDict(item.Key)
			return
		}
	}

	err := state.Apply(s.st, path, item.Value)
	var valueErr *nested.ValueError
	switch {
	case err == nil:
	case nested.IsKeyMissing(err):
		s.log.Warn("obsolete key detected", "key", item.Key)
	case errors.As(err, &valueErr):
		s.log.Warn("unreadable stored value", "key", item.Key)
	default:
		s.log.Warn("stored value skipped", "key", item.Key, "error", err)
	}
}

// renameLegacyBook maps a profile key that names a book by a retired id to
// the current id.
func (s *Service) renameLegacyBook(path state.Path) (state.Path, bool) {
	if len(path) < 4 || path[0] != "profiles" {
		return nil, false
	}
	switch path[2] {
	case "completions_books", "done_books", "done_chapters":
	default:
		return nil, false
	}
	if s.canon.Has(path[3]) {
		return nil, false
	}
	id, ok := s.canon.Resolve(path[3])
	if !ok {
		return nil, false
	}
	renamed := append(state.Path(nil), path...)
	renamed[3] = id
	return renamed, true
}

func (s *Service) repair() error {
	plan := state.PlanRepair(s.st.Profile, s.st.ProfileIDs())
	switch plan.Action {
	case state.RepairCreate:
		id, err := s.addProfile("")
		if err != nil {
			return err
		}
		s.log.Info("created profile", "profile", id)
	case state.RepairReassign:
		s.log.Warn("active profile missing, reassigning", "profile", plan.ProfileID)
		return s.set(state.Path{"profile"}, plan.ProfileID)
	}
	return nil
}
