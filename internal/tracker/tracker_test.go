package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/celebrate"
	"github.com/abhisek/bibletrack/internal/puzzle"
	"github.com/abhisek/bibletrack/internal/refdata"
	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/store"
)

// testCanon uses real ids so legacy id mapping applies.
var testCanon = bible.MustCanon([]bible.Book{
	{ID: "gen", Name: "Genesis", Chapters: 3},
	{ID: "exo", Name: "Exodus", Chapters: 2},
	{ID: "mat", Name: "Matthew", Chapters: 1},
}, 2)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type op struct {
	kind  string
	key   string
	value string
}

// recorder is a Persister that keeps every queued write.
type recorder struct {
	ops []op
}

func (r *recorder) PutDict(key string, value json.RawMessage) {
	r.ops = append(r.ops, op{"put", key, string(value)})
}
func (r *recorder) DeleteDict(key string)          { r.ops = append(r.ops, op{"delete", key, ""}) }
func (r *recorder) DeleteDictPrefix(prefix string) { r.ops = append(r.ops, op{"delete_prefix", prefix, ""}) }
func (r *recorder) PutProfileID(id string)         { r.ops = append(r.ops, op{"put_id", id, ""}) }
func (r *recorder) DeleteProfileID(id string)      { r.ops = append(r.ops, op{"delete_id", id, ""}) }

func (r *recorder) reset() { r.ops = nil }

// source is a fixed Source.
type source struct {
	ids   []string
	items []store.DictItem
}

func (s source) ListProfileIDs(context.Context) ([]string, error) { return s.ids, nil }
func (s source) ListDict(context.Context) ([]store.DictItem, error) {
	return s.items, nil
}

func item(key, value string) store.DictItem {
	return store.DictItem{Key: key, Value: json.RawMessage(value)}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

type celebrations struct {
	got []int
}

func (c *celebrations) Celebrate(n int) { c.got = append(c.got, n) }

var _ celebrate.Celebrator = (*celebrations)(nil)

func testDeps(p Persister) Deps {
	return Deps{
		Canon:     testCanon,
		Persister: p,
		Reference: refdata.CanonProvider{Canon: testCanon},
		Puzzles:   puzzle.NewPicker(puzzle.DefaultPoolSize, nil),
		NewID:     sequentialIDs(),
		Now:       func() time.Time { return testNow },
	}
}

// newTestService builds a service over an empty source with one profile, p1.
func newTestService(t *testing.T) (*Service, *recorder, *celebrations) {
	t.Helper()
	rec := &recorder{}
	cel := &celebrations{}
	deps := testDeps(rec)
	deps.Celebrator = cel
	s, err := Build(context.Background(), source{}, deps)
	require.NoError(t, err)
	rec.reset()
	return s, rec, cel
}

// openStore returns an in-memory store and a writer over it.
func openStore(t *testing.T) (*store.Store, *store.Writer) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	w := store.NewWriter(st, nil, 0)
	t.Cleanup(func() {
		w.Close()
		st.Close()
	})
	return st, w
}

func profile(t *testing.T, s *Service) *state.Profile {
	t.Helper()
	var p *state.Profile
	s.Read(func(st *state.State) { p = st.Active() })
	require.NotNil(t, p)
	return p
}

func lastOp(r *recorder) op {
	return r.ops[len(r.ops)-1]
}
