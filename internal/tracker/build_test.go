package tracker

import (
	"bytes"
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/refdata"
	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/store"
)

func TestBuildFirstLaunchCreatesProfile(t *testing.T) {
	ctx := context.Background()
	st, w := openStore(t)

	deps := testDeps(w)
	deps.Canon = bible.Standard()
	deps.Reference = refdata.CanonProvider{Canon: deps.Canon}
	s, err := Build(ctx, st, deps)
	require.NoError(t, err)
	require.NoError(t, w.Flush(ctx))

	s.Read(func(cur *state.State) {
		assert.Equal(t, "p1", cur.Profile)
		require.Len(t, cur.Profiles, 1)
		p := cur.Active()
		assert.Equal(t, state.DefaultProfileName, p.Name)
		assert.Equal(t, testNow, p.CurrentRunStart)
		for _, b := range bible.Standard().Books() {
			assert.False(t, p.DoneBooks[b.ID], b.ID)
			for ch := 1; ch <= b.Chapters; ch++ {
				assert.False(t, p.DoneChapters[b.ID][ch], "%s %d", b.ID, ch)
			}
		}
		assert.Equal(t, "Genesis", cur.Tmp.BookNames["gen"])
	})

	ids, err := st.ListProfileIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)

	items, err := st.ListDict(ctx)
	require.NoError(t, err)
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	assert.Contains(t, keys, "profile")
	assert.Contains(t, keys, "profiles$p1$puzzle")
	assert.Contains(t, keys, "profiles$p1$current_run_start")
}

func TestBuildRestartRestoresState(t *testing.T) {
	ctx := context.Background()
	st, w := openStore(t)

	s, err := Build(ctx, st, testDeps(w))
	require.NoError(t, err)
	require.NoError(t, s.ToggleChapterRead("gen", 2))
	require.NoError(t, s.SetPreference("dark", []byte("false")))
	require.NoError(t, w.Flush(ctx))

	again, err := Build(ctx, st, testDeps(w))
	require.NoError(t, err)
	again.Read(func(cur *state.State) {
		assert.Equal(t, "p1", cur.Profile)
		assert.False(t, cur.Dark)
		p := cur.Active()
		assert.True(t, p.DoneChapters["gen"][2])
		assert.Equal(t, []string{"gen"}, p.LastProgressed)
	})
}

func TestBuildSkipsObsoleteKeys(t *testing.T) {
	var logs bytes.Buffer
	rec := &recorder{}
	deps := testDeps(rec)
	deps.Logger = hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Debug})

	src := source{
		ids: []string{"p1"},
		items: []store.DictItem{
			item("profile", `"p1"`),
			item("show_verse_numbers", `false`),
			item("profiles$gone$name", `"Secret Reader"`),
			item("profiles$p1$done_books$xyz", `true`),
			item("profiles$p1$name", `"Anna"`),
			item("percentages", `"not a bool"`),
		},
	}
	s, err := Build(context.Background(), src, deps)
	require.NoError(t, err)

	s.Read(func(cur *state.State) {
		assert.Equal(t, "p1", cur.Profile)
		assert.Equal(t, "Anna", cur.Active().Name)
		assert.True(t, cur.Percentages)
		assert.True(t, cur.Dark)
		assert.Equal(t, "NIV", cur.BibleVersion)
		assert.Len(t, cur.Active().DoneBooks, 3)
	})

	out := logs.String()
	assert.Contains(t, out, "obsolete key detected")
	assert.Contains(t, out, "show_verse_numbers")
	assert.Contains(t, out, "profiles$gone$name")
	assert.Contains(t, out, "profiles$p1$done_books$xyz")
	assert.Contains(t, out, "unreadable stored value")
	assert.NotContains(t, out, "Secret Reader")
	assert.NotContains(t, out, "not a bool")
}

func TestBuildReassignsMissingActiveProfile(t *testing.T) {
	rec := &recorder{}
	src := source{
		ids:   []string{"p3", "p2"},
		items: []store.DictItem{item("profile", `"deleted-elsewhere"`)},
	}
	s, err := Build(context.Background(), src, testDeps(rec))
	require.NoError(t, err)

	s.Read(func(cur *state.State) {
		assert.Equal(t, "p2", cur.Profile)
		assert.Contains(t, cur.Profiles, cur.Profile)
		assert.Len(t, cur.Profiles, 2)
	})
	assert.Contains(t, rec.ops, op{"put", "profile", `"p2"`})
}

func TestBuildCreatesProfileWhenNoneActive(t *testing.T) {
	rec := &recorder{}
	src := source{ids: []string{"old"}}
	s, err := Build(context.Background(), src, testDeps(rec))
	require.NoError(t, err)

	s.Read(func(cur *state.State) {
		assert.Equal(t, "p1", cur.Profile)
		assert.Len(t, cur.Profiles, 2)
	})
	assert.Equal(t, op{"put_id", "p1", ""}, rec.ops[0])
}

func TestBuildMigratesLegacyBookKeys(t *testing.T) {
	rec := &recorder{}
	src := source{
		ids: []string{"p1"},
		items: []store.DictItem{
			item("profile", `"p1"`),
			item("profiles$p1$completions_books$exod", `2`),
		},
	}
	s, err := Build(context.Background(), src, testDeps(rec))
	require.NoError(t, err)

	assert.Equal(t, 2, profile(t, s).CompletionsBooks["exo"])
	assert.Contains(t, rec.ops, op{"put", "profiles$p1$completions_books$exo", "2"})
	assert.Contains(t, rec.ops, op{"delete", "profiles$p1$completions_books$exod", ""})
}

func TestBuildPrefersCurrentBookKeyOverLegacy(t *testing.T) {
	rec := &recorder{}
	src := source{
		ids: []string{"p1"},
		items: []store.DictItem{
			item("profile", `"p1"`),
			item("profiles$p1$completions_books$exo", `1`),
			item("profiles$p1$completions_books$exod", `4`),
		},
	}
	s, err := Build(context.Background(), src, testDeps(rec))
	require.NoError(t, err)

	assert.Equal(t, 1, profile(t, s).CompletionsBooks["exo"])
	assert.Contains(t, rec.ops, op{"delete", "profiles$p1$completions_books$exod", ""})
	assert.NotContains(t, rec.ops, op{"put", "profiles$p1$completions_books$exo", "4"})
}

func TestBuildSkipsNullValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
	}{
		{"all profiles", "profiles", `null`},
		{"one profile", "profiles$a", `null`},
		{"chapters of a book", "profiles$a$done_chapters$gen", `null`},
		{"book inside chapters", "profiles$a$done_chapters", `{"gen": null, "exo": {"1": false, "2": false}, "mat": {"1": false}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := &recorder{}
			deps := testDeps(rec)
			deps.Logger = hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Debug})

			src := source{
				ids: []string{"a"},
				items: []store.DictItem{
					item("profile", `"a"`),
					item("profiles$a$done_chapters$gen$2", `true`),
					item(tt.key, tt.raw),
				},
			}
			s, err := Build(context.Background(), src, deps)
			require.NoError(t, err)

			s.Read(func(cur *state.State) {
				assert.Equal(t, "a", cur.Profile)
				require.Len(t, cur.Profiles, 1)
			})
			p := profile(t, s)
			assert.Len(t, p.DoneChapters["gen"], 3)
			assert.True(t, p.DoneChapters["gen"][2])
			assert.False(t, p.DoneBooks["gen"])
			assert.Zero(t, p.CompletionsBooks["gen"])
			assert.Contains(t, logs.String(), "unreadable stored value")

			require.NoError(t, s.ToggleChapterRead("gen", 1))
			assert.True(t, profile(t, s).DoneChapters["gen"][1])
		})
	}
}

func TestBuildCompletesFullyReadBooks(t *testing.T) {
	rec := &recorder{}
	src := source{
		ids: []string{"p1"},
		items: []store.DictItem{
			item("profile", `"p1"`),
			item("profiles$p1$done_chapters$exo$1", `true`),
			item("profiles$p1$done_chapters$exo$2", `true`),
		},
	}
	s, err := Build(context.Background(), src, testDeps(rec))
	require.NoError(t, err)

	p := profile(t, s)
	assert.True(t, p.DoneBooks["exo"])
	assert.Equal(t, 1, p.CompletionsBooks["exo"])
	assert.Equal(t, map[int]bool{1: false, 2: false}, p.DoneChapters["exo"])
}

func TestBuildFailsWithoutReferenceData(t *testing.T) {
	deps := testDeps(&recorder{})
	deps.Reference = refdata.StaticProvider{}
	_, err := Build(context.Background(), source{}, deps)
	assert.ErrorIs(t, err, refdata.ErrUnavailable)
}

func TestBuildRequiresCanonAndPersister(t *testing.T) {
	_, err := Build(context.Background(), source{}, Deps{Persister: &recorder{}})
	assert.Error(t, err)
	_, err = Build(context.Background(), source{}, Deps{Canon: testCanon})
	assert.Error(t, err)
}
