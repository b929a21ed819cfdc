package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bibletrack/internal/nested"
	"github.com/abhisek/bibletrack/internal/state"
)

func TestToggleChapterReadTwiceRestores(t *testing.T) {
	s, rec, _ := newTestService(t)

	require.NoError(t, s.ToggleChapterRead("gen", 1))
	assert.True(t, profile(t, s).DoneChapters["gen"][1])

	require.NoError(t, s.ToggleChapterRead("gen", 1))
	assert.False(t, profile(t, s).DoneChapters["gen"][1])
	assert.Equal(t, op{"put", "profiles$p1$done_chapters$gen$1", "false"}, lastOp(rec))
}

func TestToggleChapterReadOrdersRecentBooks(t *testing.T) {
	s, _, _ := newTestService(t)

	require.NoError(t, s.ToggleChapterRead("gen", 1))
	require.NoError(t, s.ToggleChapterRead("exo", 1))
	require.NoError(t, s.ToggleChapterRead("gen", 2))
	assert.Equal(t, []string{"gen", "exo"}, profile(t, s).LastProgressed)

	require.NoError(t, s.ToggleChapterRead("exo", 2))
	p := profile(t, s)
	assert.Equal(t, []string{"gen"}, p.LastProgressed)
	assert.True(t, p.DoneBooks["exo"])
}

func TestFullBookCompletion(t *testing.T) {
	s, rec, cel := newTestService(t)

	require.NoError(t, s.ToggleChapterRead("gen", 1))
	require.NoError(t, s.ToggleChapterRead("gen", 2))
	assert.False(t, profile(t, s).DoneBooks["gen"])
	require.NoError(t, s.ToggleChapterRead("gen", 3))

	p := profile(t, s)
	assert.True(t, p.DoneBooks["gen"])
	assert.Equal(t, 1, p.CompletionsBooks["gen"])
	assert.Equal(t, map[int]bool{1: false, 2: false, 3: false}, p.DoneChapters["gen"])
	assert.Equal(t, "gen", p.LastCompleted)
	assert.NotContains(t, p.LastProgressed, "gen")
	assert.Equal(t, []int{3}, cel.got)

	// The book is marked done before any chapter is cleared.
	var doneAt, clearedAt int
	for i, o := range rec.ops {
		switch o {
		case op{"put", "profiles$p1$done_books$gen", "true"}:
			doneAt = i
		case op{"put", "profiles$p1$done_chapters$gen$3", "false"}:
			clearedAt = i
		}
	}
	assert.Less(t, doneAt, clearedAt)
}

func TestCompletionWithoutCelebrations(t *testing.T) {
	s, _, cel := newTestService(t)
	require.NoError(t, s.SetPreference("celebrations", []byte("false")))

	require.NoError(t, s.BulkCompleteBook("mat"))
	assert.Empty(t, cel.got)
	assert.True(t, profile(t, s).DoneBooks["mat"])
}

func TestResolveAllReadChaptersWaitsForEveryChapter(t *testing.T) {
	s, rec, _ := newTestService(t)
	require.NoError(t, s.ToggleChapterRead("exo", 1))
	rec.reset()

	require.NoError(t, s.ResolveAllReadChapters("exo", false))
	assert.Empty(t, rec.ops)
	assert.False(t, profile(t, s).DoneBooks["exo"])
}

func TestLastProgressedNeverHoldsDoneBooks(t *testing.T) {
	s, _, _ := newTestService(t)
	steps := []struct {
		book    string
		chapter int
	}{
		{"gen", 1}, {"exo", 1}, {"gen", 2}, {"mat", 1}, {"exo", 2}, {"gen", 3}, {"gen", 1},
	}
	for _, step := range steps {
		require.NoError(t, s.ToggleChapterRead(step.book, step.chapter))

		p := profile(t, s)
		seen := map[string]bool{}
		for _, b := range p.LastProgressed {
			assert.False(t, seen[b], "duplicate %s", b)
			seen[b] = true
			assert.False(t, p.DoneBooks[b], "done book %s in list", b)
		}
	}
	assert.Empty(t, profile(t, s).LastProgressed)
}

func TestBulkCompleteAndUnreadBook(t *testing.T) {
	s, _, _ := newTestService(t)
	require.NoError(t, s.ToggleChapterRead("gen", 2))

	require.NoError(t, s.BulkCompleteBook("gen"))
	p := profile(t, s)
	assert.True(t, p.DoneBooks["gen"])
	assert.Equal(t, 1, p.CompletionsBooks["gen"])
	assert.False(t, p.DoneChapters["gen"][2])

	require.NoError(t, s.ToggleChapterRead("gen", 1))
	require.NoError(t, s.BulkUnreadBook("gen"))
	p = profile(t, s)
	assert.False(t, p.DoneBooks["gen"])
	assert.False(t, p.DoneChapters["gen"][1])
	assert.Equal(t, 1, p.CompletionsBooks["gen"])
}

func TestDecreaseCompletionsStopsAtZero(t *testing.T) {
	s, _, _ := newTestService(t)
	require.NoError(t, s.BulkCompleteBook("mat"))

	require.NoError(t, s.DecreaseCompletionsForBook("mat"))
	require.NoError(t, s.DecreaseCompletionsForBook("mat"))
	assert.Equal(t, 0, profile(t, s).CompletionsBooks["mat"])
}

func TestResetChaptersWritesOnlyReadChapters(t *testing.T) {
	s, rec, _ := newTestService(t)
	require.NoError(t, s.ToggleChapterRead("gen", 2))
	rec.reset()

	require.NoError(t, s.ResetChapters("gen"))
	assert.Equal(t, []op{{"put", "profiles$p1$done_chapters$gen$2", "false"}}, rec.ops)
}

func TestLegacyBookIDsAccepted(t *testing.T) {
	s, _, _ := newTestService(t)
	require.NoError(t, s.ToggleChapterRead("exod", 1))
	assert.True(t, profile(t, s).DoneChapters["exo"][1])
}

func TestUnknownBookAndChapter(t *testing.T) {
	s, rec, _ := newTestService(t)

	assert.ErrorIs(t, s.ToggleChapterRead("xyz", 1), ErrUnknownBook)
	assert.ErrorIs(t, s.ToggleChapterRead("gen", 0), ErrUnknownChapter)
	assert.ErrorIs(t, s.ToggleChapterRead("gen", 4), ErrUnknownChapter)
	assert.ErrorIs(t, s.BulkCompleteBook("xyz"), ErrUnknownBook)
	assert.Empty(t, rec.ops)
}

func TestSetUnknownPathIsContractViolation(t *testing.T) {
	s, rec, _ := newTestService(t)

	err := s.set(state.Path{"profiles", "p1", "no_such_field"}, 1)
	assert.True(t, nested.IsKeyMissing(err))
	assert.Empty(t, rec.ops)
}

func TestConcludeBibleCompletion(t *testing.T) {
	s, rec, _ := newTestService(t)
	require.NoError(t, s.ToggleChapterRead("gen", 1))
	for _, b := range testCanon.IDs() {
		require.NoError(t, s.BulkCompleteBook(b))
	}
	require.NoError(t, s.ToggleChapterRead("exo", 1))
	require.NoError(t, s.DismissCompletedPuzzle())
	s.SetSelectedTab(2)

	before := *profile(t, s)
	rec.reset()

	require.NoError(t, s.ConcludeBibleCompletion(true))

	p := profile(t, s)
	assert.Equal(t, before.CompletionsBible+1, p.CompletionsBible)
	assert.NotEqual(t, before.Puzzle, p.Puzzle)
	assert.False(t, p.CompletedPuzzleDismissed)
	assert.Empty(t, p.LastProgressed)
	for _, b := range testCanon.Books() {
		assert.False(t, p.DoneBooks[b.ID], b.ID)
		for ch := 1; ch <= b.Chapters; ch++ {
			assert.False(t, p.DoneChapters[b.ID][ch], "%s %d", b.ID, ch)
		}
	}
	s.Read(func(cur *state.State) { assert.Equal(t, 0, cur.Tmp.RootSelectedTab) })

	assert.Equal(t, op{"put", "profiles$p1$completed_puzzle_dismissed", "false"}, lastOp(rec))
}

func TestConcludeKeepsChaptersWithoutReset(t *testing.T) {
	s, _, _ := newTestService(t)
	for _, b := range testCanon.IDs() {
		require.NoError(t, s.BulkCompleteBook(b))
	}
	require.NoError(t, s.ToggleChapterRead("gen", 1))

	require.NoError(t, s.ConcludeBibleCompletion(false))
	p := profile(t, s)
	assert.True(t, p.DoneChapters["gen"][1])
	assert.Empty(t, p.LastProgressed)
	assert.False(t, p.DoneBooks["gen"])
}
